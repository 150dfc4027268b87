// Zaparoo Paste
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Paste.
//
// Zaparoo Paste is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Paste is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Paste.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-paste/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestDefaultDirs(t *testing.T) {
	t.Parallel()

	dirs := DefaultDirs()
	assert.Equal(t, config.AppName, filepath.Base(dirs.ConfigDir))
	assert.Equal(t, config.AppName, filepath.Base(dirs.LogDir))
	assert.NotEqual(t, dirs.ConfigDir, dirs.LogDir)
}

func TestDirsLogPath(t *testing.T) {
	t.Parallel()

	dirs := Dirs{LogDir: "/var/state/zaparoo-paste"}
	assert.Equal(t, "/var/state/zaparoo-paste/"+config.LogFile, dirs.LogPath())
}
