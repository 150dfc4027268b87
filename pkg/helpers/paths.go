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

	"github.com/ZaparooProject/zaparoo-paste/pkg/config"
	"github.com/adrg/xdg"
)

// Dirs holds the directories the app reads from and writes to.
type Dirs struct {
	// ConfigDir holds config.toml and auth.toml.
	ConfigDir string
	// LogDir holds the rotated log file.
	LogDir string
}

// DefaultDirs returns the XDG based directories for the current user.
func DefaultDirs() Dirs {
	return Dirs{
		ConfigDir: filepath.Join(xdg.ConfigHome, config.AppName),
		LogDir:    filepath.Join(xdg.StateHome, config.AppName),
	}
}

// LogPath returns the path of the log file inside d.
func (d Dirs) LogPath() string {
	return filepath.Join(d.LogDir, config.LogFile)
}
