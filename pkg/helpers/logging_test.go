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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupDirs bool
	}{
		{name: "creates both directories", setupDirs: false},
		{name: "works when directories already exist", setupDirs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			dirs := Dirs{
				ConfigDir: filepath.Join(root, "config", "nested"),
				LogDir:    filepath.Join(root, "state", "nested"),
			}

			if tt.setupDirs {
				require.NoError(t, os.MkdirAll(dirs.ConfigDir, 0o750))
				require.NoError(t, os.MkdirAll(dirs.LogDir, 0o750))
			}

			require.NoError(t, EnsureDirectories(dirs))

			for _, dir := range []string{dirs.ConfigDir, dirs.LogDir} {
				info, err := os.Stat(dir)
				require.NoError(t, err)
				assert.True(t, info.IsDir())
				if runtime.GOOS != "windows" {
					assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
				}
			}
		})
	}
}

func TestEnsureDirectoriesErrorHandling(t *testing.T) {
	t.Parallel()

	err := EnsureDirectories(Dirs{
		ConfigDir: "/proc/invalid\x00path",
		LogDir:    t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")

	err = EnsureDirectories(Dirs{
		ConfigDir: t.TempDir(),
		LogDir:    "/proc/invalid\x00path",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestInitLogging(t *testing.T) {
	// Cannot use t.Parallel() because InitLogging modifies global log.Logger
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	dirs := Dirs{LogDir: filepath.Join(t.TempDir(), "logs")}
	var extra bytes.Buffer

	require.NoError(t, InitLogging(dirs, []io.Writer{&extra}))
	log.Info().Msg("hello from the test")

	assert.Contains(t, extra.String(), "hello from the test")

	data, err := os.ReadFile(dirs.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.Contains(t, string(data), `"caller"`)
}

func TestSetDebug(t *testing.T) {
	// Cannot use t.Parallel() because SetDebug modifies the global level
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestConsoleWriter_NotTerminal(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "console")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	w := ConsoleWriter(f)
	assert.True(t, w.NoColor, "regular files get no colour codes")
	assert.False(t, IsTerminal(nil))
}
