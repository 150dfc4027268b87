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

package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/zaparoo-paste/pkg/config"
	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Flags struct {
	Check   *bool
	DryRun  *bool
	NoFocus *bool
	Version *bool
	fs      *flag.FlagSet
}

// SetupFlags defines the CLI flags on the default flag set.
func SetupFlags() *Flags {
	return NewFlags(flag.CommandLine)
}

// NewFlags defines the CLI flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s [flags] [target] [name value]...\n\n", config.AppName)
		fs.PrintDefaults()
	}
	return &Flags{
		Check: fs.Bool(
			"check",
			false,
			"parse only and print lines, defaults, arguments and warnings",
		),
		DryRun: fs.Bool(
			"dry-run",
			false,
			"log key actions instead of typing them",
		),
		NoFocus: fs.Bool(
			"no-focus",
			false,
			"do not cycle window focus before typing",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		fs: fs,
	}
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup.
func (f *Flags) Pre(args []string) error {
	if err := f.fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Printf("Zaparoo Paste v%s\n", config.AppVersion)
		os.Exit(0)
	}
	return nil
}

// Args returns the positional arguments left after flag parsing.
func (f *Flags) Args() []string {
	return f.fs.Args()
}

// Options returns the run options selected by the flags.
func (f *Flags) Options() RunOptions {
	return RunOptions{
		Check:   *f.Check,
		DryRun:  *f.DryRun,
		NoFocus: *f.NoFocus,
	}
}

// Setup initializes logging and the user config. Returns a user config
// object.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	dirs helpers.Dirs,
	defaultConfig config.Values,
	writers []io.Writer,
) (*config.Instance, error) {
	err := helpers.EnsureDirectories(dirs)
	if err != nil {
		return nil, fmt.Errorf("error creating directories: %w", err)
	}

	err = helpers.InitLogging(dirs, writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(afero.NewOsFs(), dirs.ConfigDir, defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	helpers.SetDebug(cfg.DebugLogging())
	log.Debug().Msgf("loaded config from %s", cfg.Path())

	return cfg, nil
}
