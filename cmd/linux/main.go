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

//go:build linux

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/zaparoo-paste/pkg/cli"
	"github.com/ZaparooProject/zaparoo-paste/pkg/config"
	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput"
	"github.com/ZaparooProject/zaparoo-paste/pkg/playback"
	"github.com/ZaparooProject/zaparoo-paste/pkg/prompt"
	"github.com/ZaparooProject/zaparoo-paste/pkg/shared/httpclient"
	"github.com/ZaparooProject/zaparoo-paste/pkg/target"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func newKeyboard() (playback.Keyboard, func() error, error) {
	kbd, err := linuxinput.NewKeyboard(linuxinput.DefaultTimeout)
	if err != nil {
		return nil, nil, err
	}
	return kbd, kbd.Close, nil
}

func run() error {
	flags := cli.SetupFlags()
	if err := flags.Pre(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := cli.Setup(
		helpers.DefaultDirs(),
		config.BaseDefaults,
		[]io.Writer{helpers.ConsoleWriter(os.Stderr)},
	)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	asker := prompt.NewStdPrompter()
	loader := target.NewLoader(
		afero.NewOsFs(),
		httpclient.NewClientFromConfig(cfg),
		asker,
		os.Stdout,
		target.WithRemote(cfg.RemoteAllowed(), cfg.RemoteRequireConfirmation()),
	)

	runner := &cli.Runner{
		Cfg:         cfg,
		Loader:      loader,
		Asker:       asker,
		Out:         os.Stdout,
		NewKeyboard: newKeyboard,
	}

	return runner.Run(context.Background(), flags.Options(), flags.Args())
}
