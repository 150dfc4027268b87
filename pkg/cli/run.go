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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ZaparooProject/zaparoo-paste/pkg/args"
	"github.com/ZaparooProject/zaparoo-paste/pkg/chord"
	"github.com/ZaparooProject/zaparoo-paste/pkg/config"
	"github.com/ZaparooProject/zaparoo-paste/pkg/playback"
	"github.com/ZaparooProject/zaparoo-paste/pkg/prompt"
	"github.com/ZaparooProject/zaparoo-paste/pkg/snippet"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// InterruptExitCode is the process exit code after SIGINT or SIGTERM.
const InterruptExitCode = 130

var (
	ErrNoTarget   = errors.New("no snippet target given")
	ErrNoKeyboard = errors.New("no keyboard device available")
	ErrDeclined   = errors.New("run declined")
)

// Loader returns the bytes of a snippet target.
type Loader interface {
	Load(ctx context.Context, target string) ([]byte, error)
}

// KeyboardFactory opens the keyboard used for playback. The returned close
// function is called once playback ends.
type KeyboardFactory func() (playback.Keyboard, func() error, error)

type RunOptions struct {
	Check   bool
	DryRun  bool
	NoFocus bool
}

// Runner ties target loading, parsing, argument resolution and playback
// together for one invocation.
type Runner struct {
	Cfg         *config.Instance
	Loader      Loader
	Asker       prompt.Asker
	Out         io.Writer
	Clock       clockwork.Clock
	NewKeyboard KeyboardFactory
	// Signals overrides the interrupt channel, nil listens for SIGINT and
	// SIGTERM.
	Signals <-chan os.Signal
	// Exit terminates the process after an interrupt.
	Exit func(code int)
}

// Run loads, parses and plays one snippet. positional holds the optional
// target followed by name/value argument pairs.
func (r *Runner) Run(ctx context.Context, opts RunOptions, positional []string) error {
	target, pairs, err := r.target(positional)
	if err != nil {
		return err
	}

	supplied, err := args.ParsePairs(pairs)
	if err != nil {
		return fmt.Errorf("failed to read argument pairs: %w", err)
	}

	data, err := r.Loader.Load(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", target, err)
	}

	s, err := snippet.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse snippet: %w", err)
	}
	for _, d := range s.Diagnostics {
		log.Warn().Str("kind", d.Kind.String()).Int("line", d.Line).Msg(d.Message)
	}

	if opts.Check {
		return WriteCheck(r.Out, s, supplied)
	}

	if len(s.Diagnostics) > 0 {
		ok, err := prompt.YesOrNo(r.Asker, fmt.Sprintf(
			"Snippet has %d warning(s), type it anyway?", len(s.Diagnostics),
		), true)
		if err != nil {
			return fmt.Errorf("failed to confirm run: %w", err)
		}
		if !ok {
			return ErrDeclined
		}
	}

	values, err := args.Resolve(s, supplied, r.Asker)
	if err != nil {
		return fmt.Errorf("failed to resolve arguments: %w", err)
	}

	if err := playback.Check(s, values); err != nil {
		return fmt.Errorf("snippet cannot be typed: %w", err)
	}

	kbd, closeKbd, err := r.keyboard(opts.DryRun)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeKbd(); err != nil {
			log.Error().Err(err).Msg("error closing keyboard")
		}
	}()

	driver := playback.NewDriver(kbd, r.Clock, r.playbackOptions(opts))

	sigs, stopSignals := r.signals()
	defer stopSignals()
	stop := WatchInterrupts(sigs, driver.Tracker(), r.exit())
	defer stop()

	if err := driver.Play(ctx, s, values); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	log.Info().Msgf("typed %d lines from %s", len(s.Lines), target)
	return nil
}

func (r *Runner) target(positional []string) (string, []string, error) {
	if len(positional) > 0 {
		return positional[0], positional[1:], nil
	}

	target, err := r.Asker.Ask("Snippet")
	if err != nil {
		return "", nil, fmt.Errorf("failed to ask for target: %w", err)
	}
	if target == "" {
		return "", nil, ErrNoTarget
	}
	return target, nil, nil
}

func (r *Runner) keyboard(dryRun bool) (playback.Keyboard, func() error, error) {
	if dryRun {
		log.Info().Msg("dry run, key actions are only logged")
		return playback.NewLogKeyboard(log.Logger), func() error { return nil }, nil
	}
	if r.NewKeyboard == nil {
		return nil, nil, ErrNoKeyboard
	}
	kbd, closeFn, err := r.NewKeyboard()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return kbd, closeFn, nil
}

func (r *Runner) playbackOptions(opts RunOptions) playback.Options {
	return playback.Options{
		CommitKey:  r.Cfg.CommitKey(),
		FocusCombo: r.Cfg.FocusCombo(),
		LineDelay:  r.Cfg.LineDelay(),
		CharDelay:  r.Cfg.CharDelay(),
		KeyDelay:   r.Cfg.KeyDelay(),
		FocusCycle: r.Cfg.FocusCycle() && !opts.NoFocus,
	}
}

func (r *Runner) signals() (<-chan os.Signal, func()) {
	if r.Signals != nil {
		return r.Signals, func() {}
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	return sigs, func() { signal.Stop(sigs) }
}

func (r *Runner) exit() func(int) {
	if r.Exit != nil {
		return r.Exit
	}
	return os.Exit
}

// WatchInterrupts releases every key held by tracker and calls exit with
// InterruptExitCode when a signal arrives on sigs. The returned function
// stops watching and waits for the watcher to finish.
func WatchInterrupts(sigs <-chan os.Signal, tracker *chord.Tracker, exit func(int)) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Go(func() {
		select {
		case sig := <-sigs:
			log.Warn().Msgf("received %s, releasing held keys", sig)
			if err := tracker.ReleaseAll(); err != nil {
				log.Error().Err(err).Msg("failed to release held keys")
			}
			exit(InterruptExitCode)
		case <-done:
		}
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
