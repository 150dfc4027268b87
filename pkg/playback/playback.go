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

// Package playback types parsed snippets into the focused window.
package playback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/zaparoo-paste/pkg/args"
	"github.com/ZaparooProject/zaparoo-paste/pkg/chord"
	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
	"github.com/ZaparooProject/zaparoo-paste/pkg/snippet"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrUntypeable      = errors.New("character cannot be typed")
	ErrMissingArgument = errors.New("argument has no value")
)

const (
	DefaultLineDelay = 100 * time.Millisecond
	DefaultCharDelay = 10 * time.Millisecond
)

// Keyboard is the key injection primitive used for playback.
type Keyboard interface {
	KeyDown(key keyboardmap.Key) error
	KeyUp(key keyboardmap.Key) error
}

type Options struct {
	// CommitKey is clicked after every played line.
	CommitKey keyboardmap.Key
	// FocusCombo is played once before the first line when FocusCycle is
	// set, to hand focus back to the window that was active before.
	FocusCombo []keyboardmap.Key
	LineDelay  time.Duration
	CharDelay  time.Duration
	// KeyDelay is waited between the actions of a key combo.
	KeyDelay   time.Duration
	FocusCycle bool
}

func DefaultOptions() Options {
	return Options{
		CommitKey:  keyboardmap.MustLookup("enter"),
		FocusCombo: []keyboardmap.Key{keyboardmap.MustLookup("alt"), keyboardmap.MustLookup("tab")},
		LineDelay:  DefaultLineDelay,
		CharDelay:  DefaultCharDelay,
		FocusCycle: true,
	}
}

type Driver struct {
	clock   clockwork.Clock
	tracker *chord.Tracker
	opts    Options
}

func NewDriver(kbd Keyboard, clock clockwork.Clock, opts Options) *Driver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Driver{
		clock:   clock,
		tracker: chord.NewTracker(kbd),
		opts:    opts,
	}
}

// Tracker returns the tracker holding the keys currently down, for use by
// interrupt handlers.
func (d *Driver) Tracker() *chord.Tracker {
	return d.tracker
}

// Check verifies that every played line can be typed with the resolved
// values. Comment lines are not checked.
func Check(s *snippet.Snippet, values *args.Values) error {
	for i, line := range s.Lines {
		if line.IsComment() {
			continue
		}
		for _, part := range line {
			var text string
			switch part.Kind {
			case snippet.PartText:
				text = part.Value
			case snippet.PartArg:
				v, ok := values.Get(part.Value)
				if !ok {
					return fmt.Errorf("%w: %q in line %d", ErrMissingArgument, part.Value, i+1)
				}
				text = v
			default:
				continue
			}
			for _, r := range text {
				if _, _, ok := keyboardmap.RuneKey(r); !ok {
					if part.Kind == snippet.PartArg {
						return fmt.Errorf("%w: %q in value of argument %q", ErrUntypeable, r, part.Value)
					}
					return fmt.Errorf("%w: %q in line %d", ErrUntypeable, r, i+1)
				}
			}
		}
	}
	return nil
}

// Play types the snippet. Nothing is sent if any line fails Check. If
// playback stops early, held keys are released before returning.
func (d *Driver) Play(ctx context.Context, s *snippet.Snippet, values *args.Values) (err error) {
	if err := Check(s, values); err != nil {
		return err
	}

	defer func() {
		if err == nil {
			return
		}
		if releaseErr := d.tracker.ReleaseAll(); releaseErr != nil {
			log.Error().Err(releaseErr).Msg("failed to release held keys")
		}
	}()

	if d.opts.FocusCycle && len(d.opts.FocusCombo) > 0 {
		log.Debug().Msg("cycling window focus")
		if err := d.combo(ctx, d.opts.FocusCombo); err != nil {
			return fmt.Errorf("failed to cycle focus: %w", err)
		}
	}

	log.Info().Msgf("playing %d lines", len(s.Lines))
	for i, line := range s.Lines {
		if err := d.sleep(ctx, d.opts.LineDelay); err != nil {
			return err
		}

		if line.IsComment() {
			log.Debug().Msgf("skipping comment line %d", i+1)
			continue
		}

		if err := d.line(ctx, line, values); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	return nil
}

func (d *Driver) line(ctx context.Context, line snippet.Line, values *args.Values) error {
	for _, part := range line {
		var err error
		switch part.Kind {
		case snippet.PartText:
			err = d.typeText(ctx, part.Value)
		case snippet.PartArg:
			v, _ := values.Get(part.Value)
			err = d.typeText(ctx, v)
		case snippet.PartKeyCombo:
			err = d.combo(ctx, part.Keys)
		case snippet.PartDelay:
			err = d.sleep(ctx, time.Duration(part.Delay)*time.Millisecond)
		}
		if err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return d.tracker.Click(d.opts.CommitKey)
}

func (d *Driver) typeText(ctx context.Context, text string) error {
	shift := keyboardmap.MustLookup("shift")
	for _, r := range text {
		if err := ctx.Err(); err != nil {
			return err
		}

		k, shifted, ok := keyboardmap.RuneKey(r)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUntypeable, r)
		}

		if shifted {
			if err := d.tracker.Press(shift); err != nil {
				return err
			}
		}
		if err := d.tracker.Click(k); err != nil {
			return err
		}
		if shifted {
			if err := d.tracker.Release(shift); err != nil {
				return err
			}
		}

		if err := d.sleep(ctx, d.opts.CharDelay); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) combo(ctx context.Context, keys []keyboardmap.Key) error {
	actions := chord.Expand(keys)
	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.tracker.Apply(a); err != nil {
			return err
		}
		if i < len(actions)-1 {
			if err := d.sleep(ctx, d.opts.KeyDelay); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Driver) sleep(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.clock.After(dur):
		return nil
	}
}
