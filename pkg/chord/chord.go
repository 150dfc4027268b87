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

// Package chord turns key combos into press and release actions and keeps
// track of keys that are held on a keyboard.
package chord

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/syncutil"
)

type Direction int

const (
	Press Direction = iota
	Release
)

func (d Direction) String() string {
	if d == Release {
		return "release"
	}
	return "press"
}

type Action struct {
	Key keyboardmap.Key
	Dir Direction
}

func (a Action) String() string {
	return a.Dir.String() + " " + a.Key.Name
}

// indexOf returns the position of the last held key with the same code.
func indexOf(held []keyboardmap.Key, k keyboardmap.Key) int {
	for i := len(held) - 1; i >= 0; i-- {
		if held[i].Code == k.Code {
			return i
		}
	}
	return -1
}

// Expand returns the actions for one combo. Keys toggle: a key that is
// already held is released, any other key is pressed and held. Keys still
// held at the end are released last-pressed-first.
func Expand(keys []keyboardmap.Key) []Action {
	actions := make([]Action, 0, len(keys)*2)
	held := make([]keyboardmap.Key, 0, len(keys))

	for _, k := range keys {
		if i := indexOf(held, k); i >= 0 {
			held = append(held[:i], held[i+1:]...)
			actions = append(actions, Action{Key: k, Dir: Release})
			continue
		}
		held = append(held, k)
		actions = append(actions, Action{Key: k, Dir: Press})
	}

	for i := len(held) - 1; i >= 0; i-- {
		actions = append(actions, Action{Key: held[i], Dir: Release})
	}

	return actions
}

// Keyboard is the key injection primitive a Tracker drives.
type Keyboard interface {
	KeyDown(key keyboardmap.Key) error
	KeyUp(key keyboardmap.Key) error
}

// Tracker sends actions to a keyboard and remembers which keys are down so
// they can be released if playback is interrupted. It is safe to call
// ReleaseAll from another goroutine.
type Tracker struct {
	kbd  Keyboard
	held []keyboardmap.Key
	mu   syncutil.Mutex
}

func NewTracker(kbd Keyboard) *Tracker {
	return &Tracker{kbd: kbd}
}

func (t *Tracker) Press(k keyboardmap.Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.kbd.KeyDown(k); err != nil {
		return err
	}
	if indexOf(t.held, k) < 0 {
		t.held = append(t.held, k)
	}
	return nil
}

// Release sends a key up. A key that fails to release stays tracked so a
// later ReleaseAll tries again.
func (t *Tracker) Release(k keyboardmap.Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.kbd.KeyUp(k); err != nil {
		return err
	}
	if i := indexOf(t.held, k); i >= 0 {
		t.held = append(t.held[:i], t.held[i+1:]...)
	}
	return nil
}

func (t *Tracker) Apply(a Action) error {
	if a.Dir == Release {
		return t.Release(a.Key)
	}
	return t.Press(a.Key)
}

// Click presses and releases a single key.
func (t *Tracker) Click(k keyboardmap.Key) error {
	if err := t.Press(k); err != nil {
		return err
	}
	return t.Release(k)
}

// Held returns the keys currently down in press order.
func (t *Tracker) Held() []keyboardmap.Key {
	t.mu.Lock()
	defer t.mu.Unlock()
	held := make([]keyboardmap.Key, len(t.held))
	copy(held, t.held)
	return held
}

// ReleaseAll releases every held key in reverse press order. Every key is
// attempted even if some fail.
func (t *Tracker) ReleaseAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	for i := len(t.held) - 1; i >= 0; i-- {
		if err := t.kbd.KeyUp(t.held[i]); err != nil {
			errs = append(errs, fmt.Errorf("failed to release held key %s: %w", t.held[i], err))
		}
	}
	t.held = nil

	return errors.Join(errs...)
}
