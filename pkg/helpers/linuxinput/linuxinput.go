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

package linuxinput

import (
	"fmt"
	"time"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
	"github.com/bendahl/uinput"
)

const (
	DeviceName     = "Zaparoo Paste"
	DefaultTimeout = 40 * time.Millisecond
	uinputDev      = "/dev/uinput"
)

// settleDelay gives the desktop time to pick up a freshly created device
// before the first event is sent, otherwise the first keys are dropped.
const settleDelay = 500 * time.Millisecond

type Keyboard struct {
	Device uinput.Keyboard
	// Delay is held between the down and up halves of a Click.
	Delay time.Duration
}

// NewKeyboard returns a uinput virtual keyboard device. It takes a delay
// duration which is used between the press and release of a click to avoid
// overloading the OS or user applications. This device must be closed when
// playback finishes.
func NewKeyboard(delay time.Duration) (*Keyboard, error) {
	kbd, err := uinput.CreateKeyboard(uinputDev, []byte(DeviceName))
	if err != nil {
		return nil, fmt.Errorf("failed to create keyboard device: %w", err)
	}
	time.Sleep(settleDelay)
	return &Keyboard{
		Device: kbd,
		Delay:  delay,
	}, nil
}

func (k *Keyboard) Close() error {
	if err := k.Device.Close(); err != nil {
		return fmt.Errorf("failed to close keyboard device: %w", err)
	}
	return nil
}

// KeyDown presses and holds a key.
func (k *Keyboard) KeyDown(key keyboardmap.Key) error {
	if err := k.Device.KeyDown(key.Code); err != nil {
		return fmt.Errorf("failed to press key %s down: %w", key, err)
	}
	return nil
}

// KeyUp releases a held key.
func (k *Keyboard) KeyUp(key keyboardmap.Key) error {
	if err := k.Device.KeyUp(key.Code); err != nil {
		return fmt.Errorf("failed to release key %s: %w", key, err)
	}
	return nil
}

// Click presses and releases a key, holding it for the keyboard's delay.
func (k *Keyboard) Click(key keyboardmap.Key) error {
	if err := k.KeyDown(key); err != nil {
		return err
	}
	time.Sleep(k.Delay)
	return k.KeyUp(key)
}
