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

package playback

import (
	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
	"github.com/rs/zerolog"
)

// LogKeyboard writes key events to a logger instead of a device. It backs
// dry runs.
type LogKeyboard struct {
	Logger zerolog.Logger
}

func NewLogKeyboard(logger zerolog.Logger) *LogKeyboard {
	return &LogKeyboard{Logger: logger}
}

func (k *LogKeyboard) KeyDown(key keyboardmap.Key) error {
	k.Logger.Info().Str("key", key.Name).Int("code", key.Code).Msg("key down")
	return nil
}

func (k *LogKeyboard) KeyUp(key keyboardmap.Key) error {
	k.Logger.Info().Str("key", key.Name).Int("code", key.Code).Msg("key up")
	return nil
}
