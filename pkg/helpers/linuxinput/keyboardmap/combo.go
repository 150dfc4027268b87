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

package keyboardmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"
)

// ErrUnknownKey is returned when a key name is not in the vocabulary.
var ErrUnknownKey = errors.New("unknown keyboard key")

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestDistance = 2

// ParseCombo parses a "+" delimited list of key names, optionally wrapped in
// braces, into keys. For example "alt+tab", "{ctrl+shift+esc}" or "f9".
func ParseCombo(arg string) ([]Key, error) {
	arg = strings.TrimSpace(arg)
	if len(arg) > 1 && arg[0] == '{' && arg[len(arg)-1] == '}' {
		arg = arg[1 : len(arg)-1]
	}
	if arg == "" {
		return nil, fmt.Errorf("%w: empty combo", ErrUnknownKey)
	}

	parts := strings.Split(arg, "+")
	keys := make([]Key, 0, len(parts))
	for _, part := range parts {
		k, ok := Lookup(part)
		if !ok {
			return nil, UnknownKeyError(part)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// UnknownKeyError builds an ErrUnknownKey error for name, including the
// closest known key name when one is near enough.
func UnknownKeyError(name string) error {
	if suggestion, ok := Suggest(name); ok {
		return fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownKey, name, suggestion)
	}
	return fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Suggest returns the known key name closest to name by Damerau-Levenshtein
// distance. Single character names are never suggested for, they are too
// ambiguous to be useful.
func Suggest(name string) (string, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if len(query) < 2 {
		return "", false
	}

	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range Names() {
		if len(candidate) < 2 {
			continue
		}
		dist := edlib.DamerauLevenshteinDistance(query, candidate)
		if dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}

	if best == "" || best == query {
		return "", false
	}
	return best, true
}
