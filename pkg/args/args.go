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

// Package args resolves the values of snippet arguments from supplied
// name/value pairs and interactive prompts.
package args

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-paste/pkg/prompt"
	"github.com/ZaparooProject/zaparoo-paste/pkg/snippet"
	"github.com/rs/zerolog/log"
)

var (
	ErrOddArgumentSupply = errors.New("arguments must be supplied as name value pairs")
	ErrPrompt            = errors.New("failed to prompt for argument")
)

// Values maps argument names to values, keeping the order names were first
// set in.
type Values struct {
	values map[string]string
	order  []string
}

func NewValues() *Values {
	return &Values{
		values: make(map[string]string),
	}
}

func (v *Values) Set(name, value string) {
	if _, ok := v.values[name]; !ok {
		v.order = append(v.order, name)
	}
	v.values[name] = value
}

func (v *Values) Get(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	value, ok := v.values[name]
	return value, ok
}

func (v *Values) Names() []string {
	if v == nil {
		return nil
	}
	names := make([]string, len(v.order))
	copy(names, v.order)
	return names
}

func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.order)
}

// ParsePairs pairs up tokens as name, value, name, value... A name given
// twice keeps its last value.
func ParsePairs(tokens []string) (*Values, error) {
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d tokens, %q has no value",
			ErrOddArgumentSupply, len(tokens), tokens[len(tokens)-1])
	}

	v := NewValues()
	for i := 0; i < len(tokens); i += 2 {
		v.Set(tokens[i], tokens[i+1])
	}
	return v, nil
}

// Question is the prompt shown when asking for an argument.
func Question(name, def string, hasDefault bool) string {
	if !hasDefault {
		return name
	}
	return fmt.Sprintf("%s (Default: `%s`)", name, def)
}

// Referenced returns each argument name used by the snippet once, in order
// of first use.
func Referenced(s *snippet.Snippet) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, line := range s.Lines {
		for _, part := range line {
			if part.Kind != snippet.PartArg {
				continue
			}
			if _, ok := seen[part.Value]; ok {
				continue
			}
			seen[part.Value] = struct{}{}
			names = append(names, part.Value)
		}
	}
	return names
}

func missingArg(line snippet.Line, resolved *Values) (string, bool) {
	for _, part := range line {
		if part.Kind != snippet.PartArg {
			continue
		}
		if _, ok := resolved.Get(part.Value); !ok {
			return part.Value, true
		}
	}
	return "", false
}

// Resolve gives every argument referenced by the snippet a value. Supplied
// values are used first, then the operator is asked. An empty answer picks
// the argument's default, or the empty string when it has none. Each name
// is resolved at most once. The result also carries supplied values the
// snippet never references.
func Resolve(s *snippet.Snippet, supplied *Values, asker prompt.Asker) (*Values, error) {
	resolved := NewValues()
	for _, name := range supplied.Names() {
		value, _ := supplied.Get(name)
		resolved.Set(name, value)
	}

	for _, line := range s.Lines {
		for {
			name, ok := missingArg(line, resolved)
			if !ok {
				break
			}

			def, hasDefault := s.Defaults.Get(name)
			answer, err := asker.Ask(Question(name, def, hasDefault))
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrPrompt, name, err)
			}

			if answer == "" {
				answer = def
				log.Debug().Msgf("argument %s: using default %q", name, def)
			}
			resolved.Set(name, answer)
		}
	}

	return resolved, nil
}
