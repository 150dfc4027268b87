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

package snippet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
)

// KeyLookup resolves a key combo token to a key.
type KeyLookup func(token string) (keyboardmap.Key, bool)

// state is the part currently being accumulated by the tokenizer.
type state interface {
	isState()
}

type textState struct {
	buf strings.Builder
}

type delayState struct {
	buf strings.Builder
}

type argState struct {
	value      strings.Builder
	def        strings.Builder
	hasDefault bool
}

// comboState always holds at least one token, the last one is the one
// being appended to.
type comboState struct {
	tokens []string
}

func (*textState) isState()  {}
func (*delayState) isState() {}
func (*argState) isState()   {}
func (*comboState) isState() {}

type lineReader struct {
	runes []rune
	pos   int
}

func (lr *lineReader) read() (rune, bool) {
	if lr.pos >= len(lr.runes) {
		return 0, false
	}
	ch := lr.runes[lr.pos]
	lr.pos++
	return ch, true
}

func (lr *lineReader) peek() (rune, bool) {
	if lr.pos >= len(lr.runes) {
		return 0, false
	}
	return lr.runes[lr.pos], true
}

func (lr *lineReader) skip() {
	if lr.pos < len(lr.runes) {
		lr.pos++
	}
}

// tokenizer turns one logical line into parts. Defaults declared in the line
// are written to the shared registry.
type tokenizer struct {
	state    state
	lookup   KeyLookup
	defaults *Registry
	report   func(kind DiagnosticKind, msg string)
	reader   lineReader
	parts    []Part
}

func (t *tokenizer) tokenize(line string) (Line, error) {
	t.reader = lineReader{runes: []rune(line)}
	t.parts = nil
	t.state = &textState{}

	for {
		ch, ok := t.reader.read()
		if !ok {
			break
		}

		var err error
		switch s := t.state.(type) {
		case *textState:
			err = t.stepText(s, ch)
		case *delayState:
			err = t.stepDelay(s, ch)
		case *argState:
			t.stepArg(s, ch)
		case *comboState:
			err = t.stepCombo(s, ch)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := t.finish(); err != nil {
		return nil, err
	}

	return Line(t.parts), nil
}

func (t *tokenizer) stepText(s *textState, ch rune) error {
	if ch != SymToken {
		s.buf.WriteRune(ch)
		return nil
	}

	next, _ := t.reader.peek()
	switch next {
	case SymDelayStart:
		t.reader.skip()
		t.flushText(s)
		t.state = &delayState{}
	case SymArgStart:
		t.reader.skip()
		t.flushText(s)
		t.state = &argState{}
	case SymArglistStart:
		return fmt.Errorf("%w: found `$[` opener", ErrUnsupportedArglist)
	case SymComboStart:
		t.reader.skip()
		t.flushText(s)
		t.state = &comboState{tokens: []string{""}}
	default:
		s.buf.WriteRune(ch)
	}
	return nil
}

func (t *tokenizer) stepDelay(s *delayState, ch rune) error {
	if ch == SymToken {
		return t.closeDelay(s)
	}
	s.buf.WriteRune(ch)
	return nil
}

func (t *tokenizer) stepArg(s *argState, ch rune) {
	switch {
	case ch == SymToken && s.value.Len() == 0:
		// $@$ is the escape for a literal $@, any default is discarded
		t.escape("$@")
	case ch == SymToken:
		t.closeArg(s)
	case ch == SymDefaultSep && !s.hasDefault && t.peekIs(SymDefaultSep):
		t.reader.skip()
		s.hasDefault = true
	case s.hasDefault:
		s.def.WriteRune(ch)
	default:
		s.value.WriteRune(ch)
	}
}

func (t *tokenizer) stepCombo(s *comboState, ch rune) error {
	last := len(s.tokens) - 1
	switch ch {
	case SymComboSep, SymComboSpace:
		if s.tokens[last] == "" {
			return nil
		}
		s.tokens = append(s.tokens, "")
	case SymToken:
		return t.closeCombo(s)
	default:
		s.tokens[last] += string(ch)
	}
	return nil
}

func (t *tokenizer) peekIs(want rune) bool {
	next, ok := t.reader.peek()
	return ok && next == want
}

func (t *tokenizer) flushText(s *textState) {
	if s.buf.Len() == 0 {
		return
	}
	t.parts = append(t.parts, Text(s.buf.String()))
}

// escape appends literal text to the preceding text part, or starts a new
// one, and continues in text state.
func (t *tokenizer) escape(literal string) {
	text := &textState{}
	if n := len(t.parts); n > 0 && t.parts[n-1].Kind == PartText {
		text.buf.WriteString(t.parts[n-1].Value)
		t.parts = t.parts[:n-1]
	}
	text.buf.WriteString(literal)
	t.state = text
}

func (t *tokenizer) closeDelay(s *delayState) error {
	raw := s.buf.String()
	ms, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a whole number of milliseconds", ErrMalformedDelay, raw)
	}
	t.parts = append(t.parts, Delay(ms))
	t.state = &textState{}
	return nil
}

func (t *tokenizer) closeArg(s *argState) {
	name := s.value.String()
	if s.hasDefault {
		def := s.def.String()
		if previous, replaced := t.defaults.Set(name, def); replaced {
			t.report(DiagDuplicateDefault, fmt.Sprintf(
				"duplicate default value for argument `%s`, previous value `%s` will be ignored",
				name, previous,
			))
		}
	}
	t.parts = append(t.parts, Arg(name))
	t.state = &textState{}
}

func (t *tokenizer) closeCombo(s *comboState) error {
	tokens := comboTokens(s)
	if len(tokens) == 0 {
		t.escape("$!")
		return nil
	}

	keys := make([]keyboardmap.Key, 0, len(tokens))
	for _, tok := range tokens {
		k, ok := t.lookup(tok)
		if !ok {
			if suggestion, found := keyboardmap.Suggest(tok); found {
				return fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownKeyToken, tok, suggestion)
			}
			return fmt.Errorf("%w: %q", ErrUnknownKeyToken, tok)
		}
		keys = append(keys, k)
	}

	t.parts = append(t.parts, KeyCombo(keys...))
	t.state = &textState{}
	return nil
}

// comboTokens drops the empty token left behind by a trailing separator.
func comboTokens(s *comboState) []string {
	tokens := make([]string, 0, len(s.tokens))
	for _, tok := range s.tokens {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// finish closes whatever is still open at the end of the line. Open args
// and combos are closed as if their terminating $ had been written.
func (t *tokenizer) finish() error {
	switch s := t.state.(type) {
	case *delayState:
		if err := t.closeDelay(s); err != nil {
			return err
		}
	case *argState:
		name := s.value.String()
		result := "arg"
		if name == "" {
			result = `text "$@"`
		}
		t.report(DiagIncompleteArg, fmt.Sprintf(
			"argument `$@%s` is incomplete, you might've wanted to complete it or escape it with `$@$`; "+
				"autocompleting as `$@%s$` (%s)",
			name, name, result,
		))
		if name == "" {
			t.escape("$@")
		} else {
			t.closeArg(s)
		}
	case *comboState:
		tokens := comboTokens(s)
		quoted := make([]string, len(tokens))
		for i, tok := range tokens {
			quoted[i] = "`" + tok + "`"
		}
		combo := strings.Join(quoted, "+")
		result := "key combo"
		if len(tokens) == 0 {
			result = `text "$!"`
		}
		t.report(DiagIncompleteCombo, fmt.Sprintf(
			"key combo `$!%s` is incomplete, you might've wanted to complete it or escape it with `$!$`; "+
				"autocompleting as `$!%s$` (%s)",
			combo, combo, result,
		))
		if err := t.closeCombo(s); err != nil {
			return err
		}
	}

	if s, ok := t.state.(*textState); ok {
		t.flushText(s)
	}
	return nil
}
