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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
)

type Option func(*Parser)

// WithKeyLookup replaces the table used to resolve key combo tokens.
func WithKeyLookup(lookup KeyLookup) Option {
	return func(p *Parser) {
		p.lookup = lookup
	}
}

// Parser accumulates logical lines into a snippet. The defaults registry is
// shared by every line fed to the same parser.
type Parser struct {
	lookup      KeyLookup
	defaults    *Registry
	lines       []Line
	diagnostics []Diagnostic
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		lookup:   keyboardmap.Lookup,
		defaults: NewRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) diagnose(lineNo int, kind DiagnosticKind, msg string) {
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Line:    lineNo,
		Kind:    kind,
		Message: msg,
	})
}

// ParseLine tokenizes one logical line. lineNo is only used to label
// diagnostics.
func (p *Parser) ParseLine(line string, lineNo int) error {
	t := &tokenizer{
		lookup:   p.lookup,
		defaults: p.defaults,
		report: func(kind DiagnosticKind, msg string) {
			p.diagnose(lineNo, kind, msg)
		},
	}
	parsed, err := t.tokenize(line)
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	p.lines = append(p.lines, parsed)
	return nil
}

func (p *Parser) Snippet() *Snippet {
	return &Snippet{
		Lines:       p.lines,
		Defaults:    p.defaults,
		Diagnostics: p.diagnostics,
	}
}

// Parse reads a whole snippet. Physical lines ending in a single backslash
// are joined with the next line, whose leading whitespace is dropped.
func Parse(r io.Reader, opts ...Option) (*Snippet, error) {
	p := NewParser(opts...)
	br := bufio.NewReader(r)

	var logical strings.Builder
	continuing := false
	physical := 0
	start := 0

	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read snippet: %w", readErr)
		}
		if raw == "" && readErr != nil {
			break
		}
		physical++

		line := strings.TrimSuffix(raw, "\n")
		line = strings.TrimSuffix(line, "\r")
		if continuing {
			line = strings.TrimLeftFunc(line, unicode.IsSpace)
		} else {
			start = physical
		}

		if strings.HasSuffix(line, string(SymContinuation)) {
			logical.WriteString(line[:len(line)-1])
			continuing = true
		} else {
			logical.WriteString(line)
			continuing = false
			if err := p.ParseLine(logical.String(), start); err != nil {
				return nil, err
			}
			logical.Reset()
		}

		if readErr != nil {
			break
		}
	}

	if continuing {
		p.diagnose(start, DiagTrailingContinuation,
			"last line ends with a line continuation, the continuation will be ignored")
		if err := p.ParseLine(logical.String(), start); err != nil {
			return nil, err
		}
	}

	return p.Snippet(), nil
}

func ParseString(s string, opts ...Option) (*Snippet, error) {
	return Parse(strings.NewReader(s), opts...)
}
