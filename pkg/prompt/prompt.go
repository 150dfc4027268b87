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

// Package prompt asks the operator for single lines of input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoInput is returned when input is closed before an answer is given.
var ErrNoInput = errors.New("no input available")

// Asker asks a question and returns the trimmed answer.
type Asker interface {
	Ask(question string) (string, error)
}

// AskerFunc adapts a function to an Asker.
type AskerFunc func(question string) (string, error)

func (f AskerFunc) Ask(question string) (string, error) {
	return f(question)
}

// LinePrompter writes "question: " and reads one line.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// NewStdPrompter prompts on stderr so prompts never mix with output that
// may be piped elsewhere.
func NewStdPrompter() *LinePrompter {
	return NewLinePrompter(os.Stdin, os.Stderr)
}

func (p *LinePrompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		if line == "" {
			return "", ErrNoInput
		}
	}

	return strings.TrimSpace(line), nil
}

// YesOrNo asks a y/n question, an empty answer picks def. Unrecognised
// answers ask again.
func YesOrNo(a Asker, label string, def bool) (bool, error) {
	choices := "y/N"
	if def {
		choices = "Y/n"
	}

	for {
		s, err := a.Ask(fmt.Sprintf("%s [%s]", label, choices))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
