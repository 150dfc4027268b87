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
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/zaparoo-paste/pkg/args"
	"github.com/ZaparooProject/zaparoo-paste/pkg/snippet"
)

// WriteCheck prints a parsed snippet without typing it: its lines, the
// declared defaults, the referenced arguments with where their value would
// come from, and any warnings.
func WriteCheck(w io.Writer, s *snippet.Snippet, supplied *args.Values) error {
	var b strings.Builder

	b.WriteString("Lines:\n")
	for i, line := range s.Lines {
		marker := " "
		if line.IsComment() {
			marker = "#"
		}
		fmt.Fprintf(&b, "%s %3d  %s\n", marker, i+1, line.String())
	}

	if s.Defaults.Len() > 0 {
		b.WriteString("\nDefaults:\n")
		for _, name := range s.Defaults.Names() {
			v, _ := s.Defaults.Get(name)
			fmt.Fprintf(&b, "  %s = %q\n", name, v)
		}
	}

	if names := args.Referenced(s); len(names) > 0 {
		b.WriteString("\nArguments:\n")
		for _, name := range names {
			switch v, ok := supplied.Get(name); {
			case ok:
				fmt.Fprintf(&b, "  %s: supplied %q\n", name, v)
			case hasDefault(s, name):
				d, _ := s.Defaults.Get(name)
				fmt.Fprintf(&b, "  %s: prompt, default %q\n", name, d)
			default:
				fmt.Fprintf(&b, "  %s: prompt\n", name)
			}
		}
	}

	if len(s.Diagnostics) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, d := range s.Diagnostics {
			fmt.Fprintf(&b, "  %s\n", d)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write check output: %w", err)
	}
	return nil
}

func hasDefault(s *snippet.Snippet, name string) bool {
	_, ok := s.Defaults.Get(name)
	return ok
}
