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

import "fmt"

type DiagnosticKind int

const (
	// DiagIncompleteArg is an argument still open at the end of a line.
	DiagIncompleteArg DiagnosticKind = iota
	// DiagIncompleteCombo is a key combo still open at the end of a line.
	DiagIncompleteCombo
	// DiagDuplicateDefault is a second default declared for one argument.
	DiagDuplicateDefault
	// DiagTrailingContinuation is a continuation backslash on the last line.
	DiagTrailingContinuation
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagIncompleteArg:
		return "incomplete-arg"
	case DiagIncompleteCombo:
		return "incomplete-combo"
	case DiagDuplicateDefault:
		return "duplicate-default"
	case DiagTrailingContinuation:
		return "trailing-continuation"
	default:
		return "unknown"
	}
}

// Diagnostic is a problem the parser recovered from. Line is the 1-based
// physical line where the affected logical line starts.
type Diagnostic struct {
	Message string
	Kind    DiagnosticKind
	Line    int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}
