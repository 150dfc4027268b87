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

// Package snippet parses keystroke snippet templates.
//
// A snippet is line oriented text where each logical line is typed and then
// submitted with a commit key. Inside a line the following tokens are
// recognised:
//
//	$'<digits>$            pause for the given number of milliseconds
//	$@<name>$              argument placeholder
//	$@<name>::<default>$   argument placeholder with a default value
//	$@$                    literal "$@"
//	$!<key>[+<key>...]$    key combo, keys separated by "+" or spaces
//	$!$                    literal "$!"
//
// A physical line ending in a backslash continues on the next line, and a
// line whose first part is text starting with "##" is a comment.
package snippet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
)

var (
	ErrMalformedDelay     = errors.New("malformed delay")
	ErrUnknownKeyToken    = errors.New("unknown key token")
	ErrUnsupportedArglist = errors.New("arglists are not supported")
)

const (
	SymToken        = '$'
	SymDelayStart   = '\''
	SymArgStart     = '@'
	SymArglistStart = '['
	SymComboStart   = '!'
	SymComboSep     = '+'
	SymComboSpace   = ' '
	SymDefaultSep   = ':'
	SymContinuation = '\\'
	CommentPrefix   = "##"
)

type PartKind int

const (
	PartText PartKind = iota
	PartDelay
	PartArg
	PartKeyCombo
)

func (k PartKind) String() string {
	switch k {
	case PartText:
		return "text"
	case PartDelay:
		return "delay"
	case PartArg:
		return "arg"
	case PartKeyCombo:
		return "key combo"
	default:
		return "unknown"
	}
}

// Part is one typed unit of a parsed line. Value holds the literal text of
// a PartText or the argument name of a PartArg, Delay the milliseconds of a
// PartDelay and Keys the chord of a PartKeyCombo.
type Part struct {
	Value string
	Keys  []keyboardmap.Key
	Delay uint64
	Kind  PartKind
}

func Text(value string) Part {
	return Part{Kind: PartText, Value: value}
}

func Delay(ms uint64) Part {
	return Part{Kind: PartDelay, Delay: ms}
}

func Arg(name string) Part {
	return Part{Kind: PartArg, Value: name}
}

func KeyCombo(keys ...keyboardmap.Key) Part {
	return Part{Kind: PartKeyCombo, Keys: keys}
}

// String renders the part back into template syntax. Literal "$@" and "$!"
// in text are written in their escaped forms.
func (p Part) String() string {
	switch p.Kind {
	case PartText:
		return escapeText(p.Value)
	case PartDelay:
		return "$'" + strconv.FormatUint(p.Delay, 10) + "$"
	case PartArg:
		return "$@" + p.Value + "$"
	case PartKeyCombo:
		names := make([]string, len(p.Keys))
		for i, k := range p.Keys {
			names[i] = k.Name
		}
		return "$!" + strings.Join(names, "+") + "$"
	default:
		return ""
	}
}

func escapeText(s string) string {
	if !strings.ContainsRune(s, SymToken) {
		return s
	}
	var sb strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		sb.WriteRune(rs[i])
		if rs[i] != SymToken || i+1 >= len(rs) {
			continue
		}
		if next := rs[i+1]; next == SymArgStart || next == SymComboStart {
			sb.WriteRune(next)
			sb.WriteRune(SymToken)
			i++
		}
	}
	return sb.String()
}

func (p Part) GoString() string {
	switch p.Kind {
	case PartKeyCombo:
		return fmt.Sprintf("%s(%v)", p.Kind, p.Keys)
	case PartDelay:
		return fmt.Sprintf("%s(%d)", p.Kind, p.Delay)
	default:
		return fmt.Sprintf("%s(%q)", p.Kind, p.Value)
	}
}

// Line is one logical line of a snippet. Part order is typing order.
type Line []Part

func (l Line) String() string {
	var sb strings.Builder
	for _, p := range l {
		sb.WriteString(p.String())
	}
	return sb.String()
}

// IsComment reports whether the line is skipped during playback. Only a
// line starting with literal text can be a comment.
func (l Line) IsComment() bool {
	if len(l) == 0 || l[0].Kind != PartText {
		return false
	}
	return strings.HasPrefix(l[0].Value, CommentPrefix)
}

// Snippet is a fully parsed template.
type Snippet struct {
	Defaults    *Registry
	Lines       []Line
	Diagnostics []Diagnostic
}
