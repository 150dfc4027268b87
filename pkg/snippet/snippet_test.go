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
	"strings"
	"testing"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(name string) keyboardmap.Key {
	return keyboardmap.MustLookup(name)
}

func TestParseString_ArgsAndEscapes(t *testing.T) {
	t.Parallel()

	s, err := ParseString("test $@arg1::a$ $@$ $@arg2$")
	require.NoError(t, err)

	require.Len(t, s.Lines, 1)
	assert.Equal(t, Line{
		Text("test "),
		Arg("arg1"),
		Text(" $@ "),
		Arg("arg2"),
	}, s.Lines[0])
	assert.Equal(t, []string{"arg1"}, s.Defaults.Names())
	v, ok := s.Defaults.Get("arg1")
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Empty(t, s.Diagnostics)
}

func TestParseString_DuplicateDefaultKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	s, err := ParseString("test $@arg1$ $@arg2::a$ $@$ $@arg3$\n" +
		"test $@arg3$ $ $@arg1::b$ $@arg2$")
	require.NoError(t, err)

	require.Len(t, s.Lines, 2)
	assert.Equal(t, Line{
		Text("test "),
		Arg("arg3"),
		Text(" $ "),
		Arg("arg1"),
		Text(" "),
		Arg("arg2"),
	}, s.Lines[1])

	assert.Equal(t, []string{"arg2", "arg1"}, s.Defaults.Names())
	v, _ := s.Defaults.Get("arg1")
	assert.Equal(t, "b", v)
	v, _ = s.Defaults.Get("arg2")
	assert.Equal(t, "a", v)
	assert.Empty(t, s.Diagnostics, "first declaration of arg1 is not a duplicate")
}

func TestParseString_RedeclaredDefault(t *testing.T) {
	t.Parallel()

	s, err := ParseString("$@x::1$\n$@y::2$ $@x::3$")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, s.Defaults.Names())
	v, _ := s.Defaults.Get("x")
	assert.Equal(t, "3", v)

	require.Len(t, s.Diagnostics, 1)
	d := s.Diagnostics[0]
	assert.Equal(t, DiagDuplicateDefault, d.Kind)
	assert.Equal(t, 2, d.Line)
	assert.Contains(t, d.Message, "`1` will be ignored")
}

func TestParseString_KeyCombo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Line
	}{
		{
			name:  "plus separated",
			input: "$!ctrl+alt+t$",
			want:  Line{KeyCombo(key("ctrl"), key("alt"), key("t"))},
		},
		{
			name:  "space separated",
			input: "$!ctrl c$",
			want:  Line{KeyCombo(key("ctrl"), key("c"))},
		},
		{
			name:  "collapsed separators",
			input: "$! +ctrl ++ shift+$",
			want:  Line{KeyCombo(key("ctrl"), key("shift"))},
		},
		{
			name:  "aliases",
			input: "$!Control+Return$",
			want:  Line{KeyCombo(key("ctrl"), key("enter"))},
		},
		{
			name:  "surrounded by text",
			input: "a $!esc$ b",
			want:  Line{Text("a "), KeyCombo(key("esc")), Text(" b")},
		},
		{
			name:  "escape merges into text",
			input: "cost $!$ now",
			want:  Line{Text("cost $! now")},
		},
		{
			name:  "separators only is an escape",
			input: "x$!+ $",
			want:  Line{Text("x$!")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := ParseString(tt.input)
			require.NoError(t, err)
			require.Len(t, s.Lines, 1)
			assert.Equal(t, tt.want, s.Lines[0])
		})
	}
}

func TestParseString_IncompleteCombo(t *testing.T) {
	t.Parallel()

	s, err := ParseString("$!ctrl+alt")
	require.NoError(t, err)

	require.Len(t, s.Lines, 1)
	assert.Equal(t, Line{KeyCombo(key("ctrl"), key("alt"))}, s.Lines[0])
	require.Len(t, s.Diagnostics, 1)
	assert.Equal(t, DiagIncompleteCombo, s.Diagnostics[0].Kind)
	assert.Contains(t, s.Diagnostics[0].Message, "(key combo)")
}

func TestParseString_IncompleteEmptyCombo(t *testing.T) {
	t.Parallel()

	s, err := ParseString("price $!")
	require.NoError(t, err)

	assert.Equal(t, Line{Text("price $!")}, s.Lines[0])
	require.Len(t, s.Diagnostics, 1)
	assert.Contains(t, s.Diagnostics[0].Message, `(text "$!")`)
}

func TestParseString_IncompleteArg(t *testing.T) {
	t.Parallel()

	s, err := ParseString("hello $@name")
	require.NoError(t, err)

	assert.Equal(t, Line{Text("hello "), Arg("name")}, s.Lines[0])
	require.Len(t, s.Diagnostics, 1)
	assert.Equal(t, DiagIncompleteArg, s.Diagnostics[0].Kind)
	assert.Equal(t, 1, s.Diagnostics[0].Line)
	assert.Contains(t, s.Diagnostics[0].Message, "(arg)")
}

func TestParseString_IncompleteArgWithDefault(t *testing.T) {
	t.Parallel()

	s, err := ParseString("$@count::5")
	require.NoError(t, err)

	assert.Equal(t, Line{Arg("count")}, s.Lines[0])
	v, ok := s.Defaults.Get("count")
	require.True(t, ok)
	assert.Equal(t, "5", v)
	require.Len(t, s.Diagnostics, 1)
}

func TestParseString_IncompleteEmptyArg(t *testing.T) {
	t.Parallel()

	s, err := ParseString("mail me $@")
	require.NoError(t, err)

	assert.Equal(t, Line{Text("mail me $@")}, s.Lines[0])
	require.Len(t, s.Diagnostics, 1)
	assert.Contains(t, s.Diagnostics[0].Message, `(text "$@")`)
}

func TestParseString_EscapeDiscardsStartedDefault(t *testing.T) {
	t.Parallel()

	s, err := ParseString("$@::x$")
	require.NoError(t, err)

	// the closing $ still sees an empty name, so the whole token collapses
	// to the literal opener and the default is dropped
	assert.Equal(t, Line{Text("$@")}, s.Lines[0])
	assert.Zero(t, s.Defaults.Len())
}

func TestParseString_Delay(t *testing.T) {
	t.Parallel()

	s, err := ParseString("a$'250$b")
	require.NoError(t, err)
	assert.Equal(t, Line{Text("a"), Delay(250), Text("b")}, s.Lines[0])

	s, err = ParseString("wait $'1000")
	require.NoError(t, err)
	assert.Equal(t, Line{Text("wait "), Delay(1000)}, s.Lines[0])
	assert.Empty(t, s.Diagnostics, "open delays at end of line are not reported")
}

func TestParseString_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr error
		name    string
		input   string
		wantMsg string
	}{
		{name: "non numeric delay", input: "$'soon$", wantErr: ErrMalformedDelay},
		{name: "empty delay", input: "$'$", wantErr: ErrMalformedDelay},
		{name: "negative delay", input: "$'-5$", wantErr: ErrMalformedDelay},
		{name: "open malformed delay", input: "$'12ms", wantErr: ErrMalformedDelay},
		{name: "arglist", input: "x $[a b]$", wantErr: ErrUnsupportedArglist},
		{name: "unknown key", input: "$!hyper$", wantErr: ErrUnknownKeyToken, wantMsg: `"hyper"`},
		{name: "misspelt key", input: "$!ctlr+c$", wantErr: ErrUnknownKeyToken, wantMsg: `did you mean "ctrl"`},
		{name: "second line", input: "ok\n$!nope$", wantErr: ErrUnknownKeyToken, wantMsg: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseString(tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseString_CustomKeyLookup(t *testing.T) {
	t.Parallel()

	macro := keyboardmap.Key{Name: "macro1", Code: 999}
	lookup := func(tok string) (keyboardmap.Key, bool) {
		if tok == "macro1" {
			return macro, true
		}
		return keyboardmap.Lookup(tok)
	}

	s, err := ParseString("$!ctrl+macro1$", WithKeyLookup(lookup))
	require.NoError(t, err)
	assert.Equal(t, Line{KeyCombo(key("ctrl"), macro)}, s.Lines[0])
}

func TestParse_Continuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Line
	}{
		{
			name:  "joined with leading whitespace trimmed",
			input: "echo one \\\n    two\nnext",
			want:  []Line{{Text("echo one two")}, {Text("next")}},
		},
		{
			name:  "multiple continuations",
			input: "a\\\n b\\\n\tc",
			want:  []Line{{Text("abc")}},
		},
		{
			name:  "double backslash keeps one and continues",
			input: "path\\\\\n rest",
			want:  []Line{{Text("path\\rest")}},
		},
		{
			name:  "backslash then space is literal",
			input: "dir\\ \nnext",
			want:  []Line{{Text("dir\\ ")}, {Text("next")}},
		},
		{
			name:  "crlf line endings",
			input: "one\r\ntwo \\\r\n three\r\n",
			want:  []Line{{Text("one")}, {Text("two three")}},
		},
		{
			name:  "token split across lines",
			input: "$@na\\\n me$",
			want:  []Line{{Arg("name")}},
		},
		{
			name:  "empty lines are kept",
			input: "a\n\nb",
			want:  []Line{{Text("a")}, nil, {Text("b")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Lines)
			assert.Empty(t, s.Diagnostics)
		})
	}
}

func TestParse_TrailingContinuation(t *testing.T) {
	t.Parallel()

	s, err := ParseString("first\nsecond \\")
	require.NoError(t, err)

	assert.Equal(t, []Line{{Text("first")}, {Text("second ")}}, s.Lines)
	require.Len(t, s.Diagnostics, 1)
	assert.Equal(t, DiagTrailingContinuation, s.Diagnostics[0].Kind)
	assert.Equal(t, 2, s.Diagnostics[0].Line)
}

func TestParse_DiagnosticLineIsLogicalStart(t *testing.T) {
	t.Parallel()

	s, err := ParseString("ok\nhello \\\n  $@who")
	require.NoError(t, err)

	require.Len(t, s.Diagnostics, 1)
	assert.Equal(t, 2, s.Diagnostics[0].Line)
	assert.Equal(t, "line 2: "+s.Diagnostics[0].Message, s.Diagnostics[0].String())
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	s, err := ParseString("")
	require.NoError(t, err)
	assert.Empty(t, s.Lines)
	assert.Zero(t, s.Defaults.Len())
}

func TestLineIsComment(t *testing.T) {
	t.Parallel()

	s, err := ParseString("## $@not::parsed$ as comment\n $!esc$ ## no\n$@x$ ##\n#not")
	require.NoError(t, err)
	require.Len(t, s.Lines, 4)

	assert.True(t, s.Lines[0].IsComment())
	assert.False(t, s.Lines[1].IsComment())
	assert.False(t, s.Lines[2].IsComment())
	assert.False(t, s.Lines[3].IsComment())

	// defaults inside comment lines are still registered
	_, ok := s.Defaults.Get("not")
	assert.True(t, ok)
}

func TestPartString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
		part Part
	}{
		{name: "text", part: Text("hi"), want: "hi"},
		{name: "text with escapes", part: Text("$@ and $! and $"), want: "$@$ and $!$ and $"},
		{name: "delay", part: Delay(40), want: "$'40$"},
		{name: "arg", part: Arg("user"), want: "$@user$"},
		{name: "combo", part: KeyCombo(key("ctrl"), key("shift"), key("t")), want: "$!ctrl+shift+t$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.part.String())
		})
	}
}

func TestLineStringRoundTrip(t *testing.T) {
	t.Parallel()

	src := "say $@$@greeting$ to $@who$ $'10$$!alt+f4$ $!$"
	s, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, s.Lines, 1)

	again, err := ParseString(s.Lines[0].String())
	require.NoError(t, err)
	assert.Equal(t, s.Lines, again.Lines)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, replaced := r.Set("b", "1")
	assert.False(t, replaced)
	_, replaced = r.Set("a", "2")
	assert.False(t, replaced)
	prev, replaced := r.Set("b", "3")
	assert.True(t, replaced)
	assert.Equal(t, "1", prev)

	assert.Equal(t, []string{"b", "a"}, r.Names())
	assert.Equal(t, 2, r.Len())

	names := r.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"b", "a"}, r.Names(), "Names must return a copy")

	var nilReg *Registry
	_, ok := nilReg.Get("a")
	assert.False(t, ok)
	assert.Zero(t, nilReg.Len())
}
