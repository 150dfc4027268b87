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

// Package keyboardmap maps key names and typed characters to Linux input
// event codes. It is the fixed key vocabulary used by snippet key combos and
// by text playback.
package keyboardmap

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Linux input event codes (see linux/input-event-codes.h).
const (
	KeyEsc        = 1
	Key1          = 2
	Key2          = 3
	Key3          = 4
	Key4          = 5
	Key5          = 6
	Key6          = 7
	Key7          = 8
	Key8          = 9
	Key9          = 10
	Key0          = 11
	KeyMinus      = 12
	KeyEqual      = 13
	KeyBackspace  = 14
	KeyTab        = 15
	KeyQ          = 16
	KeyW          = 17
	KeyE          = 18
	KeyR          = 19
	KeyT          = 20
	KeyY          = 21
	KeyU          = 22
	KeyI          = 23
	KeyO          = 24
	KeyP          = 25
	KeyLeftBrace  = 26
	KeyRightBrace = 27
	KeyEnter      = 28
	KeyLeftCtrl   = 29
	KeyA          = 30
	KeyS          = 31
	KeyD          = 32
	KeyF          = 33
	KeyG          = 34
	KeyH          = 35
	KeyJ          = 36
	KeyK          = 37
	KeyL          = 38
	KeySemicolon  = 39
	KeyApostrophe = 40
	KeyGrave      = 41
	KeyLeftShift  = 42
	KeyBackslash  = 43
	KeyZ          = 44
	KeyX          = 45
	KeyC          = 46
	KeyV          = 47
	KeyB          = 48
	KeyN          = 49
	KeyM          = 50
	KeyComma      = 51
	KeyDot        = 52
	KeySlash      = 53
	KeyRightShift = 54
	KeyLeftAlt    = 56
	KeySpace      = 57
	KeyCapsLock   = 58
	KeyF1         = 59
	KeyF2         = 60
	KeyF3         = 61
	KeyF4         = 62
	KeyF5         = 63
	KeyF6         = 64
	KeyF7         = 65
	KeyF8         = 66
	KeyF9         = 67
	KeyF10        = 68
	KeyNumLock    = 69
	KeyScrollLock = 70
	KeyF11        = 87
	KeyF12        = 88
	KeyRightCtrl  = 97
	KeySysRq      = 99
	KeyRightAlt   = 100
	KeyHome       = 102
	KeyUp         = 103
	KeyPageUp     = 104
	KeyLeft       = 105
	KeyRight      = 106
	KeyEnd        = 107
	KeyDown       = 108
	KeyPageDown   = 109
	KeyInsert     = 110
	KeyDelete     = 111
	KeyMute       = 113
	KeyVolumeDown = 114
	KeyVolumeUp   = 115
	KeyPause      = 119
	KeyLeftMeta   = 125
	KeyRightMeta  = 126
	KeyCompose    = 127
	KeyF13        = 183
)

// Key is a resolved keyboard key. Name is always the canonical name for
// Code, so two Keys are equal exactly when they refer to the same key.
type Key struct {
	Name string
	Code int
}

func (k Key) String() string {
	return k.Name
}

// canonical names, one per code
var names = map[string]int{
	"esc":        KeyEsc,
	"1":          Key1,
	"2":          Key2,
	"3":          Key3,
	"4":          Key4,
	"5":          Key5,
	"6":          Key6,
	"7":          Key7,
	"8":          Key8,
	"9":          Key9,
	"0":          Key0,
	"-":          KeyMinus,
	"=":          KeyEqual,
	"backspace":  KeyBackspace,
	"tab":        KeyTab,
	"q":          KeyQ,
	"w":          KeyW,
	"e":          KeyE,
	"r":          KeyR,
	"t":          KeyT,
	"y":          KeyY,
	"u":          KeyU,
	"i":          KeyI,
	"o":          KeyO,
	"p":          KeyP,
	"[":          KeyLeftBrace,
	"]":          KeyRightBrace,
	"enter":      KeyEnter,
	"ctrl":       KeyLeftCtrl,
	"a":          KeyA,
	"s":          KeyS,
	"d":          KeyD,
	"f":          KeyF,
	"g":          KeyG,
	"h":          KeyH,
	"j":          KeyJ,
	"k":          KeyK,
	"l":          KeyL,
	";":          KeySemicolon,
	"'":          KeyApostrophe,
	"`":          KeyGrave,
	"shift":      KeyLeftShift,
	"\\":         KeyBackslash,
	"z":          KeyZ,
	"x":          KeyX,
	"c":          KeyC,
	"v":          KeyV,
	"b":          KeyB,
	"n":          KeyN,
	"m":          KeyM,
	",":          KeyComma,
	".":          KeyDot,
	"/":          KeySlash,
	"rshift":     KeyRightShift,
	"alt":        KeyLeftAlt,
	"space":      KeySpace,
	"capslock":   KeyCapsLock,
	"f1":         KeyF1,
	"f2":         KeyF2,
	"f3":         KeyF3,
	"f4":         KeyF4,
	"f5":         KeyF5,
	"f6":         KeyF6,
	"f7":         KeyF7,
	"f8":         KeyF8,
	"f9":         KeyF9,
	"f10":        KeyF10,
	"numlock":    KeyNumLock,
	"scrolllock": KeyScrollLock,
	"f11":        KeyF11,
	"f12":        KeyF12,
	"rctrl":      KeyRightCtrl,
	"prtsc":      KeySysRq,
	"ralt":       KeyRightAlt,
	"home":       KeyHome,
	"up":         KeyUp,
	"pageup":     KeyPageUp,
	"left":       KeyLeft,
	"right":      KeyRight,
	"end":        KeyEnd,
	"down":       KeyDown,
	"pagedown":   KeyPageDown,
	"insert":     KeyInsert,
	"delete":     KeyDelete,
	"mute":       KeyMute,
	"volumedown": KeyVolumeDown,
	"volumeup":   KeyVolumeUp,
	"pause":      KeyPause,
	"meta":       KeyLeftMeta,
	"rmeta":      KeyRightMeta,
	"menu":       KeyCompose,
}

var aliases = map[string]string{
	"control":    "ctrl",
	"lctrl":      "ctrl",
	"leftctrl":   "ctrl",
	"rightctrl":  "rctrl",
	"option":     "alt",
	"lalt":       "alt",
	"leftalt":    "alt",
	"rightalt":   "ralt",
	"altgr":      "ralt",
	"lshift":     "shift",
	"leftshift":  "shift",
	"rightshift": "rshift",
	"super":      "meta",
	"win":        "meta",
	"windows":    "meta",
	"cmd":        "meta",
	"command":    "meta",
	"lmeta":      "meta",
	"leftmeta":   "meta",
	"rightmeta":  "rmeta",
	"return":     "enter",
	"cr":         "enter",
	"escape":     "esc",
	"bs":         "backspace",
	"del":        "delete",
	"ins":        "insert",
	"pgup":       "pageup",
	"pgdn":       "pagedown",
	"uparrow":    "up",
	"downarrow":  "down",
	"leftarrow":  "left",
	"rightarrow": "right",
	"caps":       "capslock",
	"print":      "prtsc",
	"sysrq":      "prtsc",
	"minus":      "-",
	"equal":      "=",
	"comma":      ",",
	"dot":        ".",
	"period":     ".",
	"slash":      "/",
	"backslash":  "\\",
	"semicolon":  ";",
	"apostrophe": "'",
	"quote":      "'",
	"grave":      "`",
	"backtick":   "`",
	"leftbrace":  "[",
	"lbracket":   "[",
	"rightbrace": "]",
	"rbracket":   "]",
	"compose":    "menu",
}

// shifted characters and the unshifted key that produces them
var shifted = map[rune]string{
	'!': "1",
	'@': "2",
	'#': "3",
	'$': "4",
	'%': "5",
	'^': "6",
	'&': "7",
	'*': "8",
	'(': "9",
	')': "0",
	'_': "-",
	'+': "=",
	'{': "[",
	'}': "]",
	'|': "\\",
	':': ";",
	'"': "'",
	'~': "`",
	'<': ",",
	'>': ".",
	'?': "/",
}

var byCode map[int]string

func init() {
	// F13-F24 are contiguous
	for i := 0; i < 12; i++ {
		names[fmt.Sprintf("f%d", 13+i)] = KeyF13 + i
	}

	byCode = make(map[int]string, len(names))
	for name, code := range names {
		byCode[code] = name
	}
}

// Lookup resolves a key name, case-insensitively and including aliases, to
// a Key.
func Lookup(name string) (Key, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return Key{}, false
	}
	if canonical, ok := aliases[lower]; ok {
		lower = canonical
	}
	code, ok := names[lower]
	if !ok {
		return Key{}, false
	}
	return Key{Name: lower, Code: code}, true
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Key {
	k, ok := Lookup(name)
	if !ok {
		panic("keyboardmap: unknown key " + name)
	}
	return k
}

// FromCode returns the Key for a raw input event code.
func FromCode(code int) (Key, bool) {
	name, ok := byCode[code]
	if !ok {
		return Key{}, false
	}
	return Key{Name: name, Code: code}, true
}

// RuneKey returns the key that types r and whether shift must be held while
// pressing it. Only characters on a US keyboard layout can be typed.
func RuneKey(r rune) (key Key, shift bool, ok bool) {
	switch r {
	case ' ':
		return MustLookup("space"), false, true
	case '\t':
		return MustLookup("tab"), false, true
	}

	if r > unicode.MaxASCII || !unicode.IsPrint(r) {
		return Key{}, false, false
	}

	if unicode.IsUpper(r) {
		k, ok := Lookup(string(unicode.ToLower(r)))
		return k, true, ok
	}

	if base, ok := shifted[r]; ok {
		k, ok := Lookup(base)
		return k, true, ok
	}

	k, ok := Lookup(string(r))
	if !ok || len(k.Name) != 1 {
		return Key{}, false, false
	}
	return k, false, true
}

// Names returns every accepted key name, canonical names and aliases, in
// sorted order.
func Names() []string {
	all := make([]string, 0, len(names)+len(aliases))
	for name := range names {
		all = append(all, name)
	}
	for alias := range aliases {
		all = append(all, alias)
	}
	sort.Strings(all)
	return all
}
