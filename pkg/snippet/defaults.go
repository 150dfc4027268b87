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

// Registry holds argument defaults declared inline with "$@name::default$".
// Names keep the position of their first declaration; a later declaration
// only replaces the value.
type Registry struct {
	values map[string]string
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		values: make(map[string]string),
	}
}

// Set stores value under name and returns the value it replaced, if any.
func (r *Registry) Set(name, value string) (previous string, replaced bool) {
	previous, replaced = r.values[name]
	if !replaced {
		r.order = append(r.order, name)
	}
	r.values[name] = value
	return previous, replaced
}

func (r *Registry) Get(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.values[name]
	return v, ok
}

// Names returns the registered names in first-declaration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
