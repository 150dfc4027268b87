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

package chord

import (
	"errors"
	"sync"
	"testing"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func keys(names ...string) []keyboardmap.Key {
	ks := make([]keyboardmap.Key, len(names))
	for i, n := range names {
		ks[i] = keyboardmap.MustLookup(n)
	}
	return ks
}

func render(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.String()
	}
	return out
}

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{
			name: "repeated key releases it",
			keys: []string{"ctrl", "alt", "ctrl"},
			want: []string{"press ctrl", "press alt", "release ctrl", "release alt"},
		},
		{
			name: "no repeats nest symmetrically",
			keys: []string{"a", "b"},
			want: []string{"press a", "press b", "release b", "release a"},
		},
		{
			name: "single key",
			keys: []string{"esc"},
			want: []string{"press esc", "release esc"},
		},
		{
			name: "pressed again after release",
			keys: []string{"shift", "shift", "shift"},
			want: []string{"press shift", "release shift", "press shift", "release shift"},
		},
		{
			name: "aliases toggle the same key",
			keys: []string{"ctrl", "control"},
			want: []string{"press ctrl", "release ctrl"},
		},
		{
			name: "empty",
			keys: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(Expand(keys(tt.keys...))))
		})
	}
}

// TestPropertyExpandBalanced verifies every expansion leaves no key down and
// never releases a key that is not held.
func TestPropertyExpandBalanced(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfN(rapid.SampledFrom([]string{"ctrl", "alt", "shift", "a", "b"}), 0, 12).
			Draw(t, "keys")

		down := make(map[int]bool)
		for _, a := range Expand(keys(names...)) {
			switch a.Dir {
			case Press:
				if down[a.Key.Code] {
					t.Fatalf("%s pressed twice", a.Key)
				}
				down[a.Key.Code] = true
			case Release:
				if !down[a.Key.Code] {
					t.Fatalf("%s released while up", a.Key)
				}
				delete(down, a.Key.Code)
			}
		}
		if len(down) != 0 {
			t.Fatalf("keys left down: %v", down)
		}
	})
}

type recordingKeyboard struct {
	upErr  map[string]error
	events []string
	mu     sync.Mutex
}

func (r *recordingKeyboard) KeyDown(k keyboardmap.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "down "+k.Name)
	return nil
}

func (r *recordingKeyboard) KeyUp(k keyboardmap.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.upErr[k.Name]; err != nil {
		return err
	}
	r.events = append(r.events, "up "+k.Name)
	return nil
}

func TestTrackerApply(t *testing.T) {
	t.Parallel()

	kbd := &recordingKeyboard{}
	tr := NewTracker(kbd)

	actions := Expand(keys("ctrl", "shift", "t"))
	for _, a := range actions[:3] {
		require.NoError(t, tr.Apply(a))
	}
	assert.Equal(t, keys("ctrl", "shift", "t"), tr.Held())

	for _, a := range actions[3:] {
		require.NoError(t, tr.Apply(a))
	}
	assert.Empty(t, tr.Held())
	assert.Equal(t, []string{
		"down ctrl", "down shift", "down t",
		"up t", "up shift", "up ctrl",
	}, kbd.events)
}

func TestTrackerClick(t *testing.T) {
	t.Parallel()

	kbd := &recordingKeyboard{}
	tr := NewTracker(kbd)

	require.NoError(t, tr.Click(keyboardmap.MustLookup("enter")))
	assert.Equal(t, []string{"down enter", "up enter"}, kbd.events)
	assert.Empty(t, tr.Held())
}

func TestTrackerReleaseAll(t *testing.T) {
	t.Parallel()

	kbd := &recordingKeyboard{}
	tr := NewTracker(kbd)

	for _, k := range keys("ctrl", "alt", "delete") {
		require.NoError(t, tr.Press(k))
	}
	require.NoError(t, tr.ReleaseAll())

	assert.Equal(t, []string{
		"down ctrl", "down alt", "down delete",
		"up delete", "up alt", "up ctrl",
	}, kbd.events)
	assert.Empty(t, tr.Held())

	require.NoError(t, tr.ReleaseAll(), "releasing with nothing held is a no-op")
}

func TestTrackerReleaseAll_ContinuesPastErrors(t *testing.T) {
	t.Parallel()

	errStuck := errors.New("stuck")
	kbd := &recordingKeyboard{upErr: map[string]error{"alt": errStuck}}
	tr := NewTracker(kbd)

	for _, k := range keys("ctrl", "alt", "a") {
		require.NoError(t, tr.Press(k))
	}

	err := tr.ReleaseAll()
	require.ErrorIs(t, err, errStuck)
	assert.Contains(t, err.Error(), "alt")
	assert.Equal(t, []string{"down ctrl", "down alt", "down a", "up a", "up ctrl"}, kbd.events)
	assert.Empty(t, tr.Held())
}

func TestTrackerRelease_FailureKeepsKeyHeld(t *testing.T) {
	t.Parallel()

	kbd := &recordingKeyboard{upErr: map[string]error{"shift": errors.New("busy")}}
	tr := NewTracker(kbd)

	require.NoError(t, tr.Press(keyboardmap.MustLookup("shift")))
	require.Error(t, tr.Release(keyboardmap.MustLookup("shift")))
	assert.Equal(t, keys("shift"), tr.Held())
}

func TestTrackerReleaseAll_Concurrent(t *testing.T) {
	t.Parallel()

	kbd := &recordingKeyboard{}
	tr := NewTracker(kbd)

	var wg sync.WaitGroup
	for _, k := range keys("a", "b", "c", "d") {
		wg.Add(1)
		go func(k keyboardmap.Key) {
			defer wg.Done()
			assert.NoError(t, tr.Press(k))
		}(k)
	}
	wg.Wait()

	require.NoError(t, tr.ReleaseAll())
	assert.Empty(t, tr.Held())
	assert.Len(t, kbd.events, 8)
}
