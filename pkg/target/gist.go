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

package target

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type gistFile struct {
	RawURL string `json:"raw_url"`
}

// gistFiles keeps the order files appear in the API response so "the first
// file" means the same thing GitHub shows.
type gistFiles struct {
	byName map[string]gistFile
	names  []string
}

func (g *gistFiles) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read gist files: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("gist files must be an object")
	}

	g.byName = make(map[string]gistFile)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read gist file name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return errors.New("gist file name must be a string")
		}

		var f gistFile
		if err := dec.Decode(&f); err != nil {
			return fmt.Errorf("failed to decode gist file %q: %w", name, err)
		}
		if _, dup := g.byName[name]; !dup {
			g.names = append(g.names, name)
		}
		g.byName[name] = f
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read gist files: %w", err)
	}
	return nil
}

// Pick returns the named file, or the first file when no file has that name.
func (g *gistFiles) Pick(name string) (gistFile, bool) {
	if f, ok := g.byName[name]; ok {
		return f, true
	}
	if len(g.names) == 0 {
		return gistFile{}, false
	}
	return g.byName[g.names[0]], true
}

type gist struct {
	Files gistFiles `json:"files"`
}

// gistURL resolves a gist target to the raw URL of one of its files.
func (l *Loader) gistURL(ctx context.Context, spec string) (string, error) {
	if spec == "" {
		return "", ErrGistFormat
	}

	if user, file, ok := strings.Cut(spec, "/"); ok {
		if user == "" || file == "" {
			return "", fmt.Errorf("%w: %s", ErrGistFormat, spec)
		}
		return l.searchUserGists(ctx, user, file)
	}

	id, file, _ := strings.Cut(spec, "#")
	if id == "" {
		return "", fmt.Errorf("%w: %s", ErrGistFormat, spec)
	}
	if file == "" {
		file = id
	}

	u, err := url.JoinPath(l.apiBase, "gists", id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGistFormat, err)
	}

	data, err := l.client.Fetch(ctx, u)
	if isNotFound(err) {
		return "", fmt.Errorf("%w: %s", ErrGistNotFound, id)
	} else if err != nil {
		return "", fmt.Errorf("failed to fetch gist: %w", err)
	}

	var g gist
	if err := json.Unmarshal(data, &g); err != nil {
		return "", fmt.Errorf("failed to decode gist %s: %w", id, err)
	}

	f, ok := g.Files.Pick(file)
	if !ok || f.RawURL == "" {
		return "", fmt.Errorf("%w: %s has no files", ErrGistNotFound, id)
	}
	return f.RawURL, nil
}

func (l *Loader) searchUserGists(ctx context.Context, user, file string) (string, error) {
	base, err := url.JoinPath(l.apiBase, "users", user, "gists")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGistFormat, err)
	}

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("gist search cancelled: %w", err)
		}

		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(gistsPerPage))

		data, err := l.client.Fetch(ctx, base+"?"+q.Encode())
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrGistUserNotFound, user)
		} else if err != nil {
			return "", fmt.Errorf("failed to list gists: %w", err)
		}

		var gists []gist
		if err := json.Unmarshal(data, &gists); err != nil {
			return "", fmt.Errorf("failed to decode gists of %s: %w", user, err)
		}
		if len(gists) == 0 {
			return "", fmt.Errorf("%w: %s", ErrGistNotFound, file)
		}

		for i := range gists {
			if f, ok := gists[i].Files.byName[file]; ok && f.RawURL != "" {
				return f.RawURL, nil
			}
		}
	}
}
