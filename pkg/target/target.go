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

// Package target resolves a snippet target string to the snippet's bytes.
//
// Supported forms:
//
//	github:<user>/<repo>/<path>[#branch]
//	gist:<id>[#file]
//	gist:<user>/<file>
//	http://... and https://...
//	clipboard: (the current clipboard text)
//	anything else is a local path
package target

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ZaparooProject/zaparoo-paste/pkg/prompt"
	"github.com/ZaparooProject/zaparoo-paste/pkg/shared/httpclient"
	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	GitHubPrefix    = "github:"
	GistPrefix      = "gist:"
	ClipboardTarget = "clipboard:"

	DefaultRawBase = "https://raw.githubusercontent.com"
	DefaultAPIBase = "https://api.github.com"
	DefaultBranch  = "master"

	gistsPerPage = 100
)

var (
	ErrGitHubFormat     = errors.New("could not parse `github:` formatted input")
	ErrGistFormat       = errors.New("could not parse `gist:` formatted input")
	ErrGistNotFound     = errors.New("gist not found")
	ErrGistUserNotFound = errors.New("gist user not found")
	ErrURLFormat        = errors.New("could not parse URL")
	ErrPathIsNotFile    = errors.New("path does not exist or does not point to a file")
	ErrCancelledRun     = errors.New("cancelled")
	ErrRemoteDisabled   = errors.New("remote snippets are disabled")
	ErrClipboardEmpty   = errors.New("clipboard is empty")
)

// Loader fetches snippets from the local filesystem or the network.
type Loader struct {
	fs          afero.Fs
	client      *httpclient.Client
	asker       prompt.Asker
	out         io.Writer
	phrase      func() string
	clipboard   func() (string, error)
	rawBase     string
	apiBase     string
	allowRemote bool
	confirm     bool
}

type Option func(*Loader)

// WithRemote sets whether remote targets are allowed and whether they need
// to be confirmed before running.
func WithRemote(allow, confirm bool) Option {
	return func(l *Loader) {
		l.allowRemote = allow
		l.confirm = confirm
	}
}

// WithBaseURLs overrides the GitHub raw content and API hosts.
func WithBaseURLs(raw, api string) Option {
	return func(l *Loader) {
		l.rawBase = strings.TrimRight(raw, "/")
		l.apiBase = strings.TrimRight(api, "/")
	}
}

// WithPhrase overrides the confirmation phrase generator.
func WithPhrase(fn func() string) Option {
	return func(l *Loader) {
		l.phrase = fn
	}
}

// WithClipboard overrides how the clipboard is read.
func WithClipboard(fn func() (string, error)) Option {
	return func(l *Loader) {
		l.clipboard = fn
	}
}

// ConfirmationPhrase returns a short random phrase the operator must type
// back before a remote snippet runs.
func ConfirmationPhrase() string {
	id := uuid.NewString()
	first, _, _ := strings.Cut(id, "-")
	return first
}

// NewLoader creates a Loader. Remote snippets are printed to out and
// confirmed through asker.
func NewLoader(
	fs afero.Fs,
	client *httpclient.Client,
	asker prompt.Asker,
	out io.Writer,
	opts ...Option,
) *Loader {
	l := &Loader{
		fs:          fs,
		client:      client,
		asker:       asker,
		out:         out,
		phrase:      ConfirmationPhrase,
		clipboard:   clipboard.ReadAll,
		rawBase:     DefaultRawBase,
		apiBase:     DefaultAPIBase,
		allowRemote: true,
		confirm:     true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsRemote reports whether target would be fetched over the network.
func IsRemote(target string) bool {
	target = strings.TrimSpace(target)
	return strings.HasPrefix(target, GitHubPrefix) ||
		strings.HasPrefix(target, GistPrefix) ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "http://")
}

// Load returns the contents of target.
func (l *Loader) Load(ctx context.Context, target string) ([]byte, error) {
	target = strings.TrimSpace(target)

	if IsRemote(target) && !l.allowRemote {
		return nil, fmt.Errorf("%w: %s", ErrRemoteDisabled, target)
	}

	switch {
	case strings.HasPrefix(target, GitHubPrefix):
		u, err := l.githubURL(strings.TrimPrefix(target, GitHubPrefix))
		if err != nil {
			return nil, err
		}
		return l.loadRemote(ctx, u)
	case strings.HasPrefix(target, GistPrefix):
		u, err := l.gistURL(ctx, strings.TrimPrefix(target, GistPrefix))
		if err != nil {
			return nil, err
		}
		return l.loadRemote(ctx, u)
	case strings.HasPrefix(target, "https://"), strings.HasPrefix(target, "http://"):
		u, err := url.Parse(target)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("%w: %s", ErrURLFormat, target)
		}
		return l.loadRemote(ctx, u.String())
	case target == ClipboardTarget:
		return l.loadClipboard()
	default:
		return l.loadPath(target)
	}
}

func (l *Loader) githubURL(spec string) (string, error) {
	spec, branch, _ := strings.Cut(spec, "#")
	if branch == "" {
		branch = DefaultBranch
	}

	parts := strings.SplitN(spec, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", fmt.Errorf("%w: %s", ErrGitHubFormat, spec)
	}

	u, err := url.JoinPath(l.rawBase, parts[0], parts[1], branch, parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGitHubFormat, err)
	}
	return u, nil
}

func (l *Loader) loadPath(path string) ([]byte, error) {
	info, err := l.fs.Stat(path)
	if errors.Is(err, afero.ErrFileNotFound) || (err == nil && info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrPathIsNotFile, path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat snippet file: %w", err)
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snippet file: %w", err)
	}
	log.Debug().Msgf("loaded snippet from %s (%d bytes)", path, len(data))
	return data, nil
}

func (l *Loader) loadClipboard() ([]byte, error) {
	text, err := l.clipboard()
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrClipboardEmpty
	}
	log.Debug().Msgf("loaded snippet from clipboard (%d bytes)", len(text))
	return []byte(text), nil
}

func (l *Loader) loadRemote(ctx context.Context, u string) ([]byte, error) {
	data, err := l.client.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snippet: %w", err)
	}

	log.Warn().Msg("running snippets from the internet is not safe, be careful")
	_, err = fmt.Fprintf(l.out, "Snippet: %s\n\n%s\n\n", u, strings.TrimRight(string(data), "\n"))
	if err != nil {
		return nil, fmt.Errorf("failed to print snippet: %w", err)
	}

	if !l.confirm {
		return data, nil
	}

	phrase := l.phrase()
	answer, err := l.asker.Ask(fmt.Sprintf(
		"To run this snippet, type `%s`, or anything else to cancel", phrase,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if answer != phrase {
		return nil, ErrCancelledRun
	}

	return data, nil
}

func isNotFound(err error) bool {
	var se *httpclient.StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
