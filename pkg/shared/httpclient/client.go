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

package httpclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ZaparooProject/zaparoo-paste/pkg/config"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeoutSeconds is the default timeout for HTTP requests
	DefaultTimeoutSeconds = 30
	// MaxBodySize caps how much of a response body is read.
	MaxBodySize = 4 << 20
)

var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// AuthTransport adds credentials from auth.toml and the user agent to every
// request.
type AuthTransport struct {
	Base      http.RoundTripper
	Creds     map[string]config.CredentialEntry
	UserAgent string
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	req = req.Clone(req.Context())
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	creds := config.LookupAuth(t.Creds, req.URL.String())
	if creds != nil {
		if creds.Bearer != "" {
			req.Header.Set("Authorization", "Bearer "+creds.Bearer)
		} else if creds.Username != "" {
			auth := base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.Password))
			req.Header.Set("Authorization", "Basic "+auth)
		}
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform HTTP round trip: %w", err)
	}
	return resp, nil
}

// DefaultTransport provides a configured transport with connection pooling and reasonable timeouts
var DefaultTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ResponseHeaderTimeout: 30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	MaxIdleConns:          10,
	IdleConnTimeout:       90 * time.Second,
}

// Client provides an HTTP client with authentication and sensible defaults
type Client struct {
	*http.Client
}

// NewClient creates a client that sends creds and userAgent with every
// request.
func NewClient(timeout time.Duration, creds map[string]config.CredentialEntry, userAgent string) *Client {
	return &Client{
		Client: &http.Client{
			Transport: &AuthTransport{
				Base:      DefaultTransport,
				Creds:     creds,
				UserAgent: userAgent,
			},
			Timeout: timeout,
		},
	}
}

// NewClientFromConfig creates a client using the remote timeout and
// credentials of cfg.
func NewClientFromConfig(cfg *config.Instance) *Client {
	timeout := cfg.RemoteTimeout()
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds * time.Second
	}
	return NewClient(timeout, cfg.Auth(), config.UserAgent())
}

// Get performs a GET request and returns the response
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing GET request: %w", err)
	}

	return resp, nil
}

// Fetch GETs url and returns the whole body. Non 2xx responses return a
// *StatusError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, MaxBodySize, url)
	}

	return body, nil
}
