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

package config

import (
	"maps"
	"net/url"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// CredentialEntry holds authentication credentials for a URL.
type CredentialEntry struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	Bearer   string `toml:"bearer"`
}

// schemeAliases maps schemes that share credentials to one canonical form.
var schemeAliases = map[string]string{
	"ws":  "http",
	"wss": "https",
}

type authRootFormat map[string]CredentialEntry

type authCredsFormat struct {
	Creds map[string]CredentialEntry `toml:"creds"`
}

type authAuthCredsFormat struct {
	Auth authCredsFormat `toml:"auth"`
}

// isValidAuthKey filters out the table names of the wrapped formats, which
// the root format also picks up.
func isValidAuthKey(key string) bool {
	return key != "creds" && key != "auth"
}

// LoadAuthFromData parses auth.toml. All three layouts are accepted and may
// be mixed in one file:
//
//	["https://example.com"]
//	[creds."https://example.com"]
//	[auth.creds."https://example.com"]
func LoadAuthFromData(data []byte) map[string]CredentialEntry {
	result := make(map[string]CredentialEntry)

	var root authRootFormat
	if err := toml.Unmarshal(data, &root); err == nil {
		for k, v := range root {
			if isValidAuthKey(k) {
				result[k] = v
			}
		}
	}

	var creds authCredsFormat
	if err := toml.Unmarshal(data, &creds); err == nil {
		maps.Copy(result, creds.Creds)
	}

	var authCreds authAuthCredsFormat
	if err := toml.Unmarshal(data, &authCreds); err == nil {
		maps.Copy(result, authCreds.Auth.Creds)
	}

	return result
}

func normalizeScheme(scheme string) string {
	lower := strings.ToLower(scheme)
	if canonical, ok := schemeAliases[lower]; ok {
		return canonical
	}
	return lower
}

func isSchemelessKey(key string) bool {
	return !strings.Contains(key, "://")
}

// LookupAuth finds credentials for a URL. Matches are tried from most to
// least specific:
//  1. same scheme, host and path prefix
//  2. same canonical scheme, host and path prefix
//  3. a schemeless "host:port" entry
func LookupAuth(creds map[string]CredentialEntry, reqURL string) *CredentialEntry {
	if len(creds) == 0 {
		return nil
	}

	u, err := url.Parse(reqURL)
	if err != nil {
		log.Warn().Msgf("invalid auth request url: %s", reqURL)
		return nil
	}

	match := func(sameScheme func(defScheme string) bool) *CredentialEntry {
		for k, v := range creds {
			if isSchemelessKey(k) {
				continue
			}
			defURL, err := url.Parse(k)
			if err != nil {
				log.Error().Msgf("invalid auth config url: %s", k)
				continue
			}
			if sameScheme(defURL.Scheme) &&
				strings.EqualFold(defURL.Host, u.Host) &&
				strings.HasPrefix(u.Path, defURL.Path) {
				return &v
			}
		}
		return nil
	}

	if v := match(func(s string) bool { return strings.EqualFold(s, u.Scheme) }); v != nil {
		return v
	}

	canonical := normalizeScheme(u.Scheme)
	if v := match(func(s string) bool { return normalizeScheme(s) == canonical }); v != nil {
		return v
	}

	for k, v := range creds {
		if isSchemelessKey(k) && strings.EqualFold(k, u.Host) {
			return &v
		}
	}

	return nil
}
