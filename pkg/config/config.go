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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/linuxinput/keyboardmap"
	"github.com/ZaparooProject/zaparoo-paste/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "ZAPAROO_PASTE_CFG"
)

var ErrSchemaMismatch = errors.New("schema version mismatch")

type Values struct {
	Playback     Playback `toml:"playback"`
	Remote       Remote   `toml:"remote"`
	ConfigSchema int      `toml:"config_schema"`
	DebugLogging bool     `toml:"debug_logging"`
}

type Playback struct {
	CommitKey   string `toml:"commit_key" validate:"required,key"`
	FocusCombo  string `toml:"focus_combo" validate:"omitempty,combo"`
	LineDelayMs int    `toml:"line_delay_ms" validate:"gte=0,lte=60000"`
	CharDelayMs int    `toml:"char_delay_ms" validate:"gte=0,lte=10000"`
	KeyDelayMs  int    `toml:"key_delay_ms" validate:"gte=0,lte=10000"`
	FocusCycle  bool   `toml:"focus_cycle"`
}

type Remote struct {
	TimeoutSeconds      int  `toml:"timeout_seconds" validate:"gt=0,lte=600"`
	Allow               bool `toml:"allow"`
	RequireConfirmation bool `toml:"require_confirmation"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Playback: Playback{
		CommitKey:   "enter",
		FocusCombo:  "alt+tab",
		LineDelayMs: 100,
		CharDelayMs: 10,
		FocusCycle:  true,
	},
	Remote: Remote{
		Allow:               true,
		RequireConfirmation: true,
		TimeoutSeconds:      30,
	},
}

type Instance struct {
	fs       afero.Fs
	auth     map[string]CredentialEntry
	cfgPath  string
	authPath string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the config file from configDir, or from the path in
// ZAPAROO_PASTE_CFG if set. A missing file is created from defaults.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		authPath: filepath.Join(filepath.Dir(cfgPath), AuthFile),
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		log.Info().Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// fields missing from the file keep their defaults
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return ErrSchemaMismatch
	}

	if err := Validate(&newVals); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.cfgPath, err)
	}

	c.vals = newVals

	exists, err := afero.Exists(c.fs, c.authPath)
	if err != nil {
		return fmt.Errorf("failed to stat auth file: %w", err)
	}
	if exists {
		log.Info().Msg("loading auth file")
		authData, err := afero.ReadFile(c.fs, c.authPath)
		if err != nil {
			return fmt.Errorf("failed to read auth file: %w", err)
		}
		c.auth = LoadAuthFromData(authData)
		log.Info().Msgf("loaded %d auth entries", len(c.auth))
	}

	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func (c *Instance) LineDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Playback.LineDelayMs) * time.Millisecond
}

func (c *Instance) CharDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Playback.CharDelayMs) * time.Millisecond
}

func (c *Instance) KeyDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Playback.KeyDelayMs) * time.Millisecond
}

// CommitKey returns the key clicked after each line.
func (c *Instance) CommitKey() keyboardmap.Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	k, ok := keyboardmap.Lookup(c.vals.Playback.CommitKey)
	if !ok {
		return keyboardmap.MustLookup("enter")
	}
	return k
}

func (c *Instance) FocusCombo() []keyboardmap.Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Playback.FocusCombo == "" {
		return nil
	}
	keys, err := keyboardmap.ParseCombo(c.vals.Playback.FocusCombo)
	if err != nil {
		log.Warn().Err(err).Msg("invalid focus combo")
		return nil
	}
	return keys
}

func (c *Instance) FocusCycle() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Playback.FocusCycle
}

func (c *Instance) SetFocusCycle(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Playback.FocusCycle = enabled
}

func (c *Instance) RemoteAllowed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Remote.Allow
}

func (c *Instance) RemoteRequireConfirmation() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Remote.RequireConfirmation
}

func (c *Instance) RemoteTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Remote.TimeoutSeconds) * time.Second
}

// Auth returns the credentials loaded from auth.toml.
func (c *Instance) Auth() map[string]CredentialEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}
