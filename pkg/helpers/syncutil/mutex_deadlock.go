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

//go:build deadlock

// Package syncutil provides the mutexes used for state shared with the
// interrupt handler. Build with -tags=deadlock to swap in go-deadlock.
package syncutil

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	deadlock "github.com/sasha-s/go-deadlock"
)

const DeadlockEnabled = true

// DeadlockTimeout is how long a lock may be waited on before it is reported.
const DeadlockTimeout = 5 * time.Second

// logWriter forwards go-deadlock reports to whatever the global logger is at
// the time of the report.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	log.Error().Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}

func init() {
	deadlock.Opts.DeadlockTimeout = DeadlockTimeout
	deadlock.Opts.LogBuf = logWriter{}
}

type Mutex struct {
	deadlock.Mutex
}

type RWMutex struct {
	deadlock.RWMutex
}
