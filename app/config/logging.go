// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/pkg/errors"
)

// Logging controls log output and the size of the in-memory log ring.
type Logging struct {
	Level        string `yaml:"level" default:"info" env:"LOG_LEVEL" env-description:"logging level such as debug, info, error"`
	RingCapacity int    `yaml:"ring_capacity" default:"50" env:"LOG_RING_CAPACITY" env-description:"entries kept by the in-memory log ring"`
}

var validLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}

func (l *Logging) Validate() error {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = "info"
	}
	for _, lvl := range validLevels {
		if l.Level == lvl {
			if l.RingCapacity < 0 {
				return errors.New("logging ring_capacity cannot be negative")
			}
			return nil
		}
	}
	return errors.Errorf("unknown log level %q", l.Level)
}
