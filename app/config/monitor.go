// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/pkg/errors"
)

// Monitor configures the periodic connection monitor. It runs in serve mode
// unless explicitly disabled.
type Monitor struct {
	Disabled bool          `yaml:"disabled" default:"false" env:"MONITOR_DISABLED" env-description:"disable the periodic monitor in serve mode"`
	Interval time.Duration `yaml:"interval" default:"15s" env:"MONITOR_INTERVAL" env-description:"fixed interval between checks"`
	Check    string        `yaml:"check" default:"network" env:"MONITOR_CHECK" env-description:"which diagnostic check the monitor repeats"`
}

func (m *Monitor) Validate() error {
	if m.Interval <= 0 {
		m.Interval = DefaultMonitorInterval
	}
	if m.Check == "" {
		m.Check = DefaultMonitorCheck
	}
	for _, name := range AllDiagnostics {
		if m.Check == name {
			return nil
		}
	}
	return errors.Errorf("unknown monitor check %q", m.Check)
}
