// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/pkg/errors"
)

// Diagnostics bounds each probe and selects which checks a full run executes.
type Diagnostics struct {
	CheckTimeout    time.Duration `yaml:"check_timeout" default:"4s" env:"DIAGNOSTICS_CHECK_TIMEOUT" env-description:"per-probe timeout for network, datastore and auth checks"`
	RealtimeTimeout time.Duration `yaml:"realtime_timeout" default:"5s" env:"DIAGNOSTICS_REALTIME_TIMEOUT" env-description:"timeout for the realtime round trip"`
	Checks          []string      `yaml:"checks" env:"DIAGNOSTICS_CHECKS" env-description:"checks to run, in order; empty means all"`
}

func (d *Diagnostics) Validate() error {
	if d.CheckTimeout <= 0 {
		return errors.New("diagnostics check_timeout must be positive")
	}
	if d.RealtimeTimeout <= 0 {
		return errors.New("diagnostics realtime_timeout must be positive")
	}

	if len(d.Checks) == 0 {
		d.Checks = append([]string(nil), AllDiagnostics...)
		return nil
	}

	known := make(map[string]bool, len(AllDiagnostics))
	for _, name := range AllDiagnostics {
		known[name] = true
	}
	for _, name := range d.Checks {
		if !known[name] {
			return errors.Errorf("unknown diagnostic check %q", name)
		}
	}
	return nil
}
