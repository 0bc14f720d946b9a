// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenmatch/conncheck/app/config"
)

func TestUnit_Config_LoadAndValidate(t *testing.T) {
	cfg, err := config.NewSettings(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 25, cfg.Logging.RingCapacity)
	assert.Equal(t, "https://acme.lumenmatch.dev", cfg.Backend.Host)
	assert.Equal(t, 2*time.Second, cfg.Diagnostics.CheckTimeout)
	assert.Equal(t, 3*time.Second, cfg.Diagnostics.RealtimeTimeout)
	assert.Equal(t, 15*time.Second, cfg.Monitor.Interval)

	// all checks enabled by default, in declared order
	assert.Equal(t, config.AllDiagnostics, cfg.Diagnostics.Checks)

	// realtime URL derived from the host
	assert.Equal(t, "wss://acme.lumenmatch.dev/realtime/v1", cfg.Backend.RealtimeURL)
	assert.Equal(t, "https://acme.lumenmatch.dev/health", cfg.Backend.HealthURL())

	// defaults applied for values the file leaves out
	assert.False(t, cfg.Monitor.Disabled)
	assert.Equal(t, config.DefaultTelemetrySendTimeout, cfg.Telemetry.SendTimeout)
	assert.Equal(t, config.DefaultTelemetryMaxRetries, cfg.Telemetry.HTTPMaxRetries)
	assert.Equal(t, uint(9091), cfg.Server.Port)
}

func TestUnit_Config_NilFiles(t *testing.T) {
	_, err := config.NewSettings(nil...)
	assert.Error(t, err)
}

func TestUnit_Config_MissingFile(t *testing.T) {
	_, err := config.NewSettings("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestUnit_Config_ValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Settings)
	}{
		{
			name:   "NoBackendHost",
			mutate: func(s *config.Settings) { s.Backend.Host = "" },
		},
		{
			name:   "RelativeBackendHost",
			mutate: func(s *config.Settings) { s.Backend.Host = "acme.lumenmatch.dev" },
		},
		{
			name:   "NoAPIKey",
			mutate: func(s *config.Settings) { s.Backend.APIKey = "" },
		},
		{
			name:   "UnknownCheck",
			mutate: func(s *config.Settings) { s.Diagnostics.Checks = []string{"bogus"} },
		},
		{
			name:   "UnknownMonitorCheck",
			mutate: func(s *config.Settings) { s.Monitor.Check = "bogus" },
		},
		{
			name:   "BadLogLevel",
			mutate: func(s *config.Settings) { s.Logging.Level = "verbose" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewSettings(filepath.Join("testdata", "config.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestUnit_Config_ToYAML(t *testing.T) {
	cfg, err := config.NewSettings(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	raw, err := cfg.ToBytes()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "acme.lumenmatch.dev")
}
