// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config contains configuration settings for the conncheck agent.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Diagnostic check names, shared between the catalog, the CLI, and the
// individual check packages.
const (
	DiagnosticNetwork         = "network"
	DiagnosticDataStore       = "datastore"
	DiagnosticAuth            = "auth"
	DiagnosticRealtimeChannel = "realtime_channel"
)

// CLI flag names shared by the commands that load settings.
const (
	FlagConfigFile   = "config"
	FlagDescConfFile = "configuration file(s)"
)

// Defaults applied during validation. The struct tags carry the same values
// for documentation; cleanenv itself only fills env-default tags, so anything
// the agent relies on is set here.
const (
	DefaultHealthPath  = "/health"
	DefaultHealthTable = "profiles"

	DefaultMonitorInterval = 15 * time.Second
	DefaultMonitorCheck    = DiagnosticNetwork

	DefaultTelemetrySendTimeout = 15 * time.Second
	DefaultTelemetryMaxRetries  = 3
	DefaultTelemetryMaxWait     = 10 * time.Second

	DefaultServerMode = "http"
	DefaultServerPort = uint(8080)
)

// AllDiagnostics lists every known check in its execution order.
var AllDiagnostics = []string{
	DiagnosticNetwork,
	DiagnosticDataStore,
	DiagnosticAuth,
	DiagnosticRealtimeChannel,
}

var _ Serializable = (*Settings)(nil)

type Settings struct {
	Logging     Logging     `yaml:"logging"`
	Backend     Backend     `yaml:"backend"`
	Diagnostics Diagnostics `yaml:"diagnostics"`
	Monitor     Monitor     `yaml:"monitor"`
	Server      Server      `yaml:"server"`
	Telemetry   Telemetry   `yaml:"telemetry"`
}

func NewSettings(configFiles ...string) (*Settings, error) {
	var cfg Settings

	// do not allow empty arrays
	if configFiles == nil {
		return nil, errors.New("the config files slice cannot be nil")
	}

	for _, cfgFile := range configFiles {
		if cfgFile == "" {
			continue
		}

		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("no config file %s: %w", cfgFile, err)
		}

		err := cleanenv.ReadConfig(cfgFile, &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to read config from %s: %w", cfgFile, err)
		}
	}
	return &cfg, nil
}

func (s *Settings) Validate() error {
	if err := s.Logging.Validate(); err != nil {
		return err
	}

	if err := s.Backend.Validate(); err != nil {
		return err
	}

	if err := s.Diagnostics.Validate(); err != nil {
		return err
	}

	if err := s.Monitor.Validate(); err != nil {
		return err
	}

	if err := s.Server.Validate(); err != nil {
		return err
	}

	if err := s.Telemetry.Validate(); err != nil {
		return err
	}

	return nil
}

func (s *Settings) ToYAML() ([]byte, error) {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode into yaml: %w", err)
	}
	return raw, nil
}

// ToBytes returns a serialized representation of the data in the class
func (s *Settings) ToBytes() ([]byte, error) {
	return s.ToYAML()
}
