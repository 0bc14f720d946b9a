// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// Telemetry configures uploads of completed health reports to the ops
// endpoint. Uploads are skipped entirely when disabled.
type Telemetry struct {
	Host             string        `yaml:"host" env:"TELEMETRY_HOST" env-description:"ops endpoint receiving health reports"`
	APIKey           string        `yaml:"api_key" env:"TELEMETRY_API_KEY" env-description:"bearer token for the ops endpoint"`
	DisableTelemetry bool          `yaml:"disable_telemetry" default:"false" env:"DISABLE_TELEMETRY" env-description:"disable report uploads"`
	SendTimeout      time.Duration `yaml:"send_timeout" default:"15s" env:"TELEMETRY_SEND_TIMEOUT" env-description:"deadline for a report upload"`
	HTTPMaxRetries   int           `yaml:"http_max_retries" default:"3" env:"TELEMETRY_HTTP_MAX_RETRIES" env-description:"number of times the http client will retry on failures"`
	HTTPMaxWait      time.Duration `yaml:"http_max_wait" default:"10s" env:"TELEMETRY_HTTP_MAX_WAIT" env-description:"interval to wait between HTTP request retries"`
}

func (t *Telemetry) Validate() error {
	if t.DisableTelemetry {
		return nil
	}
	if t.Host == "" {
		// telemetry is best-effort; absence of a host simply disables it
		t.DisableTelemetry = true
		return nil
	}
	if _, err := url.Parse(t.Host); err != nil {
		return errors.Wrapf(err, "invalid telemetry host %q", t.Host)
	}
	if t.SendTimeout <= 0 {
		t.SendTimeout = DefaultTelemetrySendTimeout
	}
	if t.HTTPMaxRetries <= 0 {
		t.HTTPMaxRetries = DefaultTelemetryMaxRetries
	}
	if t.HTTPMaxWait <= 0 {
		t.HTTPMaxWait = DefaultTelemetryMaxWait
	}
	return nil
}
