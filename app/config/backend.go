// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Backend describes the backend-as-a-service endpoints the diagnostics probe.
type Backend struct {
	Host        string `yaml:"host" env:"BACKEND_HOST" env-description:"base URL of the backend, e.g. https://acme.backend.example"`
	APIKey      string `yaml:"api_key" env:"BACKEND_API_KEY" env-description:"anon/service API key sent with every request"`
	HealthPath  string `yaml:"health_path" default:"/health" env:"BACKEND_HEALTH_PATH" env-description:"path probed for plain reachability"`
	HealthTable string `yaml:"health_table" default:"profiles" env:"BACKEND_HEALTH_TABLE" env-description:"table used for the bounded datastore read"`
	RealtimeURL string `yaml:"realtime_url" env:"BACKEND_REALTIME_URL" env-description:"websocket URL of the realtime broker; derived from host when empty"`

	// Optional user session material for the auth probe and remediation.
	// Without an access token the auth probe reports "no active session".
	AccessToken  string `yaml:"access_token" env:"BACKEND_ACCESS_TOKEN" env-description:"current session access token"`
	RefreshToken string `yaml:"refresh_token" env:"BACKEND_REFRESH_TOKEN" env-description:"refresh token used by the fix action"`
}

func (b *Backend) Validate() error {
	b.Host = strings.TrimSpace(b.Host)
	b.APIKey = strings.TrimSpace(b.APIKey)

	if b.Host == "" {
		return errors.New("backend host is required")
	}
	u, err := url.Parse(b.Host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("backend host %q is not an absolute URL", b.Host)
	}
	if b.APIKey == "" {
		return errors.New("backend api_key is required")
	}

	if b.HealthPath == "" {
		b.HealthPath = DefaultHealthPath
	}
	if b.HealthTable == "" {
		b.HealthTable = DefaultHealthTable
	}

	if b.RealtimeURL == "" {
		ws := *u
		switch u.Scheme {
		case "https":
			ws.Scheme = "wss"
		default:
			ws.Scheme = "ws"
		}
		ws.Path = "/realtime/v1"
		b.RealtimeURL = ws.String()
	}

	return nil
}

// HealthURL returns the absolute URL of the reachability endpoint.
func (b *Backend) HealthURL() string {
	return strings.TrimRight(b.Host, "/") + "/" + strings.TrimLeft(b.HealthPath, "/")
}
