// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package catalog registers the available diagnostic checks under their
// configured names, in declared execution order.
package catalog

import (
	"context"
	"net/http"

	"github.com/lumenmatch/conncheck/app/backend"
	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/auth"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/datastore"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/network"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/realtime"
)

// Dependencies holds the backend collaborators the checks probe through.
type Dependencies struct {
	Data     backend.DataClient
	Auth     backend.AuthClient
	Realtime backend.RealtimeClient
}

// Catalog maps check names to constructed providers.
type Catalog struct {
	order     []string
	providers map[string]diagnostic.Provider
}

// NewCatalog builds the registry of all known checks.
func NewCatalog(ctx context.Context, cfg *config.Settings, deps Dependencies) *Catalog {
	return &Catalog{
		order: config.AllDiagnostics,
		providers: map[string]diagnostic.Provider{
			config.DiagnosticNetwork:         network.NewProvider(ctx, cfg),
			config.DiagnosticDataStore:       datastore.NewProvider(ctx, cfg, deps.Data),
			config.DiagnosticAuth:            auth.NewProvider(ctx, cfg, deps.Auth),
			config.DiagnosticRealtimeChannel: realtime.NewProvider(ctx, cfg, deps.Realtime),
		},
	}
}

// NewDefaultCatalog wires the registry with real backend clients built from
// the settings. The http client is shared by the REST and auth clients.
func NewDefaultCatalog(ctx context.Context, cfg *config.Settings, client *http.Client) *Catalog {
	return NewCatalog(ctx, cfg, Dependencies{
		Data:     backend.NewRestClient(&cfg.Backend, client),
		Auth:     backend.NewGotrueClient(&cfg.Backend, client),
		Realtime: backend.NewWebsocketClient(&cfg.Backend),
	})
}

// Get returns the provider registered under name.
func (c *Catalog) Get(name string) (diagnostic.Provider, bool) {
	p, ok := c.providers[name]
	return p, ok
}

// List returns the known check names in execution order.
func (c *Catalog) List() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
