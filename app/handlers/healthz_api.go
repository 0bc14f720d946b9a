// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-obvious/server"
	"github.com/go-obvious/server/api"

	"github.com/lumenmatch/conncheck/app/domain/healthz"
)

// HealthzAPI exposes the agent liveness registry over HTTP.
type HealthzAPI struct {
	api.Service
	registry *healthz.Registry
}

func NewHealthzAPI(base string, registry *healthz.Registry) *HealthzAPI {
	a := &HealthzAPI{
		registry: registry,
		Service: api.Service{
			APIName: "healthz",
			Mounts:  map[string]*chi.Mux{},
		},
	}
	a.Service.Mounts[base] = a.Routes()
	return a
}

func (a *HealthzAPI) Register(app server.Server) error {
	if err := a.Service.Register(app); err != nil {
		return err
	}
	return nil
}

func (a *HealthzAPI) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", a.registry.EndpointHandler())

	return r
}
