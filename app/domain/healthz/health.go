// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package healthz exposes the agent's own liveness over HTTP. Components
// register named check functions; GET /healthz returns 200 when every check
// passes and 500 with the first failure otherwise.
//
// This reports on the agent process itself, not on the backend connection;
// backend health comes from the diagnostic runner.
package healthz

import (
	"net/http"
	"sort"
	"sync"
)

// HealthCheck validates one component. It must be fast, side-effect free,
// and return nil when healthy.
type HealthCheck func() error

// Registry holds named health checks and serves them over HTTP.
type Registry struct {
	mu     sync.Mutex
	checks map[string]HealthCheck
}

// NewRegistry returns an empty health check registry.
func NewRegistry() *Registry {
	return &Registry{checks: make(map[string]HealthCheck)}
}

// Register adds or replaces a named health check. Safe for concurrent use.
func (x *Registry) Register(name string, fn HealthCheck) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.checks[name] = fn
}

// EndpointHandler returns an HTTP handler that runs every registered check
// on each request, failing fast on the first error.
//
//   - 200 OK with body "ok" when all checks pass
//   - 500 Internal Server Error with "<name> failed: <error>" otherwise
func (x *Registry) EndpointHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		x.mu.Lock()
		names := make([]string, 0, len(x.checks))
		for name := range x.checks {
			names = append(names, name)
		}
		sort.Strings(names)
		checks := make([]HealthCheck, len(names))
		for i, name := range names {
			checks[i] = x.checks[name]
		}
		x.mu.Unlock()

		for i, check := range checks {
			if err := check(); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(names[i] + " failed: " + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
