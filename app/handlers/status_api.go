// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-obvious/server"
	"github.com/go-obvious/server/api"
	"github.com/go-obvious/server/request"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/lumenmatch/conncheck/app/domain/diagnostic/runner"
	"github.com/lumenmatch/conncheck/app/domain/monitor"
	"github.com/lumenmatch/conncheck/app/domain/remediation"
	"github.com/lumenmatch/conncheck/app/types/status"
)

// StatusAPI exposes the diagnostic surface of the agent: the last completed
// health report, the periodic monitor state, on-demand runs, and the
// remediation action.
type StatusAPI struct {
	api.Service
	runner  *runner.Runner
	monitor *monitor.Monitor
	fixer   *remediation.Fixer
}

type statusResponse struct {
	Report        *status.HealthReport `json:"report"`
	Monitor       *status.MonitorState `json:"monitor,omitempty"`
	GeneratedAtMs int64                `json:"generated_at_ms"`
}

// NewStatusAPI mounts the diagnostic endpoints at base. The monitor may be
// nil when the periodic monitor is disabled.
func NewStatusAPI(base string, rnr *runner.Runner, mon *monitor.Monitor, fixer *remediation.Fixer) *StatusAPI {
	a := &StatusAPI{
		runner:  rnr,
		monitor: mon,
		fixer:   fixer,
		Service: api.Service{
			APIName: "status",
			Mounts:  map[string]*chi.Mux{},
		},
	}
	a.Service.Mounts[base] = a.Routes()
	return a
}

func (a *StatusAPI) Register(app server.Server) error {
	if err := a.Service.Register(app); err != nil {
		return err
	}
	return nil
}

func (a *StatusAPI) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", a.getStatus)
	r.Post("/run", a.runDiagnostics)
	r.Post("/fix", a.applyFix)

	return r
}

func (a *StatusAPI) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Report:        a.runner.LastReport(),
		GeneratedAtMs: time.Now().UnixMilli(),
	}
	if a.monitor != nil {
		state := a.monitor.State()
		resp.Monitor = &state
	}
	request.Reply(r, w, resp, http.StatusOK)
}

func (a *StatusAPI) runDiagnostics(w http.ResponseWriter, r *http.Request) {
	if _, err := a.runner.Run(r.Context()); err != nil {
		if errors.Is(err, runner.ErrRunInProgress) {
			request.Reply(r, w, err.Error(), http.StatusConflict)
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("diagnostic run failed")
		request.Reply(r, w, err.Error(), http.StatusInternalServerError)
		return
	}
	request.Reply(r, w, a.runner.LastReport(), http.StatusOK)
}

func (a *StatusAPI) applyFix(w http.ResponseWriter, r *http.Request) {
	if err := a.fixer.AttemptFix(r.Context()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("remediation failed")
		request.Reply(r, w, err.Error(), http.StatusBadGateway)
		return
	}
	request.Reply(r, w, map[string]string{"status": "ok"}, http.StatusOK)
}
