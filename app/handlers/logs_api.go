// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-obvious/server"
	"github.com/go-obvious/server/api"
	"github.com/go-obvious/server/request"

	"github.com/lumenmatch/conncheck/app/logging"
)

// LogsAPI serves the in-memory diagnostic log buffer, oldest entry first.
type LogsAPI struct {
	api.Service
	ring *logging.Ring
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

type logsResponse struct {
	Entries  []logEntry `json:"entries"`
	Capacity int        `json:"capacity"`
}

// NewLogsAPI mounts the log view at base.
func NewLogsAPI(base string, ring *logging.Ring) *LogsAPI {
	a := &LogsAPI{
		ring: ring,
		Service: api.Service{
			APIName: "logs",
			Mounts:  map[string]*chi.Mux{},
		},
	}
	a.Service.Mounts[base] = a.Routes()
	return a
}

func (a *LogsAPI) Register(app server.Server) error {
	if err := a.Service.Register(app); err != nil {
		return err
	}
	return nil
}

func (a *LogsAPI) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", a.getLogs)

	return r
}

// getLogs returns the buffered entries. An optional since query parameter
// (epoch milliseconds) drops entries recorded at or before that instant.
func (a *LogsAPI) getLogs(w http.ResponseWriter, r *http.Request) {
	entries := a.ring.Entries()

	if raw := r.URL.Query().Get("since"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			request.Reply(r, w, "since must be epoch milliseconds", http.StatusBadRequest)
			return
		}
		cutoff := time.UnixMilli(ms)
		kept := entries[:0]
		for _, e := range entries {
			if e.Timestamp.After(cutoff) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	resp := logsResponse{
		Entries:  make([]logEntry, 0, len(entries)),
		Capacity: a.ring.Capacity(),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, logEntry{
			Timestamp: e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Message:   e.Message,
		})
	}
	request.Reply(r, w, resp, http.StatusOK)
}
