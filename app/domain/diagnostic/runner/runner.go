// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package runner orchestrates a full diagnostic run: the configured checks
// execute sequentially in declared order, each result feeds the aggregate
// report, and a log line lands in the ring before and after every check.
package runner

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/catalog"
	"github.com/lumenmatch/conncheck/app/logging"
	"github.com/lumenmatch/conncheck/app/logging/diag"
	"github.com/lumenmatch/conncheck/app/types/status"
)

// ErrRunInProgress is returned when Run is invoked while a prior run has not
// completed. Runs are never queued or interleaved.
var ErrRunInProgress = errors.New("diagnostic run already in progress")

// Runner executes the configured diagnostic checks sequentially. Later checks
// (auth, realtime) are only meaningful once network reachability is known, and
// sequential execution keeps the ring log deterministically ordered.
type Runner struct {
	cfg     *config.Settings
	catalog *catalog.Catalog
	ring    *logging.Ring
	client  *http.Client
	logger  *logrus.Entry

	inFlight atomic.Bool

	mu   sync.Mutex
	last *status.HealthReport
}

// NewRunner builds a runner over the given catalog. The ring receives one
// line before and one line after every check; the http client is handed to
// checks that issue raw requests.
func NewRunner(cfg *config.Settings, cat *catalog.Catalog, ring *logging.Ring, client *http.Client) *Runner {
	if client == nil {
		client = http.DefaultClient
	}
	return &Runner{
		cfg:     cfg,
		catalog: cat,
		ring:    ring,
		client:  client,
		logger:  diag.NewLogger().WithField(diag.OpField, "runner"),
	}
}

// Run executes every configured check in order and returns the accessor over
// the completed report. A concurrent invocation fails with ErrRunInProgress.
// Individual check failures never abort the run; they only drive
// OverallHealthy to false.
func (e *Runner) Run(ctx context.Context) (status.Accessor, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer e.inFlight.Store(false)

	report := &status.HealthReport{StartedAt: time.Now().UTC()}
	accessor := status.NewAccessor(report)

	for _, name := range e.cfg.Diagnostics.Checks {
		provider, ok := e.catalog.Get(name)
		if !ok {
			return nil, errors.Errorf("no diagnostic check registered as %q", name)
		}

		e.ring.Append("running check " + name)
		e.logger.WithField("check", name).Debug("running check")

		if err := provider.Check(ctx, e.client, accessor); err != nil {
			// unrecoverable provider errors still count as a failed probe so
			// the report keeps one result per configured check
			accessor.AddResult(&status.ProbeResult{
				Kind:       status.ProbeKind(name),
				Outcome:    status.OutcomeFailure,
				Detail:     err.Error(),
				ObservedAt: time.Now().UTC(),
			})
			e.logger.WithField("check", name).WithError(err).Error("check could not execute")
		}

		result := lastResult(accessor)
		e.ring.Append(fmt.Sprintf("check %s: %s (%dms)", name, result.Outcome, result.ElapsedMillis))
		observeProbe(result)
	}

	accessor.WriteToReport(func(r *status.HealthReport) {
		healthy := true
		for i := range r.Results {
			healthy = healthy && r.Results[i].Passing()
		}
		r.OverallHealthy = healthy
		r.CompletedAt = time.Now().UTC()
	})

	e.mu.Lock()
	e.last = snapshot(accessor)
	e.mu.Unlock()

	return accessor, nil
}

// LastReport returns a copy of the most recently completed report, or nil
// when no run has finished yet.
func (e *Runner) LastReport() *status.HealthReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return nil
	}
	cp := *e.last
	cp.Results = append([]status.ProbeResult(nil), e.last.Results...)
	return &cp
}

// Ring exposes the log buffer for the log view handler.
func (e *Runner) Ring() *logging.Ring {
	return e.ring
}

func lastResult(accessor status.Accessor) status.ProbeResult {
	var out status.ProbeResult
	accessor.ReadFromReport(func(r *status.HealthReport) {
		if n := len(r.Results); n > 0 {
			out = r.Results[n-1]
		}
	})
	return out
}

func snapshot(accessor status.Accessor) *status.HealthReport {
	var cp status.HealthReport
	accessor.ReadFromReport(func(r *status.HealthReport) {
		cp = *r
		cp.Results = append([]status.ProbeResult(nil), r.Results...)
	})
	return &cp
}
