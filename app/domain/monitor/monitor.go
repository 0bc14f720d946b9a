// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package monitor wraps one diagnostic check in a fixed-interval repeating
// schedule with an explicit start/stop lifecycle. A stopped monitor never
// mutates its state again, even when a previously scheduled check resolves
// late.
package monitor

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic"
	"github.com/lumenmatch/conncheck/app/logging/diag"
	"github.com/lumenmatch/conncheck/app/types"
	"github.com/lumenmatch/conncheck/app/types/status"
)

var _ types.Runnable = (*Monitor)(nil)

// Monitor re-runs a single diagnostic check on a fixed interval. The state
// machine is Testing while a check is in flight, then Connected on success or
// Disconnected on failure/timeout, re-entering Testing on the next tick.
type Monitor struct {
	cfg      config.Monitor
	provider diagnostic.Provider
	client   *http.Client
	logger   *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    status.MonitorState
	stopped  bool
	inFlight bool
	started  bool

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// New configures a monitor around one provider. The interval comes from the
// monitor settings; the http client is forwarded to the check.
func New(settings *config.Settings, provider diagnostic.Provider, client *http.Client) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		cfg:      settings.Monitor,
		provider: provider,
		client:   client,
		logger:   diag.NewLogger().WithField(diag.OpField, "monitor"),
		ctx:      ctx,
		cancel:   cancel,
		state: status.MonitorState{
			Status:     status.MonitorTesting,
			IntervalMs: settings.Monitor.Interval.Milliseconds(),
		},
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start launches the schedule: one immediate check, then one per interval.
// Calling Start more than once is a no-op.
func (m *Monitor) Start() {
	m.startOnce.Do(func() {
		m.mu.Lock()
		m.started = true
		m.mu.Unlock()
		go m.run()
	})
}

// Stop cancels the schedule. Idempotent, safe to call concurrently with an
// in-flight check; any late resolution is discarded without mutating state.
func (m *Monitor) Stop() {
	m.mu.Lock()
	m.stopped = true
	started := m.started
	m.mu.Unlock()

	m.cancel()
	m.stopOnce.Do(func() { close(m.stopCh) })
	if started {
		<-m.doneCh
	}
}

// State returns a snapshot of the monitor's current state.
func (m *Monitor) State() status.MonitorState {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.state
	if m.state.LastResult != nil {
		cp := *m.state.LastResult
		out.LastResult = &cp
	}
	return out
}

// Run implements types.Runnable.
func (m *Monitor) Run() error {
	m.Start()
	return nil
}

// IsRunning implements types.Runnable.
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started && !m.stopped
}

// Shutdown implements types.Runnable.
func (m *Monitor) Shutdown() error {
	m.Stop()
	return nil
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	m.tick()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.tick()
		case <-m.stopCh:
			return
		}
	}
}

// tick launches one check unless the monitor is stopped or the previous
// check has not resolved yet; an overlapping tick is skipped, never stacked.
func (m *Monitor) tick() {
	m.mu.Lock()
	if m.stopped || m.inFlight {
		m.mu.Unlock()
		return
	}
	m.inFlight = true
	m.state.Status = status.MonitorTesting
	m.mu.Unlock()

	go func() {
		result := m.execute()

		m.mu.Lock()
		defer m.mu.Unlock()
		m.inFlight = false
		if m.stopped {
			// late resolution after Stop; drop it
			return
		}

		if result != nil && result.Passing() {
			m.state.Status = status.MonitorConnected
		} else {
			m.state.Status = status.MonitorDisconnected
		}
		m.state.LastResult = result
		m.state.LastChecked = time.Now().UTC()
	}()
}

// execute runs the provider once and extracts its recorded result.
func (m *Monitor) execute() *status.ProbeResult {
	accessor := status.NewAccessor(&status.HealthReport{})
	if err := m.provider.Check(m.ctx, m.client, accessor); err != nil {
		m.logger.WithError(err).Error("monitored check could not execute")
		return nil
	}

	var result *status.ProbeResult
	accessor.ReadFromReport(func(r *status.HealthReport) {
		if n := len(r.Results); n > 0 {
			cp := r.Results[n-1]
			result = &cp
		}
	})
	return result
}
