// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package status defines the result types produced by connection health
// diagnostics: individual probe results, the aggregate health report for a
// diagnostic run, and the state published by the periodic monitor. An
// Accessor guards concurrent access to a report while checks populate it.
package status

import "time"

// ProbeKind identifies which backend dependency a probe exercised.
type ProbeKind string

const (
	ProbeNetwork         ProbeKind = "network"
	ProbeDataStore       ProbeKind = "datastore"
	ProbeAuth            ProbeKind = "auth"
	ProbeRealtimeChannel ProbeKind = "realtime_channel"
)

// ProbeOutcome classifies how a single probe settled.
type ProbeOutcome string

const (
	OutcomeSuccess ProbeOutcome = "success"
	OutcomeFailure ProbeOutcome = "failure"
	OutcomeTimeout ProbeOutcome = "timeout"
)

// ProbeResult is the settled result of one health check against one backend
// dependency. When Outcome is OutcomeTimeout, ElapsedMillis is approximately
// the configured timeout bound for the probe.
type ProbeResult struct {
	Kind          ProbeKind    `json:"kind"`
	Outcome       ProbeOutcome `json:"outcome"`
	Detail        string       `json:"detail,omitempty"`
	ElapsedMillis int64        `json:"elapsed_ms"`
	ObservedAt    time.Time    `json:"observed_at"`
}

// Passing reports whether the probe settled successfully.
func (r *ProbeResult) Passing() bool {
	return r.Outcome == OutcomeSuccess
}

// HealthReport aggregates the results of one diagnostic run. Results are
// recorded in execution order. A report is created fresh for every run and is
// never mutated once CompletedAt is set, nor merged across runs.
type HealthReport struct {
	Results        []ProbeResult `json:"results"`
	OverallHealthy bool          `json:"overall_healthy"`
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    time.Time     `json:"completed_at"`
}

// MonitorStatus is the connection state published by the periodic monitor.
// Testing is only observable while a probe is in flight.
type MonitorStatus string

const (
	MonitorTesting      MonitorStatus = "testing"
	MonitorConnected    MonitorStatus = "connected"
	MonitorDisconnected MonitorStatus = "disconnected"
)

// MonitorState is a read-only snapshot of the periodic monitor.
type MonitorState struct {
	Status      MonitorStatus `json:"status"`
	LastResult  *ProbeResult  `json:"last_result,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	IntervalMs  int64         `json:"interval_ms"`
}
