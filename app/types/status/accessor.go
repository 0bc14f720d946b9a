// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package status

import "sync"

// Accessor provides synchronized access to a HealthReport while diagnostic
// checks populate it. Checks record results with AddResult; callers inspect
// the report through ReadFromReport without holding their own locks.
type Accessor interface {
	// AddResult appends a probe result to the report in execution order.
	AddResult(result *ProbeResult)
	// ReadFromReport invokes fn with the report held under the lock.
	// The report must not be retained or mutated by fn.
	ReadFromReport(fn func(*HealthReport))
	// WriteToReport invokes fn with the report held under the lock for mutation.
	WriteToReport(fn func(*HealthReport))
}

type accessor struct {
	mu     sync.Mutex
	report *HealthReport
}

// NewAccessor wraps the given report for concurrent use.
func NewAccessor(report *HealthReport) Accessor {
	return &accessor{report: report}
}

func (a *accessor) AddResult(result *ProbeResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report.Results = append(a.report.Results, *result)
}

func (a *accessor) ReadFromReport(fn func(*HealthReport)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.report)
}

func (a *accessor) WriteToReport(fn func(*HealthReport)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.report)
}
