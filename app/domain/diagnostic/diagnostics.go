// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diagnostic defines the provider contract for connection health
// checks against the mobile app's backend dependencies.
//
// Each check lives in its own package and validates one dependency:
//
//   - network: plain reachability of the backend health endpoint
//   - datastore: a bounded read through the REST data API
//   - auth: validity of the current user session
//   - realtime_channel: a publish/receive round trip on the websocket broker
//
// Providers are constructed once with their configuration and collaborators,
// then invoked by the runner (or the periodic monitor) for every run.
//
// Provider implementation pattern:
//
//	Each diagnostic provider implements the Provider interface, performs its
//	bounded check, and records a status.ProbeResult on the accessor. A failing
//	dependency is a result, not an error: providers convert every recoverable
//	failure mode (transport error, rejected call, timeout, absent session)
//	into a recorded result and return nil, so a diagnostic run can never crash
//	the host that triggered it.
//
// Usage:
//
//	providers := []diagnostic.Provider{
//	    network.NewProvider(ctx, cfg),
//	    datastore.NewProvider(ctx, cfg, dataClient),
//	    auth.NewProvider(ctx, cfg, authClient),
//	    realtime.NewProvider(ctx, cfg, realtimeClient),
//	}
//
//	accessor := status.NewAccessor(&status.HealthReport{})
//	for _, provider := range providers {
//	    if err := provider.Check(ctx, httpClient, accessor); err != nil {
//	        log.Printf("diagnostic check failed: %v", err)
//	    }
//	}
package diagnostic

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/lumenmatch/conncheck/app/types/status"
)

// Provider is implemented by every diagnostic check.
//
// Check performs one bounded health check and records the outcome on the
// accessor. Implementations must:
//   - honor context cancellation and apply their own timeout bound
//   - record exactly one ProbeResult per invocation
//   - return nil for every recoverable condition; an error return is
//     reserved for unrecoverable misconfiguration that prevents the check
//     from executing at all
type Provider interface {
	Check(_ context.Context, _ *http.Client, _ status.Accessor) error
}

// Observe builds a settled ProbeResult for kind, measuring elapsed wall time
// from start. When the outcome is a timeout the elapsed time naturally lands
// at the configured bound because the probe waited it out.
func Observe(kind status.ProbeKind, outcome status.ProbeOutcome, detail string, start time.Time) *status.ProbeResult {
	return &status.ProbeResult{
		Kind:          kind,
		Outcome:       outcome,
		Detail:        detail,
		ElapsedMillis: time.Since(start).Milliseconds(),
		ObservedAt:    time.Now().UTC(),
	}
}

// IsTimeout reports whether err represents an exceeded deadline rather than
// an outright failure.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
