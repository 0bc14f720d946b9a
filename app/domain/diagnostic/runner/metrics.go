// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lumenmatch/conncheck/app/types/status"
)

var (
	probeTotal    *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	metricsOnce   sync.Once
)

// getProbeMetrics returns initialized prometheus metrics, creating them only once
func getProbeMetrics() (*prometheus.CounterVec, *prometheus.HistogramVec) {
	metricsOnce.Do(func() {
		probeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conncheck_probe_total",
				Help: "Count of diagnostic probes executed, labeled by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		)
		probeDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "conncheck_probe_duration_seconds",
				Help: "Duration of diagnostic probes in seconds.",
			},
			[]string{"kind"},
		)
		// Register metrics with error handling to avoid panics on duplicate registration
		if err := prometheus.Register(probeTotal); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
		if err := prometheus.Register(probeDuration); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	})
	return probeTotal, probeDuration
}

func observeProbe(result status.ProbeResult) {
	total, duration := getProbeMetrics()
	total.WithLabelValues(string(result.Kind), string(result.Outcome)).Inc()
	duration.WithLabelValues(string(result.Kind)).
		Observe(time.Duration(result.ElapsedMillis * int64(time.Millisecond)).Seconds())
}
