// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package middleware provides the standard middleware stack for the agent's
// HTTP surfaces: request logging and prometheus instrumentation.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

var (
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	metricsOnce         sync.Once
)

// getPrometheusMetrics returns initialized prometheus metrics, creating them only once
func getPrometheusMetrics() (*prometheus.HistogramVec, *prometheus.CounterVec) {
	metricsOnce.Do(func() {
		httpRequestDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "conncheck_http_request_duration_seconds",
				Help: "Duration of HTTP requests served by the agent in seconds.",
			},
			[]string{"code", "method"},
		)
		httpRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conncheck_http_requests_total",
				Help: "Count of all HTTP requests served by the agent, labeled by method and status code.",
			},
			[]string{"code", "method"},
		)
		// duplicate registration happens in tests that rebuild the server
		if err := prometheus.Register(httpRequestDuration); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
		if err := prometheus.Register(httpRequestsTotal); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	})
	return httpRequestDuration, httpRequestsTotal
}

// PromHTTPMiddleware instruments HTTP requests with Prometheus metrics.
func PromHTTPMiddleware(next http.Handler) http.Handler {
	duration, counter := getPrometheusMetrics()
	return promhttp.InstrumentHandlerDuration(
		duration,
		promhttp.InstrumentHandlerCounter(
			counter,
			next,
		),
	)
}

// LoggingMiddlewareWrapper logs every request through the context logger.
// Liveness and metrics scrapes are demoted to trace to keep the log readable.
func LoggingMiddlewareWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(startTime)
		statusCode := recorder.status
		route := r.URL.Path
		method := r.Method

		level := zerolog.DebugLevel
		if route == "/healthz" || route == "/metrics" {
			level = zerolog.TraceLevel
		}

		log.Ctx(r.Context()).WithLevel(level).
			Str("method", method).
			Str("route", route).
			Int("statusCode", statusCode).
			Str("status", http.StatusText(statusCode)).
			Dur("duration", duration).
			Str("client", r.RemoteAddr).
			Msg("HTTP request")
	})
}
