// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package realtime contains code for checking the realtime broker with a
// self-addressed publish/receive round trip on a transient channel.
package realtime

import (
	"context"
	"fmt"
	net "net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lumenmatch/conncheck/app/backend"
	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic"
	"github.com/lumenmatch/conncheck/app/logging/diag"
	"github.com/lumenmatch/conncheck/app/types/status"
)

const DiagnosticRealtimeRoundTrip = config.DiagnosticRealtimeChannel

const tokenKey = "token"

type checker struct {
	cfg    *config.Settings
	rt     backend.RealtimeClient
	logger *logrus.Entry
}

func NewProvider(ctx context.Context, cfg *config.Settings, rt backend.RealtimeClient) diagnostic.Provider {
	return &checker{
		cfg: cfg,
		rt:  rt,
		logger: diag.NewLogger().
			WithContext(ctx).WithField(diag.OpField, "realtime"),
	}
}

func (c *checker) Check(ctx context.Context, _ *net.Client, accessor status.Accessor) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Diagnostics.RealtimeTimeout)
	defer cancel()

	start := time.Now()
	result := c.roundTrip(ctx, start)

	if !result.Passing() {
		c.logger.WithField("detail", result.Detail).Warn("realtime probe failed")
	}
	accessor.AddResult(result)
	return nil
}

// roundTrip joins a transient topic, publishes a correlation token addressed
// to itself, and waits for the broker to echo that exact token back. The
// channel is released on every exit path; Close is idempotent so the deferred
// teardown can never double-close.
func (c *checker) roundTrip(ctx context.Context, start time.Time) *status.ProbeResult {
	topic := "diagnostic:" + uuid.NewString()

	ch, err := c.rt.Join(ctx, topic)
	if err != nil {
		if diagnostic.IsTimeout(err) {
			return diagnostic.Observe(status.ProbeRealtimeChannel, status.OutcomeTimeout,
				diagnostic.ErrRealtimeTimeout.Error(), start)
		}
		return diagnostic.Observe(status.ProbeRealtimeChannel, status.OutcomeFailure,
			fmt.Sprintf("%s: %s", diagnostic.ErrRealtimeChannel, err), start)
	}
	defer ch.Close()

	token := uuid.NewString()
	if err := ch.Publish(ctx, backend.EventBroadcast, map[string]any{tokenKey: token}); err != nil {
		return diagnostic.Observe(status.ProbeRealtimeChannel, status.OutcomeFailure,
			fmt.Sprintf("%s: %s", diagnostic.ErrRealtimeChannel, err), start)
	}

	for {
		select {
		case msg, ok := <-ch.Messages():
			if !ok {
				return diagnostic.Observe(status.ProbeRealtimeChannel, status.OutcomeFailure,
					fmt.Sprintf("%s: channel closed", diagnostic.ErrRealtimeChannel), start)
			}
			// only our exact token settles the probe; anything else on the
			// transient topic is ignored
			if got, _ := msg.Payload[tokenKey].(string); got == token {
				return diagnostic.Observe(status.ProbeRealtimeChannel, status.OutcomeSuccess,
					"round trip complete", start)
			}
		case <-ctx.Done():
			return diagnostic.Observe(status.ProbeRealtimeChannel, status.OutcomeTimeout,
				diagnostic.ErrRealtimeTimeout.Error(), start)
		}
	}
}
