// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package network contains code for checking plain reachability of the
// backend health endpoint.
package network

import (
	"context"
	"fmt"
	"io"
	net "net/http"
	"time"

	ping "github.com/prometheus-community/pro-bing"
	"github.com/sirupsen/logrus"

	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic"
	"github.com/lumenmatch/conncheck/app/logging/diag"
	"github.com/lumenmatch/conncheck/app/types/status"
	"github.com/lumenmatch/conncheck/app/utils/netutil"
)

const DiagnosticNetworkReachability = config.DiagnosticNetwork

type checker struct {
	cfg    *config.Settings
	logger *logrus.Entry
}

func NewProvider(ctx context.Context, cfg *config.Settings) diagnostic.Provider {
	return &checker{
		cfg: cfg,
		logger: diag.NewLogger().
			WithContext(ctx).WithField(diag.OpField, "network"),
	}
}

func (c *checker) Check(ctx context.Context, client *net.Client, accessor status.Accessor) error {
	if client == nil {
		client = net.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Diagnostics.CheckTimeout)
	defer cancel()

	start := time.Now()
	result := c.probe(ctx, client, start)

	if !result.Passing() {
		c.logger.WithField("detail", result.Detail).Warn("network probe failed")
	}
	accessor.AddResult(result)
	return nil
}

func (c *checker) probe(ctx context.Context, client *net.Client, start time.Time) *status.ProbeResult {
	req, err := net.NewRequestWithContext(ctx, net.MethodHead, c.cfg.Backend.HealthURL(), nil)
	if err != nil {
		return diagnostic.Observe(status.ProbeNetwork, status.OutcomeFailure, err.Error(), start)
	}

	resp, err := client.Do(req)
	if err != nil {
		if diagnostic.IsTimeout(err) {
			return diagnostic.Observe(status.ProbeNetwork, status.OutcomeTimeout,
				diagnostic.ErrNetworkUnreachable.Error(), start)
		}
		return diagnostic.Observe(status.ProbeNetwork, status.OutcomeFailure,
			fmt.Sprintf("%s: %s (host %s)", diagnostic.ErrNetworkUnreachable, err, c.hostReachability(ctx)), start)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))

	if resp.StatusCode >= net.StatusBadRequest {
		return diagnostic.Observe(status.ProbeNetwork, status.OutcomeFailure,
			fmt.Sprintf("%s: status %d", diagnostic.ErrNetworkUnreachable, resp.StatusCode), start)
	}

	return diagnostic.Observe(status.ProbeNetwork, status.OutcomeSuccess,
		fmt.Sprintf("status %d", resp.StatusCode), start)
}

// hostReachability distinguishes "host down" from "service down" with a
// single best-effort unprivileged ping. Ping failures are reported in the
// detail, never as their own result.
func (c *checker) hostReachability(ctx context.Context) string {
	domain, err := netutil.ExtractHostnameFromURL(c.cfg.Backend.Host)
	if err != nil {
		return "unknown"
	}

	pinger, err := ping.NewPinger(domain)
	if err != nil {
		return "unknown"
	}
	pinger.SetNetwork("ip4")
	pinger.SetPrivileged(false)
	pinger.Count = 1
	if err := pinger.RunWithContext(ctx); err != nil || pinger.Statistics().PacketsRecv == 0 {
		return "unreachable"
	}
	return "reachable"
}
