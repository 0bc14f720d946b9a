// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package datastore contains code for checking the data API with a bounded
// single-row read. Row count does not matter; only whether the read errored.
package datastore

import (
	"context"
	"fmt"
	net "net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumenmatch/conncheck/app/backend"
	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic"
	"github.com/lumenmatch/conncheck/app/logging/diag"
	"github.com/lumenmatch/conncheck/app/types/status"
)

const DiagnosticDataStoreRead = config.DiagnosticDataStore

type checker struct {
	cfg    *config.Settings
	data   backend.DataClient
	logger *logrus.Entry
}

func NewProvider(ctx context.Context, cfg *config.Settings, data backend.DataClient) diagnostic.Provider {
	return &checker{
		cfg:  cfg,
		data: data,
		logger: diag.NewLogger().
			WithContext(ctx).WithField(diag.OpField, "datastore"),
	}
}

func (c *checker) Check(ctx context.Context, _ *net.Client, accessor status.Accessor) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Diagnostics.CheckTimeout)
	defer cancel()

	start := time.Now()
	rows, err := c.data.Select(ctx, c.cfg.Backend.HealthTable, "id", 1)
	if err != nil {
		outcome := status.OutcomeFailure
		if diagnostic.IsTimeout(err) {
			outcome = status.OutcomeTimeout
		}
		detail := fmt.Sprintf("%s: %s", diagnostic.ErrDataStore, err)
		c.logger.WithField("detail", detail).Warn("datastore probe failed")
		accessor.AddResult(diagnostic.Observe(status.ProbeDataStore, outcome, detail, start))
		return nil
	}

	// zero rows is still a healthy read
	accessor.AddResult(diagnostic.Observe(status.ProbeDataStore, status.OutcomeSuccess,
		fmt.Sprintf("%d rows", len(rows)), start))
	return nil
}
