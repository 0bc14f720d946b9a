// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package auth contains code for checking the current user session. An
// absent session is a distinct failure, not an error or a timeout.
package auth

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

const DiagnosticAuthSession = config.DiagnosticAuth

type checker struct {
	cfg    *config.Settings
	auth   backend.AuthClient
	logger *logrus.Entry
}

func NewProvider(ctx context.Context, cfg *config.Settings, auth backend.AuthClient) diagnostic.Provider {
	return &checker{
		cfg:  cfg,
		auth: auth,
		logger: diag.NewLogger().
			WithContext(ctx).WithField(diag.OpField, "auth"),
	}
}

func (c *checker) Check(ctx context.Context, _ *net.Client, accessor status.Accessor) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Diagnostics.CheckTimeout)
	defer cancel()

	start := time.Now()
	session, err := c.auth.GetSession(ctx)

	switch {
	case err != nil:
		outcome := status.OutcomeFailure
		if diagnostic.IsTimeout(err) {
			outcome = status.OutcomeTimeout
		}
		detail := fmt.Sprintf("%s: %s", diagnostic.ErrAuth, err)
		c.logger.WithField("detail", detail).Warn("auth probe failed")
		accessor.AddResult(diagnostic.Observe(status.ProbeAuth, outcome, detail, start))
	case session == nil:
		accessor.AddResult(diagnostic.Observe(status.ProbeAuth, status.OutcomeFailure,
			diagnostic.ErrNoActiveSession.Error(), start))
	default:
		accessor.AddResult(diagnostic.Observe(status.ProbeAuth, status.OutcomeSuccess,
			fmt.Sprintf("session for user %s", session.UserID), start))
	}
	return nil
}
