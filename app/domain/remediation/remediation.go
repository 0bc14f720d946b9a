// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package remediation holds recovery actions the agent can take when a
// diagnostic run reports an unhealthy backend connection. The only action
// currently implemented is forcing a session refresh against the auth
// service.
package remediation

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lumenmatch/conncheck/app/backend"
	"github.com/lumenmatch/conncheck/app/logging/diag"
)

// ErrRemediationFailed wraps any failure of a remediation attempt so callers
// can distinguish "the fix did not take" from errors in their own plumbing.
var ErrRemediationFailed = errors.New("remediation failed")

// Fixer attempts to restore a healthy backend connection.
type Fixer struct {
	auth   backend.AuthClient
	logger *logrus.Entry
}

// NewFixer builds a Fixer that remediates through the given auth client.
func NewFixer(auth backend.AuthClient) *Fixer {
	return &Fixer{
		auth:   auth,
		logger: diag.NewLogger().WithField(diag.OpField, "remediation"),
	}
}

// AttemptFix forces a session refresh as the generic recovery step for a
// stale or invalid session. Success means the auth service accepted the
// refresh; it does not re-run diagnostics. Any failure is returned wrapped in
// ErrRemediationFailed.
func (f *Fixer) AttemptFix(ctx context.Context) error {
	f.logger.Info("attempting session refresh")

	session, err := f.auth.RefreshSession(ctx)
	if err != nil {
		f.logger.WithError(err).Error("session refresh was rejected")
		return errors.Wrap(ErrRemediationFailed, err.Error())
	}
	if session == nil {
		f.logger.Error("session refresh returned no session")
		return errors.Wrap(ErrRemediationFailed, "no session returned")
	}

	f.logger.WithField("user_id", session.UserID).Info("session refreshed")
	return nil
}
