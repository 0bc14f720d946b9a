// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenmatch/conncheck/app/backend"
	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/auth"
	"github.com/lumenmatch/conncheck/app/types/status"
)

type fakeAuthClient struct {
	session *backend.Session
	err     error
	wait    time.Duration
}

func (f *fakeAuthClient) GetSession(ctx context.Context) (*backend.Session, error) {
	if f.wait > 0 {
		select {
		case <-time.After(f.wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.session, f.err
}

func (f *fakeAuthClient) RefreshSession(ctx context.Context) (*backend.Session, error) {
	return f.session, f.err
}

func settings() *config.Settings {
	return &config.Settings{
		Diagnostics: config.Diagnostics{
			CheckTimeout:    200 * time.Millisecond,
			RealtimeTimeout: 200 * time.Millisecond,
		},
	}
}

func runCheck(t *testing.T, client *fakeAuthClient) status.ProbeResult {
	t.Helper()
	provider := auth.NewProvider(context.Background(), settings(), client)
	accessor := status.NewAccessor(&status.HealthReport{})
	require.NoError(t, provider.Check(context.Background(), nil, accessor))

	var result status.ProbeResult
	accessor.ReadFromReport(func(r *status.HealthReport) {
		require.Len(t, r.Results, 1)
		result = r.Results[0]
	})
	return result
}

func TestUnit_Diagnostic_Auth_CheckOK(t *testing.T) {
	result := runCheck(t, &fakeAuthClient{session: &backend.Session{UserID: "user-1", AccessToken: "tok"}})
	assert.Equal(t, status.ProbeAuth, result.Kind)
	assert.Equal(t, status.OutcomeSuccess, result.Outcome)
	assert.Contains(t, result.Detail, "user-1")
}

func TestUnit_Diagnostic_Auth_CheckNoSessionIsFailureNotTimeout(t *testing.T) {
	result := runCheck(t, &fakeAuthClient{session: nil, err: nil})
	assert.Equal(t, status.OutcomeFailure, result.Outcome)
	assert.Equal(t, "no active session", result.Detail)
}

func TestUnit_Diagnostic_Auth_CheckUpstreamError(t *testing.T) {
	result := runCheck(t, &fakeAuthClient{err: errors.New("gateway exploded")})
	assert.Equal(t, status.OutcomeFailure, result.Outcome)
	assert.Contains(t, result.Detail, "auth error")
	assert.Contains(t, result.Detail, "gateway exploded")
}

func TestUnit_Diagnostic_Auth_CheckTimeout(t *testing.T) {
	result := runCheck(t, &fakeAuthClient{wait: time.Second})
	assert.Equal(t, status.OutcomeTimeout, result.Outcome)
}
