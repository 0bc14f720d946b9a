// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package runner_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenmatch/conncheck/app/backend"
	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/catalog"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/runner"
	"github.com/lumenmatch/conncheck/app/logging"
	"github.com/lumenmatch/conncheck/app/types/status"
)

type fakeData struct {
	err     error
	block   chan struct{} // when set, Select waits until the channel closes
	entered chan struct{} // when set, closed once Select is reached

	enterOnce sync.Once
}

func (f *fakeData) Select(ctx context.Context, table, columns string, limit int) ([]map[string]any, error) {
	if f.entered != nil {
		f.enterOnce.Do(func() { close(f.entered) })
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []map[string]any{}, f.err
}

type fakeAuth struct {
	session *backend.Session
	err     error
}

func (f *fakeAuth) GetSession(ctx context.Context) (*backend.Session, error) {
	return f.session, f.err
}

func (f *fakeAuth) RefreshSession(ctx context.Context) (*backend.Session, error) {
	return f.session, f.err
}

type echoChannel struct {
	msgs chan backend.Message
	once sync.Once
}

func (c *echoChannel) Publish(ctx context.Context, event string, payload map[string]any) error {
	c.msgs <- backend.Message{Topic: "t", Event: event, Payload: payload}
	return nil
}
func (c *echoChannel) Messages() <-chan backend.Message { return c.msgs }
func (c *echoChannel) Close() error {
	c.once.Do(func() { close(c.msgs) })
	return nil
}

type fakeRealtime struct{}

func (fakeRealtime) Join(ctx context.Context, topic string) (backend.Channel, error) {
	ch := &echoChannel{msgs: make(chan backend.Message, 4)}
	return ch, nil
}

// fixtures builds a runner whose network check hits the given httptest
// server and whose remaining checks use the provided fakes.
func fixtures(t *testing.T, healthHandler http.HandlerFunc, deps catalog.Dependencies) (*runner.Runner, *logging.Ring, *config.Settings) {
	t.Helper()

	server := httptest.NewServer(healthHandler)
	t.Cleanup(server.Close)

	cfg := &config.Settings{
		Backend: config.Backend{
			Host:        server.URL,
			APIKey:      "test-key",
			HealthPath:  "/health",
			HealthTable: "profiles",
		},
		Diagnostics: config.Diagnostics{
			CheckTimeout:    500 * time.Millisecond,
			RealtimeTimeout: 500 * time.Millisecond,
			Checks:          config.AllDiagnostics,
		},
	}

	ring := logging.NewRing(50)
	cat := catalog.NewCatalog(context.Background(), cfg, deps)
	return runner.NewRunner(cfg, cat, ring, nil), ring, cfg
}

func healthOK(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestUnit_Diagnostic_Runner_AllHealthy(t *testing.T) {
	eng, ring, _ := fixtures(t, healthOK, catalog.Dependencies{
		Data:     &fakeData{},
		Auth:     &fakeAuth{session: &backend.Session{UserID: "user-1"}},
		Realtime: fakeRealtime{},
	})

	accessor, err := eng.Run(context.Background())
	require.NoError(t, err)

	accessor.ReadFromReport(func(r *status.HealthReport) {
		require.Len(t, r.Results, 4)
		assert.True(t, r.OverallHealthy)
		assert.Equal(t, status.ProbeNetwork, r.Results[0].Kind)
		assert.Equal(t, status.ProbeDataStore, r.Results[1].Kind)
		assert.Equal(t, status.ProbeAuth, r.Results[2].Kind)
		assert.Equal(t, status.ProbeRealtimeChannel, r.Results[3].Kind)
		assert.False(t, r.StartedAt.IsZero())
		assert.False(t, r.CompletedAt.IsZero())
		assert.False(t, r.CompletedAt.Before(r.StartedAt))
	})

	// one line before and one line after each of the four checks
	assert.Equal(t, 8, ring.Len())
}

func TestUnit_Diagnostic_Runner_SingleFailureUnhealthy(t *testing.T) {
	// auth reports no active session; everything else passes
	eng, _, _ := fixtures(t, healthOK, catalog.Dependencies{
		Data:     &fakeData{},
		Auth:     &fakeAuth{session: nil},
		Realtime: fakeRealtime{},
	})

	accessor, err := eng.Run(context.Background())
	require.NoError(t, err)

	accessor.ReadFromReport(func(r *status.HealthReport) {
		require.Len(t, r.Results, 4)
		assert.False(t, r.OverallHealthy)

		// the failing probe never aborts the run
		assert.Equal(t, status.OutcomeSuccess, r.Results[0].Outcome)
		assert.Equal(t, status.OutcomeSuccess, r.Results[1].Outcome)
		assert.Equal(t, status.OutcomeFailure, r.Results[2].Outcome)
		assert.Equal(t, "no active session", r.Results[2].Detail)
		assert.Equal(t, status.OutcomeSuccess, r.Results[3].Outcome)
	})
}

func TestUnit_Diagnostic_Runner_RejectsConcurrentRun(t *testing.T) {
	block := make(chan struct{})
	entered := make(chan struct{})
	eng, _, _ := fixtures(t, healthOK, catalog.Dependencies{
		Data:     &fakeData{block: block, entered: entered},
		Auth:     &fakeAuth{session: &backend.Session{UserID: "user-1"}},
		Realtime: fakeRealtime{},
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := eng.Run(context.Background())
		assert.NoError(t, err)
	}()

	// wait for the first run to reach the blocked datastore check
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first run never reached the datastore check")
	}

	_, err := eng.Run(context.Background())
	assert.ErrorIs(t, err, runner.ErrRunInProgress)

	close(block)
	<-done

	// once the first run completes, a new run is accepted again
	_, err = eng.Run(context.Background())
	assert.NoError(t, err)
}

func TestUnit_Diagnostic_Runner_LastReportSnapshot(t *testing.T) {
	eng, _, _ := fixtures(t, healthOK, catalog.Dependencies{
		Data:     &fakeData{},
		Auth:     &fakeAuth{session: &backend.Session{UserID: "user-1"}},
		Realtime: fakeRealtime{},
	})

	assert.Nil(t, eng.LastReport())

	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	report := eng.LastReport()
	require.NotNil(t, report)
	assert.Len(t, report.Results, 4)

	// mutating the snapshot cannot disturb the runner's copy
	report.Results[0].Detail = "scribbled"
	fresh := eng.LastReport()
	assert.NotEqual(t, "scribbled", fresh.Results[0].Detail)
}

func TestUnit_Diagnostic_Runner_UnknownCheck(t *testing.T) {
	eng, _, cfg := fixtures(t, healthOK, catalog.Dependencies{
		Data:     &fakeData{},
		Auth:     &fakeAuth{},
		Realtime: fakeRealtime{},
	})
	cfg.Diagnostics.Checks = []string{"bogus"}

	_, err := eng.Run(context.Background())
	assert.Error(t, err)
}
