// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package monitor_test

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/monitor"
	"github.com/lumenmatch/conncheck/app/types/status"
)

type fakeProvider struct {
	outcome status.ProbeOutcome
	block   chan struct{} // when non-nil, Check waits here before resolving

	calls     atomic.Int64
	active    atomic.Int64
	maxActive atomic.Int64

	entered   chan struct{}
	enterOnce sync.Once
}

func newFakeProvider(outcome status.ProbeOutcome) *fakeProvider {
	return &fakeProvider{
		outcome: outcome,
		entered: make(chan struct{}),
	}
}

func (f *fakeProvider) Check(_ context.Context, _ *http.Client, accessor status.Accessor) error {
	f.enterOnce.Do(func() { close(f.entered) })
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		peak := f.maxActive.Load()
		if n <= peak || f.maxActive.CompareAndSwap(peak, n) {
			break
		}
	}

	if f.block != nil {
		<-f.block
	}

	f.calls.Add(1)
	accessor.AddResult(&status.ProbeResult{
		Kind:       status.ProbeNetwork,
		Outcome:    f.outcome,
		ObservedAt: time.Now().UTC(),
	})
	return nil
}

func monitorSettings(interval time.Duration) *config.Settings {
	return &config.Settings{
		Monitor: config.Monitor{
			Interval: interval,
			Check:    config.DiagnosticNetwork,
		},
	}
}

func TestUnit_Monitor_ConnectedAfterSuccessfulCheck(t *testing.T) {
	provider := newFakeProvider(status.OutcomeSuccess)
	mon := monitor.New(monitorSettings(time.Hour), provider, http.DefaultClient)

	mon.Start()
	defer mon.Stop()

	require.Eventually(t, func() bool {
		return mon.State().Status == status.MonitorConnected
	}, 5*time.Second, 10*time.Millisecond)

	state := mon.State()
	require.NotNil(t, state.LastResult)
	assert.Equal(t, status.OutcomeSuccess, state.LastResult.Outcome)
	assert.Equal(t, status.ProbeNetwork, state.LastResult.Kind)
	assert.False(t, state.LastChecked.IsZero())
	assert.Equal(t, time.Hour.Milliseconds(), state.IntervalMs)
}

func TestUnit_Monitor_DisconnectedAfterFailedCheck(t *testing.T) {
	provider := newFakeProvider(status.OutcomeFailure)
	mon := monitor.New(monitorSettings(time.Hour), provider, http.DefaultClient)

	mon.Start()
	defer mon.Stop()

	require.Eventually(t, func() bool {
		return mon.State().Status == status.MonitorDisconnected
	}, 5*time.Second, 10*time.Millisecond)

	state := mon.State()
	require.NotNil(t, state.LastResult)
	assert.False(t, state.LastResult.Passing())
}

func TestUnit_Monitor_TestingWhileCheckInFlight(t *testing.T) {
	provider := newFakeProvider(status.OutcomeSuccess)
	provider.block = make(chan struct{})
	mon := monitor.New(monitorSettings(time.Hour), provider, http.DefaultClient)

	mon.Start()
	defer mon.Stop()

	select {
	case <-provider.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("check never started")
	}
	assert.Equal(t, status.MonitorTesting, mon.State().Status)

	close(provider.block)
	require.Eventually(t, func() bool {
		return mon.State().Status == status.MonitorConnected
	}, 5*time.Second, 10*time.Millisecond)
}

func TestUnit_Monitor_RepeatsOnInterval(t *testing.T) {
	provider := newFakeProvider(status.OutcomeSuccess)
	mon := monitor.New(monitorSettings(10*time.Millisecond), provider, http.DefaultClient)

	mon.Start()
	defer mon.Stop()

	require.Eventually(t, func() bool {
		return provider.calls.Load() >= 3
	}, 5*time.Second, 5*time.Millisecond)
}

func TestUnit_Monitor_SkipsOverlappingTicks(t *testing.T) {
	provider := newFakeProvider(status.OutcomeSuccess)
	provider.block = make(chan struct{})
	mon := monitor.New(monitorSettings(5*time.Millisecond), provider, http.DefaultClient)

	mon.Start()
	defer mon.Stop()

	select {
	case <-provider.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("check never started")
	}

	// several intervals pass while the first check is still unresolved
	time.Sleep(50 * time.Millisecond)
	close(provider.block)

	require.Eventually(t, func() bool {
		return provider.calls.Load() >= 1
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), provider.maxActive.Load())
}

func TestUnit_Monitor_NoMutationAfterStop(t *testing.T) {
	provider := newFakeProvider(status.OutcomeSuccess)
	provider.block = make(chan struct{})
	mon := monitor.New(monitorSettings(time.Hour), provider, http.DefaultClient)

	mon.Start()
	select {
	case <-provider.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("check never started")
	}

	mon.Stop()
	before := mon.State()

	// the in-flight check resolves only after the monitor has stopped
	close(provider.block)
	require.Eventually(t, func() bool {
		return provider.calls.Load() == 1
	}, 5*time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	after := mon.State()
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.LastChecked, after.LastChecked)
	assert.Nil(t, after.LastResult)
}

func TestUnit_Monitor_StopIsIdempotent(t *testing.T) {
	provider := newFakeProvider(status.OutcomeSuccess)
	mon := monitor.New(monitorSettings(time.Hour), provider, http.DefaultClient)

	mon.Start()
	assert.True(t, mon.IsRunning())

	mon.Stop()
	mon.Stop()
	assert.False(t, mon.IsRunning())
}

func TestUnit_Monitor_RunnableLifecycle(t *testing.T) {
	provider := newFakeProvider(status.OutcomeSuccess)
	mon := monitor.New(monitorSettings(time.Hour), provider, http.DefaultClient)

	require.NoError(t, mon.Run())
	assert.True(t, mon.IsRunning())
	require.NoError(t, mon.Shutdown())
	assert.False(t, mon.IsRunning())
}
