// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package healthz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenmatch/conncheck/app/domain/healthz"
)

func invoke(t *testing.T, reg *healthz.Registry) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	reg.EndpointHandler()(rec, req)
	return rec
}

func TestUnit_Healthz_EmptyRegistryIsHealthy(t *testing.T) {
	reg := healthz.NewRegistry()
	rec := invoke(t, reg)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestUnit_Healthz_AllChecksPass(t *testing.T) {
	reg := healthz.NewRegistry()
	reg.Register("monitor", func() error { return nil })
	reg.Register("config", func() error { return nil })

	rec := invoke(t, reg)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUnit_Healthz_FailingCheckReported(t *testing.T) {
	reg := healthz.NewRegistry()
	reg.Register("monitor", func() error { return errors.New("not running") })
	reg.Register("config", func() error { return nil })

	rec := invoke(t, reg)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "monitor failed: not running", rec.Body.String())
}

func TestUnit_Healthz_RegisterReplacesCheck(t *testing.T) {
	reg := healthz.NewRegistry()
	reg.Register("monitor", func() error { return errors.New("not running") })
	reg.Register("monitor", func() error { return nil })

	rec := invoke(t, reg)
	require.Equal(t, http.StatusOK, rec.Code)
}
