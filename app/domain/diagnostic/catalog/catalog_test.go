// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/catalog"
)

func TestUnit_Diagnostic_Catalog_ListDeclaredOrder(t *testing.T) {
	registry := catalog.NewDefaultCatalog(context.Background(), &config.Settings{}, nil)

	assert.Equal(t, []string{
		config.DiagnosticNetwork,
		config.DiagnosticDataStore,
		config.DiagnosticAuth,
		config.DiagnosticRealtimeChannel,
	}, registry.List())
}

func TestUnit_Diagnostic_Catalog_GetKnownChecks(t *testing.T) {
	registry := catalog.NewDefaultCatalog(context.Background(), &config.Settings{}, nil)

	for _, name := range registry.List() {
		provider, ok := registry.Get(name)
		require.True(t, ok, "missing provider for %s", name)
		assert.NotNil(t, provider)
	}

	_, ok := registry.Get("bogus")
	assert.False(t, ok)
}
