// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package backend contains thin clients for the backend-as-a-service the
// mobile app depends on: the REST data API, the auth/session API, and the
// realtime websocket broker. The diagnostic checks consume these through
// small interfaces so tests can substitute fakes.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lumenmatch/conncheck/app/config"
)

// DataClient issues bounded reads against the data API.
type DataClient interface {
	// Select fetches up to limit rows of the given columns from table.
	Select(ctx context.Context, table, columns string, limit int) ([]map[string]any, error)
}

// RestClient is a DataClient backed by the backend's PostgREST-style API.
type RestClient struct {
	host   string
	apiKey string
	client *http.Client
}

// NewRestClient builds a data client from the backend settings. A nil http
// client falls back to http.DefaultClient; timeouts are supplied by the
// caller's context.
func NewRestClient(cfg *config.Backend, client *http.Client) *RestClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RestClient{
		host:   strings.TrimRight(cfg.Host, "/"),
		apiKey: cfg.APIKey,
		client: client,
	}
}

func (c *RestClient) Select(ctx context.Context, table, columns string, limit int) ([]map[string]any, error) {
	if table == "" {
		return nil, errors.New("table is required")
	}
	if columns == "" {
		columns = "*"
	}

	q := url.Values{}
	q.Set("select", columns)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.host, url.PathEscape(table), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create data request")
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "data request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("data api returned %d: %s", resp.StatusCode, string(b))
	}

	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode data response")
	}
	return rows, nil
}
