// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package client is a small helper over net/http for one-shot API requests
// with explicit headers and query parameters.
package client

import (
	"context"
	"io"
	net "net/http"
	"net/url"

	"github.com/pkg/errors"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	QueryParamSource = "source"
)

// Do issues a single request and returns the response body on 2xx. The body
// is fully read and the response closed before returning.
func Do(ctx context.Context, client *net.Client, method string, headers, query map[string]string, uri string, body io.Reader) ([]byte, error) {
	if client == nil {
		client = net.DefaultClient
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid url %q", uri)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	req, err := net.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	if resp.StatusCode < net.StatusOK || resp.StatusCode >= net.StatusMultipleChoices {
		return nil, errors.Errorf("%s %s returned %d: %s", method, u.Path, resp.StatusCode, string(data))
	}
	return data, nil
}
