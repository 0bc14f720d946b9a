// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
)

func createRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, "http://localhost"+path, body)
	// test.InvokeService sends the request through a real HTTP client,
	// which rejects requests with RequestURI set.
	req.RequestURI = ""
	return req
}
