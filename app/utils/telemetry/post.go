// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package telemetry uploads completed health reports to the ops endpoint.
// Uploads are best-effort: failures must never affect diagnostics, and the
// whole pipeline is skipped when telemetry is disabled in the settings.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	net "net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lumenmatch/conncheck/app/config"
	http "github.com/lumenmatch/conncheck/app/http/client"
	"github.com/lumenmatch/conncheck/app/types/status"
)

// URLPath is the API endpoint path for health report uploads, appended to
// the configured telemetry host.
const URLPath = "/v1/conncheck/status"

// Timeout bounds one upload. Matches the default send_timeout so a hung
// endpoint cannot stall a diagnose invocation.
const Timeout = 15 * time.Second

// Post uploads the report behind the accessor as JSON with bearer
// authentication. Returns nil without any network activity when telemetry is
// disabled.
func Post(ctx context.Context, client *net.Client, cfg *config.Settings, accessor status.Accessor) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if accessor == nil {
		return errors.New("nil accessor")
	}

	// quietly exit
	if cfg.Telemetry.DisableTelemetry {
		return nil
	}

	if cfg.Telemetry.Host == "" {
		return errors.New("missing telemetry host")
	}

	if cfg.Telemetry.APIKey == "" {
		return errors.New("missing telemetry api key")
	}

	if client == nil {
		client = net.DefaultClient
	}

	var (
		err  error
		data []byte
	)
	accessor.ReadFromReport(func(r *status.HealthReport) {
		data, err = json.Marshal(r)
	})
	if err != nil {
		return errors.Wrap(err, "marshalling health report")
	}
	if len(data) == 0 {
		return errors.New("no data to post")
	}
	logrus.Info("marshalled health report: " + strconv.Itoa(len(data)) + " bytes")

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s%s", cfg.Telemetry.Host, URLPath)
	_, err = http.Do(ctx, client, net.MethodPost,
		map[string]string{
			http.HeaderAuthorization: "Bearer " + cfg.Telemetry.APIKey,
			http.HeaderContentType:   http.ContentTypeJSON,
		},
		map[string]string{
			http.QueryParamSource: "conncheck-agent",
		},
		endpoint,
		bytes.NewReader(data),
	)

	return err
}
