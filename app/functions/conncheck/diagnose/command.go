// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diagnose contains the CLI surface for running diagnostics.
package diagnose

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/lumenmatch/conncheck/app/backend"
	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/catalog"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/runner"
	"github.com/lumenmatch/conncheck/app/domain/remediation"
	"github.com/lumenmatch/conncheck/app/logging"
	"github.com/lumenmatch/conncheck/app/logging/diag"
	"github.com/lumenmatch/conncheck/app/types/status"
	"github.com/lumenmatch/conncheck/app/utils/telemetry"
)

const (
	configFileDesc = "input " + config.FlagDescConfFile
)

var configAlias = []string{"f"}

func NewCommand() *cli.Command {
	cmd := &cli.Command{
		Name:    "diagnose",
		Usage:   "diagnostic commands",
		Aliases: []string{"diag", "d"},
		Subcommands: []*cli.Command{
			{
				Name:  "get-available",
				Usage: "lists the available diagnostic checks",
				Flags: []cli.Flag{},
				Action: func(c *cli.Context) error {
					registry := catalog.NewCatalog(c.Context, &config.Settings{}, catalog.Dependencies{})
					for _, check := range registry.List() {
						fmt.Println("- " + check)
					}
					return nil
				},
			},
			{
				Name:  "run",
				Usage: "run the configured checks, or a subset of them",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "check", Usage: "comma separated or multi-value list of check(s) to run", Required: false},
					&cli.StringSliceFlag{Name: config.FlagConfigFile, Aliases: configAlias, Usage: configFileDesc, Required: true},
					&cli.BoolFlag{Name: "post", Usage: "if set, the completed report is uploaded", Required: false},
					&cli.BoolFlag{Name: "json", Usage: "print the report as JSON instead of a table", Required: false},
				},
				Action: func(c *cli.Context) error {
					ctx := c.Context

					cfg, err := loadSettings(c)
					if err != nil {
						return err
					}

					if requested := c.StringSlice("check"); len(requested) > 0 {
						cfg.Diagnostics.Checks = requested
						if err = cfg.Diagnostics.Validate(); err != nil {
							return err
						}
					}

					ring := logging.NewRing(cfg.Logging.RingCapacity)
					engine := runner.NewRunner(cfg, catalog.NewDefaultCatalog(ctx, cfg, nil), ring, nil)

					report, err := engine.Run(ctx)
					if err != nil {
						logrus.WithError(err).Fatal("Failed to run diagnostics")
					}

					report.ReadFromReport(func(r *status.HealthReport) {
						if c.Bool("json") {
							if b, err2 := json.MarshalIndent(r, "", "  "); err2 == nil {
								fmt.Println(string(b))
							}
							return
						}
						printHealthReport(r)
					})

					if c.Bool("post") && !cfg.Telemetry.DisableTelemetry {
						client := telemetry.NewHTTPClient(ctx, cfg)
						if err = telemetry.Post(ctx, client, cfg, report); err != nil {
							logrus.WithError(err).Warn("failed to post status")
						}
					}
					return nil
				},
			},
			{
				Name:  "fix",
				Usage: "attempt to restore a healthy connection by refreshing the session",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: config.FlagConfigFile, Aliases: configAlias, Usage: configFileDesc, Required: true},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadSettings(c)
					if err != nil {
						return err
					}

					fixer := remediation.NewFixer(backend.NewGotrueClient(&cfg.Backend, nil))
					if err = fixer.AttemptFix(c.Context); err != nil {
						return err
					}
					fmt.Println("session refreshed")
					return nil
				},
			},
		},
	}
	return cmd
}

func loadSettings(c *cli.Context) (*config.Settings, error) {
	configs := c.StringSlice(config.FlagConfigFile)
	if len(configs) == 0 {
		return nil, errors.New("no configuration files specified")
	}

	cfg, err := config.NewSettings(configs...)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err = cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	diag.SetUpLogging(cfg.Logging.Level, diag.LogFormatText)
	return cfg, nil
}

func printHealthReport(r *status.HealthReport) {
	if r == nil || len(r.Results) == 0 {
		return
	}

	fmt.Println("Checks:")
	fmt.Printf("%-20s %-10s %-12s %-50s\n", "Kind", "Outcome", "Elapsed", "Detail")
	fmt.Printf("%-20s %-10s %-12s %-50s\n", strings.Repeat("-", 20), strings.Repeat("-", 10), strings.Repeat("-", 12), strings.Repeat("-", 50))
	for _, result := range r.Results {
		fmt.Printf("%-20s %-10s %-12s %-50s\n", result.Kind, result.Outcome, fmt.Sprintf("%dms", result.ElapsedMillis), result.Detail)
	}
	fmt.Printf("\nOverall healthy: %v\n", r.OverallHealthy)
}
