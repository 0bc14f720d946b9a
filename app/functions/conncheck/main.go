// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/lumenmatch/conncheck/app/build"
	"github.com/lumenmatch/conncheck/app/functions/conncheck/diagnose"
	"github.com/lumenmatch/conncheck/app/functions/conncheck/serve"
	"github.com/lumenmatch/conncheck/app/logging"
)

const (
	FlagLogLevel = "log-level"
)

func main() {
	ctx := signalHandler()

	app := &cli.App{
		Name:     "conncheck",
		Version:  fmt.Sprintf("%s/%s-%s", build.GetVersion(), runtime.GOOS, runtime.GOARCH),
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{Name: build.AuthorName, Email: build.AuthorEmail},
		},
		Copyright:            build.Copyright,
		Usage:                "diagnostics for the LumenMatch backend connection",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: FlagLogLevel, Usage: "the log level", Required: false, Value: "info"},
		},
		Before: func(c *cli.Context) (err error) {
			logger, err := logging.NewLogger(logging.WithLevel(c.String(FlagLogLevel)))
			if err != nil {
				return fmt.Errorf("failed to create the logger: %w", err)
			}

			ctx = logger.WithContext(ctx)

			return nil
		},
	}

	app.Commands = append(
		app.Commands,
		diagnose.NewCommand(),
		serve.NewCommand(),
	)

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Ctx(ctx).Err(err).Msg("failed to run conncheck")
		os.Exit(1)
	}
}

func signalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopCh
		cancel()
	}()
	return ctx
}
