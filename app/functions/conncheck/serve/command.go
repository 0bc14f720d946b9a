// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package serve runs the agent as a long-lived HTTP service with the
// periodic connection monitor.
package serve

import (
	"fmt"
	"net/http"

	"github.com/go-obvious/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lumenmatch/conncheck/app/backend"
	"github.com/lumenmatch/conncheck/app/build"
	"github.com/lumenmatch/conncheck/app/config"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/catalog"
	"github.com/lumenmatch/conncheck/app/domain/diagnostic/runner"
	"github.com/lumenmatch/conncheck/app/domain/healthz"
	"github.com/lumenmatch/conncheck/app/domain/monitor"
	"github.com/lumenmatch/conncheck/app/domain/remediation"
	"github.com/lumenmatch/conncheck/app/handlers"
	"github.com/lumenmatch/conncheck/app/http/middleware"
	"github.com/lumenmatch/conncheck/app/logging"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the agent as an HTTP service",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: config.FlagConfigFile, Aliases: []string{"f"}, Usage: "input " + config.FlagDescConfFile, Required: true},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	ctx := c.Context

	configs := c.StringSlice(config.FlagConfigFile)
	if len(configs) == 0 {
		return errors.New("no configuration files specified")
	}

	cfg, err := config.NewSettings(configs...)
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	if err = cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid settings")
	}

	// the ring doubles as a zerolog sink so the log view reflects what the
	// service itself logged
	ring := logging.NewRing(cfg.Logging.RingCapacity)
	logger, err := logging.NewLogger(
		logging.WithLevel(cfg.Logging.Level),
		logging.WithSink(logging.RingWriter(ring)),
	)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	zerolog.DefaultContextLogger = logger
	ctx = logger.WithContext(ctx)

	logger.Info().
		Str("version", build.GetVersion()).
		Str("rev", build.Rev).
		Str("backend", cfg.Backend.Host).
		Msg("Starting conncheck agent")

	registry := catalog.NewDefaultCatalog(ctx, cfg, nil)
	engine := runner.NewRunner(cfg, registry, ring, nil)
	fixer := remediation.NewFixer(backend.NewGotrueClient(&cfg.Backend, nil))

	var mon *monitor.Monitor
	if !cfg.Monitor.Disabled {
		provider, ok := registry.Get(cfg.Monitor.Check)
		if !ok {
			return errors.Errorf("unknown monitor check %q", cfg.Monitor.Check)
		}
		mon = monitor.New(cfg, provider, http.DefaultClient)
		if err = mon.Run(); err != nil {
			return errors.Wrap(err, "starting monitor")
		}
	}

	health := healthz.NewRegistry()
	health.Register("config", cfg.Validate)
	if mon != nil {
		health.Register("monitor", func() error {
			if !mon.IsRunning() {
				return errors.New("monitor is not running")
			}
			return nil
		})
	}

	mw := []server.Middleware{
		middleware.LoggingMiddlewareWrapper,
		middleware.PromHTTPMiddleware,
	}

	apis := []server.API{
		handlers.NewStatusAPI("/status", engine, mon, fixer),
		handlers.NewLogsAPI("/logs", ring),
		handlers.NewHealthzAPI("/healthz", health),
		handlers.NewPromMetricsAPI("/metrics"),
	}
	if cfg.Server.Profiling {
		apis = append(apis, handlers.NewProfilingAPI("/debug/pprof/"))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Ctx(gctx).Info().Msg("Starting service")
		server.New(build.Version()).
			WithAddress(fmt.Sprintf(":%d", cfg.Server.Port)).
			WithMiddleware(mw...).
			WithAPIs(apis...).
			WithListener(server.HTTPListener()).
			Run(gctx)
		log.Ctx(gctx).Info().Msg("Server stopped")
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		if mon != nil {
			return mon.Shutdown()
		}
		return nil
	})

	return g.Wait()
}
