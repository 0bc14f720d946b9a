// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package logging provides the zerolog logger used by conncheck binaries and
// HTTP surfaces, along with the bounded in-memory log ring the diagnostic
// runner writes to and debug views render from.
package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Option configures the logger returned by NewLogger.
type Option func(*options)

type options struct {
	level string
	sinks []io.Writer
}

// WithLevel sets the minimum log level, e.g. "debug", "info", "error".
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithSink adds an additional writer that receives every log line, such as a
// RingWriter feeding the in-memory log view.
func WithSink(w io.Writer) Option {
	return func(o *options) {
		o.sinks = append(o.sinks, w)
	}
}

// NewLogger builds the process logger. Output always goes to stderr; extra
// sinks receive the same JSON lines.
func NewLogger(opts ...Option) (*zerolog.Logger, error) {
	o := options{level: "info"}
	for _, opt := range opts {
		opt(&o)
	}

	level, err := zerolog.ParseLevel(o.level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", o.level)
	}

	writers := append([]io.Writer{os.Stderr}, o.sinks...)
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return &logger, nil
}
