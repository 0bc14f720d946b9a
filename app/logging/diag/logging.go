// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diag provides the logrus logger used by diagnostic check packages.
package diag

import (
	"github.com/sirupsen/logrus"
)

// OpField labels log lines with the diagnostic operation that emitted them.
const OpField = "op"

// Log output formats accepted by SetUpLogging.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// NewLogger returns the shared logrus logger for diagnostic checks.
func NewLogger() *logrus.Logger {
	return logrus.StandardLogger()
}

// SetUpLogging configures the level and format of the shared logger.
// Unknown levels fall back to info.
func SetUpLogging(level, format string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	switch format {
	case LogFormatJSON:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
