// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package build carries version metadata stamped in at link time.
package build

import "github.com/go-obvious/server"

// Overridden via -ldflags at release build time.
var (
	Rev  = "latest"
	Tag  = "latest"
	Time = "latest"
)

const (
	AuthorName  = "LumenMatch, Inc."
	AuthorEmail = "support@lumenmatch.dev"
	Copyright   = "Copyright (c) 2023-2026 LumenMatch, Inc."
)

// GetVersion returns the human readable version string.
func GetVersion() string {
	if Tag == "latest" {
		return Tag + "-" + Rev
	}
	return Tag
}

// Version adapts the build metadata for the go-obvious server.
func Version() *server.ServerVersion {
	return &server.ServerVersion{
		Revision: Rev,
		Tag:      Tag,
		Time:     Time,
	}
}
