// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package types

// Runnable is a long-lived background component with an explicit lifecycle,
// such as the periodic connection monitor.
type Runnable interface {
	// Run starts the runnable.
	Run() error
	// IsRunning returns true if the runnable is running.
	IsRunning() bool
	// Shutdown shuts down the runnable.
	Shutdown() error
}
