// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnostic

import "github.com/pkg/errors"

// Failure taxonomy surfaced in probe result details and wrapped errors. None
// of these ever escape a provider as a returned error; they classify what a
// recorded failure was.
var (
	ErrNetworkUnreachable = errors.New("network unreachable")
	ErrDataStore          = errors.New("datastore error")
	ErrAuth               = errors.New("auth error")
	ErrNoActiveSession    = errors.New("no active session")
	ErrRealtimeTimeout    = errors.New("realtime round trip timed out")
	ErrRealtimeChannel    = errors.New("realtime channel error")
)
