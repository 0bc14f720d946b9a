// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

// Serializable is a small interface that ensures certain objects can be freely represented in
// various encoded forms, usually for the purpose of transmitting in the network
type Serializable interface {
	ToBytes() ([]byte, error)
}
