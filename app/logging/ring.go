// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"sync"
	"time"
)

// DefaultRingCapacity bounds the log ring when no capacity is configured.
const DefaultRingCapacity = 50

// Entry is one line in the diagnostic log view.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Ring is a bounded FIFO log buffer. Appending to a full ring evicts the
// oldest entry. Safe for concurrent use.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewRing creates a ring holding at most capacity entries. Non-positive
// capacities fall back to DefaultRingCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &Ring{entries: make([]Entry, capacity)}
}

// Append records a message with the current UTC timestamp.
func (r *Ring) Append(message string) {
	r.AppendAt(time.Now().UTC(), message)
}

// AppendAt records a message with an explicit timestamp.
func (r *Ring) AppendAt(ts time.Time, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = Entry{Timestamp: ts, Message: message}
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}
}

// Entries returns a copy of the buffered entries in insertion order,
// oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

// Capacity reports how many entries the ring can hold.
func (r *Ring) Capacity() int {
	return len(r.entries)
}

// Len reports how many entries are currently buffered.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.entries)
	}
	return r.next
}
