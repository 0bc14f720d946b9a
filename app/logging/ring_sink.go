// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type ringWriter struct {
	ring *Ring
}

// RingWriter returns an io.Writer that feeds zerolog output into the given
// ring so the scrolling log view shows the same lines the process logs.
func RingWriter(ring *Ring) io.Writer {
	return &ringWriter{ring: ring}
}

// Write implements io.Writer. Parses the raw json bytes from zerolog into a
// ring entry; lines that are not valid JSON are buffered verbatim.
func (s *ringWriter) Write(p []byte) (n int, err error) {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(p, &logEntry); err != nil {
		s.ring.Append(string(p))
		return len(p), nil
	}

	// pull out the message itself
	var msg string
	if m, exists := logEntry[zerolog.MessageFieldName]; exists {
		if mStr, ok := m.(string); ok {
			msg = mStr
		} else {
			msg = fmt.Sprintf("%v", m)
		}
	}
	if lvl, exists := logEntry[zerolog.LevelFieldName]; exists {
		msg = fmt.Sprintf("[%v] %s", lvl, msg)
	}

	// parse the timestamp, defaulting to now when absent
	ts := time.Now().UTC()
	if t, exists := logEntry[zerolog.TimestampFieldName]; exists {
		if tStr, ok := t.(string); ok {
			if parsed, err := time.Parse(zerolog.TimeFieldFormat, tStr); err == nil {
				ts = parsed
			}
		}
	}

	s.ring.AppendAt(ts, msg)
	return len(p), nil
}
