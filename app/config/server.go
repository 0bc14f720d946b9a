// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

// Server configures the local status HTTP server exposed in serve mode.
type Server struct {
	Mode      string `yaml:"mode" default:"http" env:"SERVER_MODE" env-description:"server mode such as http, https"`
	Port      uint   `yaml:"port" default:"8080" env:"SERVER_PORT" env-description:"server port"`
	Profiling bool   `yaml:"profiling" default:"false" env:"SERVER_PROFILING" env-description:"enable profiling"`
}

func (s *Server) Validate() error {
	if s.Mode == "" {
		s.Mode = DefaultServerMode
	}
	if s.Port == 0 {
		s.Port = DefaultServerPort
	}
	return nil
}
