// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"testing"
	"time"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg := parseConfig()

	if cfg.Address != "" || cfg.Port != 8080 {
		t.Errorf("expected :8080, got %s:%d", cfg.Address, cfg.Port)
	}
	if cfg.RateLimit != 100 || cfg.RateLimitBurst != 200 {
		t.Errorf("expected 100 req/s burst 200, got %v burst %d", cfg.RateLimit, cfg.RateLimitBurst)
	}
	if cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("expected body cap %d, got %d", DefaultMaxBodyBytes, cfg.MaxBodyBytes)
	}
	if cfg.ReadTimeout != defaults.ServerReadTimeout || cfg.WriteTimeout != defaults.ServerWriteTimeout {
		t.Errorf("unexpected read/write timeouts %v/%v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.ShutdownTimeout != defaults.ServerShutdownTimeout {
		t.Errorf("expected shutdown timeout %v, got %v", defaults.ServerShutdownTimeout, cfg.ShutdownTimeout)
	}
}

func TestParseConfigEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
		check func(*Config) bool
	}{
		{"port", EnvPort, "9090", func(c *Config) bool { return c.Port == 9090 }},
		{"invalid port", EnvPort, "http", func(c *Config) bool { return c.Port == 8080 }},
		{"negative port", EnvPort, "-1", func(c *Config) bool { return c.Port == 8080 }},
		{"shutdown", EnvShutdownTimeoutSeconds, "45", func(c *Config) bool { return c.ShutdownTimeout == 45*time.Second }},
		{"zero shutdown", EnvShutdownTimeoutSeconds, "0", func(c *Config) bool { return c.ShutdownTimeout == defaults.ServerShutdownTimeout }},
		{"body cap", EnvMaxBodyBytes, "1024", func(c *Config) bool { return c.MaxBodyBytes == 1024 }},
		{"body cap disabled", EnvMaxBodyBytes, "0", func(c *Config) bool { return c.MaxBodyBytes == 0 }},
		{"invalid body cap", EnvMaxBodyBytes, "1MiB", func(c *Config) bool { return c.MaxBodyBytes == DefaultMaxBodyBytes }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			if cfg := parseConfig(); !tt.check(cfg) {
				t.Errorf("%s=%s produced unexpected config %+v", tt.env, tt.value, cfg)
			}
		})
	}
}
