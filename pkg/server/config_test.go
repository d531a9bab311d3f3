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

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg := parseConfig()

	checks := []struct {
		field string
		got   any
		want  any
	}{
		{"Address", cfg.Address, ""},
		{"Port", cfg.Port, defaultPort},
		{"RateLimit", float64(cfg.RateLimit), float64(defaultRateLimit)},
		{"RateLimitBurst", cfg.RateLimitBurst, defaultRateBurst},
		{"ReadTimeout", cfg.ReadTimeout, defaults.ServerReadTimeout},
		{"ReadHeaderTimeout", cfg.ReadHeaderTimeout, defaults.ServerReadHeaderTimeout},
		{"WriteTimeout", cfg.WriteTimeout, defaults.ServerWriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout, defaults.ServerIdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout, defaults.ServerShutdownTimeout},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
		}
	}
}

func TestParseConfig_Environment(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		wantPort     int
		wantShutdown time.Duration
	}{
		{
			name:         "port override",
			env:          map[string]string{envPort: "9090"},
			wantPort:     9090,
			wantShutdown: defaults.ServerShutdownTimeout,
		},
		{
			name:         "malformed port ignored",
			env:          map[string]string{envPort: "80a"},
			wantPort:     defaultPort,
			wantShutdown: defaults.ServerShutdownTimeout,
		},
		{
			name:         "shutdown budget in seconds",
			env:          map[string]string{envShutdownSeconds: "45"},
			wantPort:     defaultPort,
			wantShutdown: 45 * time.Second,
		},
		{
			name:         "zero shutdown budget ignored",
			env:          map[string]string{envShutdownSeconds: "0"},
			wantPort:     defaultPort,
			wantShutdown: defaults.ServerShutdownTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := parseConfig()
			if cfg.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", cfg.Port, tt.wantPort)
			}
			if cfg.ShutdownTimeout != tt.wantShutdown {
				t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, tt.wantShutdown)
			}
		})
	}
}

func TestConfigAddr(t *testing.T) {
	tests := []struct {
		address string
		port    int
		want    string
	}{
		{"", 8080, ":8080"},
		{"127.0.0.1", 9000, "127.0.0.1:9000"},
		{"::1", 9000, "[::1]:9000"},
		{"fe80::1%eth0", 80, "[fe80::1%eth0]:80"},
	}

	for _, tt := range tests {
		cfg := &Config{Address: tt.address, Port: tt.port}
		if got := cfg.addr(); got != tt.want {
			t.Errorf("addr(%q, %d) = %q, want %q", tt.address, tt.port, got, tt.want)
		}
	}
}
