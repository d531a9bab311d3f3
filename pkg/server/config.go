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
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
)

const (
	envPort            = "PORT"
	envShutdownSeconds = "SHUTDOWN_TIMEOUT_SECONDS"

	defaultPort      = 8080
	defaultRateLimit = 100
	defaultRateBurst = 200
)

// Config holds server configuration.
type Config struct {
	// Name and Version identify the service on the route index and probes.
	Name    string
	Version string

	// Handlers are served behind the middleware chain, keyed by mux pattern.
	Handlers map[string]http.HandlerFunc

	// Address may be empty (all interfaces), an IPv4 or an IPv6 literal.
	Address string
	Port    int

	RateLimit      rate.Limit // requests per second
	RateLimitBurst int

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns defaults with PORT and SHUTDOWN_TIMEOUT_SECONDS applied.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              defaultPort,
		RateLimit:         defaultRateLimit,
		RateLimitBurst:    defaultRateBurst,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if port, ok := envInt(envPort); ok {
		cfg.Port = port
	}
	// lets the pod's termination grace period drive the drain budget
	if seconds, ok := envInt(envShutdownSeconds); ok && seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return cfg
}

// envInt reads an integer variable. Unset or malformed values report false.
func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("ignoring malformed environment value",
			slog.String("name", name),
			slog.String("value", raw))
		return 0, false
	}
	return v, true
}

// addr returns the listen address, bracketing IPv6 literals.
func (c *Config) addr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}
