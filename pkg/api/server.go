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

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/deviceinfo/pkg/collector"
	"github.com/NVIDIA/deviceinfo/pkg/collector/system"
	"github.com/NVIDIA/deviceinfo/pkg/config"
	"github.com/NVIDIA/deviceinfo/pkg/logging"
	"github.com/NVIDIA/deviceinfo/pkg/server"
)

const (
	name           = "deviceinfod"
	versionDefault = "dev"

	// ConfigEnv names the optional configuration file.
	ConfigEnv = "DEVICEINFO_CONFIG"
)

var (
	// overridden during build with ldflags
	// e.g., -X "github.com/NVIDIA/deviceinfo/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		slog.String("name", name),
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("date", date),
	)

	cfg, err := config.Load(os.Getenv(ConfigEnv))
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		return err
	}

	s := newServer(cfg, system.NewService(cfg.Collector))
	if err := s.Run(context.Background()); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return err
	}

	return nil
}

// routes maps API paths to snapshot handlers.
func routes(svc *collector.Service) map[string]http.HandlerFunc {
	h := collector.NewHandler(svc, version)
	return map[string]http.HandlerFunc{
		"/v1/snapshot": h.HandleSnapshot,
		"/v1/formats":  h.HandleFormats,
	}
}

// serverConfig layers the file's server section under the environment.
func serverConfig(cfg *config.Config) *server.Config {
	sc := server.NewConfig()
	sc.Address = cfg.Server.Address
	if os.Getenv("PORT") == "" {
		sc.Port = cfg.Server.Port
	}
	sc.RateLimit = rate.Limit(cfg.Server.RateLimit)
	sc.RateLimitBurst = cfg.Server.RateLimitBurst
	return sc
}

func newServer(cfg *config.Config, svc *collector.Service) *server.Server {
	return server.New(
		server.WithConfig(serverConfig(cfg)),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(svc)),
	)
}
