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

// Package server provides the HTTP runtime behind deviceinfod.
//
// The server is route-agnostic: callers register handlers with WithHandler and
// the server wraps each of them in a fixed middleware chain:
//
//   - Prometheus RED metrics
//   - API version negotiation (X-API-Version)
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Request logging
//
// System endpoints are always present and bypass the chain:
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 while starting or draining
//	GET /metrics  Prometheus exposition
//
// A route index is served at "/" unless the caller registers its own.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("deviceinfod"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/snapshot": h.HandleSnapshot,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until SIGINT or SIGTERM, then drains connections for up to
// Config.ShutdownTimeout. When started by systemd with Type=notify the server
// reports READY=1 once listening and STOPPING=1 on shutdown.
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr, which map
// pkg/errors codes to HTTP status and a retryable hint:
//
//	{
//	  "code": "UNSUPPORTED_FORMAT",
//	  "message": "unsupported format",
//	  "details": {"format": "html", "supported": ["text/plain", "xml", "json"]},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-01T00:00:00Z",
//	  "retryable": false
//	}
//
// # Environment
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
package server
