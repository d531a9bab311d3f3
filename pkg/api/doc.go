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

// Package api wires the device snapshot service into the HTTP server that
// backs deviceinfod.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET /v1/snapshot                 - JSON envelope with the collected snapshot
//   - GET /v1/snapshot?format=<id>     - legacy rendering (text/plain, xml, json)
//   - GET /v1/formats                  - supported rendering identifiers
//
// System endpoints:
//   - GET /health, GET /ready, GET /metrics
//
// # Configuration
//
// DEVICEINFO_CONFIG names an optional YAML file (see pkg/config). PORT and
// SHUTDOWN_TIMEOUT_SECONDS override the file, and LOG_LEVEL sets verbosity.
package api
