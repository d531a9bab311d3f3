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

package defaults

import "time"

// Collection.
const (
	// CollectorTimeout bounds one collection pass. Sources still pending at
	// the deadline degrade to empty values.
	CollectorTimeout = 10 * time.Second

	// SnapshotHandlerTimeout bounds GET /v1/snapshot. It must exceed
	// CollectorTimeout so a degraded snapshot is still returned.
	SnapshotHandlerTimeout = 15 * time.Second
)

// HTTP server.
const (
	ServerReadTimeout       = 10 * time.Second
	ServerReadHeaderTimeout = 5 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerShutdownTimeout   = 30 * time.Second
)

// Kubernetes ConfigMap output (cm:// URIs).
const (
	ConfigMapWriteTimeout = 30 * time.Second
	ConfigMapReadTimeout  = 15 * time.Second
)

// Plugin process boundary.
const (
	// PluginStartTimeout is how long the host waits for the plugin handshake.
	PluginStartTimeout = 10 * time.Second

	// PluginRequestTimeout bounds one context request round trip; it covers a
	// full collection pass inside the plugin.
	PluginRequestTimeout = 30 * time.Second
)
