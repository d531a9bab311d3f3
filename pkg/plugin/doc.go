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

// Package plugin hosts the device snapshot service as a context plugin.
//
// # Runtime
//
// Runtime implements the plugin lifecycle a context host drives:
//
//	rt := plugin.NewRuntime(collector.New(system.New()))
//	_ = rt.Init(ctx, plugin.PowerBalanced, nil)
//	_ = rt.Start(ctx)
//	ev, err := rt.HandleContextRequest(ctx, uuid.New(), plugin.ContextType)
//	_ = rt.Destroy(ctx)
//
// Requests are answered only while the runtime is started. Each answer is a
// ContextEvent carrying a freshly collected snapshot and the privacy risk tag,
// LOW unless configured otherwise. Settings and power scheme are stored but
// never change what is collected.
//
// # Transport
//
// Serve exposes a Runtime over hashicorp/go-plugin (net/rpc protocol) from a
// plugin binary; NewClient launches such a binary from the host side. The wire
// carries the flat eleven-field sequence of the snapshot, rebuilt with
// snapshot.FromFields on the host. Structured error codes survive the trip.
//
// go-plugin logs are routed into log/slog through NewHCLogAdapter.
package plugin
