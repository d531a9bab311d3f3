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

// Package header provides the envelope header shared by deviceinfo outputs.
//
// Structured outputs (collected snapshots written by the CLI, the daemon's
// /v1/snapshot response, plugin context events) carry a Kubernetes-style
// header so consumers can tell what they are reading:
//
//	kind: DeviceSnapshot
//	apiVersion: deviceinfo.nvidia.com/v1
//	metadata:
//	  timestamp: 2025-01-15T10:30:00Z
//	  version: v1.0.0
//	  source-node: node-1
//
// Embed Header in a document and call Init when producing it; call Check on
// documents read back from files or ConfigMaps.
package header
