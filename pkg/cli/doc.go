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

// Package cli implements the deviceinfo command line.
//
// # Commands
//
//	deviceinfo snapshot [--output path|cm://ns/name] [--format json|yaml|table]
//	deviceinfo render   --format text/plain|xml|json [--input path|cm://ns/name]
//	deviceinfo formats
//	deviceinfo fields   [--names]
//	deviceinfo request  --plugin /path/to/deviceinfo-plugin [--context-type t] [--setting k=v]
//
// Global flags --log-level and --config apply to every command and can be set
// through DEVICEINFO_LOG_LEVEL and DEVICEINFO_CONFIG.
//
// # Examples
//
// Capture a snapshot into a ConfigMap:
//
//	deviceinfo snapshot --output cm://kube-system/deviceinfo
//
// Render the XML form of a previously captured snapshot:
//
//	deviceinfo render --format xml --input snapshot.yaml
package cli
