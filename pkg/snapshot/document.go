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

package snapshot

import "github.com/NVIDIA/deviceinfo/pkg/header"

// Document wraps a Snapshot in the versioned envelope used for structured
// output (CLI files, ConfigMaps, HTTP responses).
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	// Device is the collected snapshot.
	Device Snapshot `json:"device" yaml:"device"`
}

// NewDocument wraps s in a DeviceSnapshot envelope stamped with version,
// timestamp and source node.
func NewDocument(s Snapshot, version string) *Document {
	d := &Document{Device: s}
	d.Init(header.KindDeviceSnapshot, version)
	return d
}
