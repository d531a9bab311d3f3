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

// Package snapshot defines the device identity snapshot and its renderings.
//
// # Overview
//
// A Snapshot is an immutable, point-in-time record of the facts collected
// about the local device: non-loopback IPv4 and IPv6 addresses, the MAC
// address, and the OS/build identifiers. Snapshots are produced by
// pkg/collector and are never mutated after construction; every accessor
// returns a copy.
//
// Absent data is always the empty string (or an empty address list), never a
// missing field. Callers must treat an empty value as "unknown".
//
// # Field Sequence
//
// For transport across process boundaries a Snapshot flattens to exactly
// eleven strings in a fixed order:
//
//	ipv4, ipv6, mac, osVersion, apiLevel, deviceType,
//	product, brand, manufacturer, serial, board
//
// Address lists are joined with ", ". FromFields reverses Fields.
//
// # Renderings
//
// Render produces one of the fixed textual representations:
//
//	text/plain  192.168.1.5, 10.0.0.2
//	xml         <device>    <ip4>...</ip4>    ...</device>
//	json        ipv4: 192.168.1.5, 10.0.0.2
//
// The json rendering is a legacy single key/value string and is not valid
// JSON. It is kept as-is for existing consumers. Format identifiers match
// case-insensitively; anything else fails with ErrUnsupportedFormat.
//
// Structured JSON/YAML encodings of the whole record (used by the CLI and the
// HTTP API) go through Record, which Snapshot marshals to and from.
package snapshot
