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

// Package collector gathers a device snapshot from an injected platform facts
// provider.
//
// # Overview
//
// The Service queries a Provider for three independent facts: the network
// interface table, the primary MAC address, and the OS/build properties. The
// queries run concurrently and are combined into one immutable
// snapshot.Snapshot.
//
//	svc := collector.New(system.New())
//	snap := svc.Collect(ctx)
//	fmt.Println(snap.IPv4())
//
// # Best-Effort Collection
//
// Collect never fails. When a provider query returns an error, panics, or
// does not finish before the collection timeout, the affected fields are left
// empty. Each degraded source is logged at WARN and counted in the
// deviceinfo_collection_degraded_total metric, labeled by source.
//
// # Address Handling
//
// Interface addresses are reported by the provider as literals that may carry
// a "/prefix" or "%zone" suffix. The prefix is stripped before parsing.
// Loopback and unparseable literals are skipped. Dotted-decimal literals are
// recorded as IPv4; everything else, including IPv4-mapped IPv6, is recorded
// as IPv6 with the zone removed. Recorded text is upper-cased. Provider order
// is preserved and duplicates are kept.
//
// # Providers
//
// pkg/collector/system implements Provider for Linux using net.Interfaces,
// sysfs and the os-release file. Tests inject fakes.
package collector
