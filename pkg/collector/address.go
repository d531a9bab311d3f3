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

package collector

import (
	"net/netip"
	"strings"
)

// classifyAddresses splits the interface addresses into IPv4 and IPv6 text,
// in provider order.
func classifyAddresses(ifaces []Interface) (ipv4, ipv6 []string) {
	ipv4 = []string{}
	ipv6 = []string{}

	for _, iface := range ifaces {
		for _, literal := range iface.Addresses {
			addr, ok := parseAddress(literal)
			if !ok {
				continue
			}
			if addr.Is4() {
				ipv4 = append(ipv4, strings.ToUpper(addr.String()))
				continue
			}
			ipv6 = append(ipv6, strings.ToUpper(addr.WithZone("").String()))
		}
	}

	return ipv4, ipv6
}

// parseAddress parses an address literal, dropping any "/prefix" suffix.
// Loopback and unparseable literals report false.
func parseAddress(literal string) (netip.Addr, bool) {
	literal = strings.TrimSpace(literal)
	if i := strings.IndexByte(literal, '/'); i >= 0 {
		literal = literal[:i]
	}

	addr, err := netip.ParseAddr(literal)
	if err != nil {
		return netip.Addr{}, false
	}
	if addr.IsLoopback() {
		return netip.Addr{}, false
	}
	return addr, true
}
