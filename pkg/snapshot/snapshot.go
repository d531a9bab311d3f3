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

import (
	"encoding/json"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is the mutable transfer shape of a Snapshot. It is what JSON and
// YAML encodings look like on the wire.
type Record struct {
	IPv4         []string `json:"ipv4" yaml:"ipv4"`
	IPv6         []string `json:"ipv6" yaml:"ipv6"`
	MAC          string   `json:"mac" yaml:"mac"`
	OSVersion    string   `json:"osVersion" yaml:"osVersion"`
	APILevel     string   `json:"apiLevel" yaml:"apiLevel"`
	DeviceType   string   `json:"deviceType" yaml:"deviceType"`
	Product      string   `json:"product" yaml:"product"`
	Brand        string   `json:"brand" yaml:"brand"`
	Manufacturer string   `json:"manufacturer" yaml:"manufacturer"`
	Serial       string   `json:"serial" yaml:"serial"`
	Board        string   `json:"board" yaml:"board"`
}

// Snapshot is an immutable record of device identity and network facts.
// The zero value is a valid empty snapshot.
type Snapshot struct {
	ipv4         []string
	ipv6         []string
	mac          string
	osVersion    string
	apiLevel     string
	deviceType   string
	product      string
	brand        string
	manufacturer string
	serial       string
	board        string
}

// New builds a Snapshot from r. Address slices are copied, so later changes
// to r do not affect the snapshot. Entries are trimmed, entries holding
// several addresses joined by AddressSeparator are split, and empty entries
// are dropped, so every snapshot survives a Fields round trip.
func New(r Record) Snapshot {
	return Snapshot{
		ipv4:         normalizeAddrs(r.IPv4),
		ipv6:         normalizeAddrs(r.IPv6),
		mac:          r.MAC,
		osVersion:    r.OSVersion,
		apiLevel:     r.APILevel,
		deviceType:   r.DeviceType,
		product:      r.Product,
		brand:        r.Brand,
		manufacturer: r.Manufacturer,
		serial:       r.Serial,
		board:        r.Board,
	}
}

// Empty returns a snapshot with every field empty.
func Empty() Snapshot {
	return New(Record{})
}

// Record returns a deep copy of the snapshot in its transfer shape.
func (s Snapshot) Record() Record {
	return Record{
		IPv4:         cloneAddrs(s.ipv4),
		IPv6:         cloneAddrs(s.ipv6),
		MAC:          s.mac,
		OSVersion:    s.osVersion,
		APILevel:     s.apiLevel,
		DeviceType:   s.deviceType,
		Product:      s.product,
		Brand:        s.brand,
		Manufacturer: s.manufacturer,
		Serial:       s.serial,
		Board:        s.board,
	}
}

// IPv4 returns the non-loopback IPv4 addresses in collection order.
func (s Snapshot) IPv4() []string { return cloneAddrs(s.ipv4) }

// IPv6 returns the non-loopback IPv6 addresses, zone suffix stripped, in collection order.
func (s Snapshot) IPv6() []string { return cloneAddrs(s.ipv6) }

// MAC returns the hardware address, lower-case colon notation.
func (s Snapshot) MAC() string { return s.mac }

// OSVersion returns the kernel release.
func (s Snapshot) OSVersion() string { return s.osVersion }

// APILevel returns the OS release version.
func (s Snapshot) APILevel() string { return s.apiLevel }

// DeviceType returns the chassis class, e.g. Desktop or Notebook.
func (s Snapshot) DeviceType() string { return s.deviceType }

// Product returns the product name.
func (s Snapshot) Product() string { return s.product }

// Brand returns the system vendor.
func (s Snapshot) Brand() string { return s.brand }

// Manufacturer returns the board vendor.
func (s Snapshot) Manufacturer() string { return s.manufacturer }

// Serial returns the product serial number.
func (s Snapshot) Serial() string { return s.serial }

// Board returns the board name.
func (s Snapshot) Board() string { return s.board }

// Equal reports whether s and o hold the same values field-for-field.
func (s Snapshot) Equal(o Snapshot) bool {
	return slices.Equal(s.ipv4, o.ipv4) &&
		slices.Equal(s.ipv6, o.ipv6) &&
		s.mac == o.mac &&
		s.osVersion == o.osVersion &&
		s.apiLevel == o.apiLevel &&
		s.deviceType == o.deviceType &&
		s.product == o.product &&
		s.brand == o.brand &&
		s.manufacturer == o.manufacturer &&
		s.serial == o.serial &&
		s.board == o.board
}

// MarshalJSON encodes the snapshot as its Record.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Record())
}

// UnmarshalJSON decodes a Record into the snapshot.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*s = New(r)
	return nil
}

// MarshalYAML encodes the snapshot as its Record.
func (s Snapshot) MarshalYAML() (any, error) {
	return s.Record(), nil
}

// UnmarshalYAML decodes a Record into the snapshot.
func (s *Snapshot) UnmarshalYAML(node *yaml.Node) error {
	var r Record
	if err := node.Decode(&r); err != nil {
		return err
	}
	*s = New(r)
	return nil
}

// cloneAddrs copies an address list, normalizing nil to an empty slice so
// encoders always emit a list.
func cloneAddrs(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func normalizeAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, entry := range in {
		for _, addr := range strings.Split(entry, AddressSeparator) {
			if addr = strings.TrimSpace(addr); addr != "" {
				out = append(out, addr)
			}
		}
	}
	return out
}
