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
	"strings"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
)

// FieldCount is the length of the flat field sequence.
const FieldCount = 11

// AddressSeparator joins address lists in the flat field sequence and in
// text renderings.
const AddressSeparator = ", "

// FieldNames lists the flat field sequence order. The XML rendering uses the
// same order with ip4/ip6 element names.
var FieldNames = [FieldCount]string{
	"ipv4",
	"ipv6",
	"mac",
	"osVersion",
	"apiLevel",
	"deviceType",
	"product",
	"brand",
	"manufacturer",
	"serial",
	"board",
}

// Fields flattens the snapshot into the fixed-order field sequence used at
// process boundaries.
func (s Snapshot) Fields() []string {
	return []string{
		joinAddrs(s.ipv4),
		joinAddrs(s.ipv6),
		s.mac,
		s.osVersion,
		s.apiLevel,
		s.deviceType,
		s.product,
		s.brand,
		s.manufacturer,
		s.serial,
		s.board,
	}
}

// FromFields rebuilds a snapshot from a sequence produced by Fields.
// The sequence must hold exactly FieldCount entries.
func FromFields(fields []string) (Snapshot, error) {
	if len(fields) != FieldCount {
		return Snapshot{}, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"field sequence has wrong length", map[string]any{
				"got":  len(fields),
				"want": FieldCount,
			})
	}

	return Snapshot{
		ipv4:         splitAddrs(fields[0]),
		ipv6:         splitAddrs(fields[1]),
		mac:          fields[2],
		osVersion:    fields[3],
		apiLevel:     fields[4],
		deviceType:   fields[5],
		product:      fields[6],
		brand:        fields[7],
		manufacturer: fields[8],
		serial:       fields[9],
		board:        fields[10],
	}, nil
}

func joinAddrs(addrs []string) string {
	return strings.Join(addrs, AddressSeparator)
}

func splitAddrs(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, AddressSeparator)
}
