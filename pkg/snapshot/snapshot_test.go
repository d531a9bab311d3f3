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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleRecord() Record {
	return Record{
		IPv4:         []string{"192.168.1.5", "10.0.0.2"},
		IPv6:         []string{"FE80::1"},
		MAC:          "aa:bb:cc:dd:ee:ff",
		OSVersion:    "6.8.0-45-generic",
		APILevel:     "24.04",
		DeviceType:   "Desktop",
		Product:      "OptiPlex 7080",
		Brand:        "Dell Inc.",
		Manufacturer: "Dell Inc.",
		Serial:       "ABC123",
		Board:        "0J37TD",
	}
}

func TestEmpty(t *testing.T) {
	s := Empty()
	assert.NotNil(t, s.IPv4())
	assert.NotNil(t, s.IPv6())
	assert.Empty(t, s.IPv4())
	assert.Empty(t, s.IPv6())
	assert.Equal(t, "", s.MAC())
	assert.True(t, s.Equal(Snapshot{}))
}

func TestNew_CopiesInput(t *testing.T) {
	r := sampleRecord()
	s := New(r)

	r.IPv4[0] = "1.1.1.1"
	r.MAC = "changed"

	assert.Equal(t, "192.168.1.5", s.IPv4()[0])
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", s.MAC())
}

func TestAccessors_ReturnCopies(t *testing.T) {
	s := New(sampleRecord())

	addrs := s.IPv4()
	addrs[0] = "mutated"

	assert.Equal(t, []string{"192.168.1.5", "10.0.0.2"}, s.IPv4())

	rec := s.Record()
	rec.IPv6[0] = "mutated"
	assert.Equal(t, []string{"FE80::1"}, s.IPv6())
}

func TestAccessors(t *testing.T) {
	s := New(sampleRecord())
	assert.Equal(t, "6.8.0-45-generic", s.OSVersion())
	assert.Equal(t, "24.04", s.APILevel())
	assert.Equal(t, "Desktop", s.DeviceType())
	assert.Equal(t, "OptiPlex 7080", s.Product())
	assert.Equal(t, "Dell Inc.", s.Brand())
	assert.Equal(t, "Dell Inc.", s.Manufacturer())
	assert.Equal(t, "ABC123", s.Serial())
	assert.Equal(t, "0J37TD", s.Board())
}

func TestEqual(t *testing.T) {
	a := New(sampleRecord())
	b := New(sampleRecord())
	assert.True(t, a.Equal(b))

	r := sampleRecord()
	r.Board = "other"
	assert.False(t, a.Equal(New(r)))

	r = sampleRecord()
	r.IPv4 = []string{"10.0.0.2", "192.168.1.5"}
	assert.False(t, a.Equal(New(r)), "address order is significant")
}

func TestJSONRoundTrip(t *testing.T) {
	s := New(sampleRecord())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"osVersion":"6.8.0-45-generic"`)

	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, s.Equal(got))
}

func TestJSON_EmptyListsEncodeAsArrays(t *testing.T) {
	data, err := json.Marshal(Empty())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ipv4":[]`)
	assert.Contains(t, string(data), `"ipv6":[]`)
}

func TestYAMLRoundTrip(t *testing.T) {
	s := New(sampleRecord())

	data, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "manufacturer: Dell Inc.")

	var got Snapshot
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.True(t, s.Equal(got))
}

func TestUnmarshalJSON_Invalid(t *testing.T) {
	var s Snapshot
	assert.Error(t, json.Unmarshal([]byte(`{"ipv4": "not-a-list"}`), &s))
}
