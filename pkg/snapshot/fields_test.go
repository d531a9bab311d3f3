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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
)

func TestFields_Order(t *testing.T) {
	s := New(sampleRecord())
	got := s.Fields()

	want := []string{
		"192.168.1.5, 10.0.0.2",
		"FE80::1",
		"aa:bb:cc:dd:ee:ff",
		"6.8.0-45-generic",
		"24.04",
		"Desktop",
		"OptiPlex 7080",
		"Dell Inc.",
		"Dell Inc.",
		"ABC123",
		"0J37TD",
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, FieldCount)
	assert.Len(t, FieldNames, FieldCount)
}

func TestFields_Empty(t *testing.T) {
	got := Empty().Fields()
	require.Len(t, got, FieldCount)
	for i, v := range got {
		assert.Equal(t, "", v, "field %s", FieldNames[i])
	}
}

func TestFromFields_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{"full", sampleRecord()},
		{"empty", Record{}},
		{"single address", Record{IPv4: []string{"10.1.2.3"}, MAC: "00:11:22:33:44:55"}},
		{"ipv6 only", Record{IPv6: []string{"2001:DB8::1", "FE80::2"}}},
		{"empty entry", Record{IPv4: []string{""}}},
		{"joined entry", Record{IPv4: []string{"10.0.0.1, 10.0.0.2"}}},
		{"padded entry", Record{IPv6: []string{" FE80::1 ", "2001:DB8::1, "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.rec)
			got, err := FromFields(s.Fields())
			require.NoError(t, err)
			assert.True(t, s.Equal(got), "got %+v", got.Record())
		})
	}
}

func TestNew_NormalizesAddressEntries(t *testing.T) {
	s := New(Record{
		IPv4: []string{"", "10.0.0.1, 10.0.0.2", " 10.0.0.3 "},
		IPv6: []string{", "},
	})
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}, s.IPv4())
	assert.Equal(t, []string{}, s.IPv6())
}

func TestFromFields_WrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 10, 12} {
		_, err := FromFields(make([]string, n))
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
		assert.False(t, errors.Is(err, ErrUnsupportedFormat))
	}
}
