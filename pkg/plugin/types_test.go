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

package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrivacyRisk(t *testing.T) {
	tests := []struct {
		in      string
		want    PrivacyRisk
		wantErr bool
	}{
		{"NONE", PrivacyNone, false},
		{"low", PrivacyLow, false},
		{" Medium ", PrivacyMedium, false},
		{"HIGH", PrivacyHigh, false},
		{"max", PrivacyMax, false},
		{"", PrivacyNone, true},
		{"critical", PrivacyNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrivacyRisk(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrivacyRisk_Text(t *testing.T) {
	for p := PrivacyNone; p <= PrivacyMax; p++ {
		text, err := p.MarshalText()
		require.NoError(t, err)

		var back PrivacyRisk
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, p, back)
	}

	_, err := PrivacyRisk(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "PrivacyRisk(42)", PrivacyRisk(42).String())

	var p PrivacyRisk
	assert.Error(t, p.UnmarshalText([]byte("nope")))
}

func TestDefaultPrivacyRisk(t *testing.T) {
	assert.Equal(t, PrivacyLow, DefaultPrivacyRisk)
	assert.Equal(t, "LOW", DefaultPrivacyRisk.String())
}

func TestPowerScheme_String(t *testing.T) {
	assert.Equal(t, "BALANCED", PowerBalanced.String())
	assert.Equal(t, "POWER_SAVER", PowerSaver.String())
	assert.Equal(t, "HIGH_PERFORMANCE", PowerHighPerformance.String())
	assert.Equal(t, "PowerScheme(7)", PowerScheme(7).String())
}
