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
	"fmt"
	"strings"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
)

// PrivacyRisk is the opaque sensitivity tag attached to context events.
type PrivacyRisk int

const (
	PrivacyNone PrivacyRisk = iota
	PrivacyLow
	PrivacyMedium
	PrivacyHigh
	PrivacyMax
)

// DefaultPrivacyRisk tags device information events.
const DefaultPrivacyRisk = PrivacyLow

var privacyNames = []string{"NONE", "LOW", "MEDIUM", "HIGH", "MAX"}

func (p PrivacyRisk) String() string {
	if p < PrivacyNone || p > PrivacyMax {
		return fmt.Sprintf("PrivacyRisk(%d)", int(p))
	}
	return privacyNames[p]
}

// ParsePrivacyRisk resolves a tag name, ignoring case.
func ParsePrivacyRisk(s string) (PrivacyRisk, error) {
	for i, name := range privacyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return PrivacyRisk(i), nil
		}
	}
	return PrivacyNone, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
		"unknown privacy risk: "+s, map[string]any{"valid": privacyNames})
}

// MarshalText encodes the tag name.
func (p PrivacyRisk) MarshalText() ([]byte, error) {
	if p < PrivacyNone || p > PrivacyMax {
		return nil, fmt.Errorf("invalid privacy risk %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a tag name.
func (p *PrivacyRisk) UnmarshalText(text []byte) error {
	v, err := ParsePrivacyRisk(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// PowerScheme is the host's power management hint.
type PowerScheme int

const (
	PowerBalanced PowerScheme = iota
	PowerSaver
	PowerHighPerformance
)

func (s PowerScheme) String() string {
	switch s {
	case PowerBalanced:
		return "BALANCED"
	case PowerSaver:
		return "POWER_SAVER"
	case PowerHighPerformance:
		return "HIGH_PERFORMANCE"
	default:
		return fmt.Sprintf("PowerScheme(%d)", int(s))
	}
}
