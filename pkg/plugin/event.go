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
	"github.com/google/uuid"

	"github.com/NVIDIA/deviceinfo/pkg/header"
	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

// ContextType identifies the device information context.
const ContextType = "org.ambientdynamix.contextplugins.context.info.device.information"

// ContextEvent answers a context request.
type ContextEvent struct {
	header.Header `json:",inline" yaml:",inline"`

	RequestID   uuid.UUID         `json:"requestId" yaml:"requestId"`
	ContextType string            `json:"contextType" yaml:"contextType"`
	PrivacyRisk PrivacyRisk       `json:"privacyRisk" yaml:"privacyRisk"`
	Device      snapshot.Snapshot `json:"device" yaml:"device"`
}

func newContextEvent(id uuid.UUID, contextType string, risk PrivacyRisk, s snapshot.Snapshot, version string) *ContextEvent {
	ev := &ContextEvent{
		RequestID:   id,
		ContextType: contextType,
		PrivacyRisk: risk,
		Device:      s,
	}
	ev.Init(header.KindContextEvent, version)
	return ev
}
