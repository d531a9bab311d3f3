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

package header

import (
	"os"
	"time"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
)

// APIVersion is the schema version stamped on every deviceinfo envelope.
const APIVersion = "deviceinfo.nvidia.com/v1"

// Metadata keys written by Init.
const (
	MetadataTimestamp  = "timestamp"
	MetadataVersion    = "version"
	MetadataSourceNode = "source-node"
)

// Kind names the document carried by an envelope.
type Kind string

const (
	KindDeviceSnapshot Kind = "DeviceSnapshot"
	KindContextEvent   Kind = "ContextEvent"
)

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a kind this module produces.
func (k Kind) IsValid() bool {
	return k == KindDeviceSnapshot || k == KindContextEvent
}

// Header is the envelope shared by every structured deviceinfo document.
type Header struct {
	Kind       Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata records when, where and by which build the document was produced.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func (h *Header) GetKind() Kind {
	return h.Kind
}

func (h *Header) GetMetadata() map[string]string {
	return h.Metadata
}

// Init resets h to kind and stamps timestamp, version and source node.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
	if node := NodeName(); node != "" {
		h.Metadata[MetadataSourceNode] = node
	}
}

// Check rejects envelopes read back from storage that this build cannot
// interpret: unknown kinds or a different APIVersion.
func (h *Header) Check() error {
	if !h.Kind.IsValid() {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"unknown document kind", map[string]any{"kind": h.Kind.String()})
	}
	if h.APIVersion != APIVersion {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"unsupported document apiVersion", map[string]any{
				"apiVersion": h.APIVersion,
				"supported":  APIVersion,
			})
	}
	return nil
}

// NodeName returns the name of the node this process runs on: NODE_NAME
// (Downward API), then KUBERNETES_NODE_NAME, then the hostname.
func NodeName() string {
	for _, env := range []string{"NODE_NAME", "KUBERNETES_NODE_NAME"} {
		if name := os.Getenv(env); name != "" {
			return name
		}
	}
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}
