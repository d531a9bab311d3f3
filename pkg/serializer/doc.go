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

// Package serializer writes and reads structured documents such as device
// snapshot envelopes.
//
// # Formats
//
//	json   indented JSON (encoding/json)
//	yaml   YAML (gopkg.in/yaml.v3)
//	table  FIELD/VALUE listing of the flattened JSON form, write-only
//
// These are structured encodings of whole documents. The legacy device
// renderings (text/plain, xml, json string) live in pkg/snapshot.
//
// # Destinations
//
// NewFileWriter picks the destination from a path:
//
//	""                  stdout
//	"-"                 stdout
//	"cm://ns/name"      Kubernetes ConfigMap, applied server-side
//	anything else       local file
//
//	w, err := serializer.NewFileWriter(serializer.FormatYAML, "cm://default/device")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	err := w.Serialize(ctx, doc)
//
// ConfigMaps hold the document under data["snapshot.<ext>"] along with
// data["format"] and data["timestamp"].
//
// # Reading
//
// FromFile loads a document from a local file (format by extension) or a
// ConfigMap URI:
//
//	doc, err := serializer.FromFile[snapshot.Document]("device.yaml")
//
// # HTTP
//
// RespondJSON buffers the encoding before writing headers so a failed
// encode never produces a partial 200 response.
package serializer
