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

package server

import (
	"mime"
	"slices"
	"strings"
)

// DefaultAPIVersion is used when the client does not ask for one.
const DefaultAPIVersion = "v1"

const (
	headerAPIVersion = "X-API-Version"

	// Clients select a version with e.g. application/vnd.nvidia.deviceinfo.v1+json.
	vendorMediaType = "application/vnd.nvidia.deviceinfo."
)

// supportedAPIVersions lists every version the router serves, oldest first.
var supportedAPIVersions = []string{"v1"}

// apiVersionFromAccept returns the first supported version named by a vendor
// media range in accept. Malformed ranges are skipped.
func apiVersionFromAccept(accept string) string {
	for _, rng := range strings.Split(accept, ",") {
		media, _, err := mime.ParseMediaType(rng)
		if err != nil {
			continue
		}
		suffix, ok := strings.CutPrefix(media, vendorMediaType)
		if !ok {
			continue
		}
		if v, _, _ := strings.Cut(suffix, "+"); slices.Contains(supportedAPIVersions, v) {
			return v
		}
	}
	return DefaultAPIVersion
}
