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

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	apiVersionKey
)

// RequestIDFrom returns the request ID assigned by the middleware chain, or
// "" outside it.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// APIVersionFrom returns the negotiated API version, or DefaultAPIVersion
// outside the middleware chain.
func APIVersionFrom(ctx context.Context) string {
	if v, ok := ctx.Value(apiVersionKey).(string); ok && v != "" {
		return v
	}
	return DefaultAPIVersion
}
