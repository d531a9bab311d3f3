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

package collector

import (
	"context"
	"net/http"

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
	"github.com/NVIDIA/deviceinfo/pkg/serializer"
	"github.com/NVIDIA/deviceinfo/pkg/server"
	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

// FormatsResponse lists the rendering identifiers.
type FormatsResponse struct {
	Formats []string `json:"formats" yaml:"formats"`
}

// Handler serves snapshots over HTTP.
type Handler struct {
	service *Service
	version string
}

// NewHandler returns a Handler collecting through svc and stamping version on
// structured responses.
func NewHandler(svc *Service, version string) *Handler {
	return &Handler{service: svc, version: version}
}

// HandleSnapshot collects a snapshot per request. Without a format parameter
// it returns the JSON envelope; with one it returns the rendered text.
func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	var format snapshot.Format
	id, rendered := r.URL.Query()["format"]
	if rendered {
		var err error
		if format, err = snapshot.ParseFormat(firstOf(id)); err != nil {
			server.WriteErrorFromErr(w, r, err, "Unsupported format", nil)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.SnapshotHandlerTimeout)
	defer cancel()

	s := h.service.Collect(ctx)
	w.Header().Set("Cache-Control", "no-store")

	if !rendered {
		serializer.RespondJSON(w, http.StatusOK, snapshot.NewDocument(s, h.version))
		return
	}

	text, err := format.Render(s)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to render snapshot", nil)
		return
	}

	serializer.RespondText(w, http.StatusOK, format.ContentType(), text)
}

// HandleFormats lists the supported rendering identifiers.
func (h *Handler) HandleFormats(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	serializer.RespondJSON(w, http.StatusOK, FormatsResponse{Formats: snapshot.SupportedFormats()})
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{http.MethodGet},
		})
	return false
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
