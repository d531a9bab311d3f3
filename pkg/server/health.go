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
	"net/http"
	"time"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
	"github.com/NVIDIA/deviceinfo/pkg/serializer"
)

// handleHealth reports liveness. It answers 200 in every phase.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowProbe(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.health("healthy", ""))
}

// handleReady answers 200 only while serving; 503 while starting or draining.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.allowProbe(w, r) {
		return
	}

	if p := s.currentPhase(); p != phaseServing {
		w.Header().Set("Retry-After", "1")
		serializer.RespondJSON(w, http.StatusServiceUnavailable, s.health("not_ready", p.String()))
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.health("ready", ""))
}

func (s *Server) allowProbe(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}

func (s *Server) health(status, reason string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	}
}
