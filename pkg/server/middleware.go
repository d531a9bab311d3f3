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
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
)

const headerRequestID = "X-Request-Id"

type middleware func(http.HandlerFunc) http.HandlerFunc

// chain wraps h so that mws[0] runs first.
func chain(h http.HandlerFunc, mws ...middleware) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// withMiddleware wraps an API handler in the standard chain. Panics are
// recovered before the limiter so a failed request still counts against it.
func (s *Server) withMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return chain(h,
		s.observe,
		negotiateVersion,
		assignRequestID,
		s.recoverPanics,
		s.limitRate,
		s.accessLog,
	)
}

// negotiateVersion stores the API version from the Accept header in the
// request context and echoes it in X-API-Version.
func negotiateVersion(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := apiVersionFromAccept(r.Header.Get("Accept"))
		w.Header().Set(headerAPIVersion, version)
		next(w, r.WithContext(context.WithValue(r.Context(), apiVersionKey, version)))
	}
}

// assignRequestID keeps a caller supplied UUID and replaces anything else.
func assignRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	}
}

// limitRate advertises the limit and burst of the limiter in force.
func (s *Server) limitRate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		limit := float64(s.rateLimiter.Limit())
		if !s.rateLimiter.Allow() {
			rateLimitRejects.Inc()
			h.Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, apperrors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": limit,
					"burst": s.rateLimiter.Burst(),
				})
			return
		}

		h.Set("X-RateLimit-Limit", strconv.FormatFloat(limit, 'f', -1, 64))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, int(s.rateLimiter.Tokens()))))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))
		next(w, r)
	}
}

func (s *Server) recoverPanics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			panicRecoveries.Inc()
			slog.Error("handler panic",
				slog.Any("panic", v),
				slog.String("request_id", RequestIDFrom(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
			WriteError(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternal,
				"Internal server error", true, nil)
		}()
		next(w, r)
	}
}

// accessLog writes one record per request: debug for success, warn for
// server errors, info otherwise.
func (s *Server) accessLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next(rw, r)

		level := slog.LevelDebug
		switch status := rw.Status(); {
		case status >= http.StatusInternalServerError:
			level = slog.LevelWarn
		case status >= http.StatusBadRequest:
			level = slog.LevelInfo
		}

		slog.Log(r.Context(), level, "request",
			slog.String("request_id", RequestIDFrom(r.Context())),
			slog.String("api_version", APIVersionFrom(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.Int("status", rw.Status()),
			slog.Int64("bytes", rw.Written()),
			slog.Duration("duration", time.Since(start)))
	}
}
