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
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

// SettingPrivacyRisk overrides the privacy risk tag through UpdateSettings.
const SettingPrivacyRisk = "privacyRisk"

// Settings are opaque host-provided key/value pairs.
type Settings map[string]string

// Collector produces device snapshots. *collector.Service satisfies it.
type Collector interface {
	Collect(ctx context.Context) snapshot.Snapshot
}

type state int

const (
	stateCreated state = iota
	stateInitialized
	stateStarted
	stateStopped
	stateDestroyed
)

func (s state) String() string {
	switch s {
	case stateCreated:
		return "created"
	case stateInitialized:
		return "initialized"
	case stateStarted:
		return "started"
	case stateStopped:
		return "stopped"
	case stateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithPrivacyRisk sets the tag attached to events.
func WithPrivacyRisk(p PrivacyRisk) RuntimeOption {
	return func(r *Runtime) {
		r.privacy = p
	}
}

// WithVersion sets the version stamped on event headers.
func WithVersion(v string) RuntimeOption {
	return func(r *Runtime) {
		r.version = v
	}
}

// Runtime drives the plugin lifecycle around a Collector.
// It is safe for concurrent use.
type Runtime struct {
	collector Collector
	version   string

	mu       sync.RWMutex
	state    state
	privacy  PrivacyRisk
	power    PowerScheme
	settings Settings
}

// NewRuntime returns a Runtime in the created state.
func NewRuntime(c Collector, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		collector: c,
		privacy:   DefaultPrivacyRisk,
		settings:  Settings{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init prepares the runtime. It may be called once, before Start.
func (r *Runtime) Init(_ context.Context, power PowerScheme, settings Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateDestroyed {
		return errDestroyed()
	}
	if r.state != stateCreated {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"runtime already initialized", map[string]any{"state": r.state.String()})
	}

	if err := r.applySettings(settings); err != nil {
		return err
	}
	r.power = power
	r.state = stateInitialized

	slog.Info("plugin initialized",
		slog.String("power_scheme", power.String()),
		slog.String("privacy_risk", r.privacy.String()))
	return nil
}

// Start enables context requests. Starting a started runtime is a no-op.
func (r *Runtime) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case stateStarted:
		return nil
	case stateInitialized, stateStopped:
		r.state = stateStarted
		slog.Info("plugin started")
		return nil
	case stateDestroyed:
		return errDestroyed()
	default:
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "runtime not initialized")
	}
}

// Stop disables context requests until the next Start.
func (r *Runtime) Stop(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case stateStarted:
		r.state = stateStopped
		slog.Info("plugin stopped")
		return nil
	case stateDestroyed:
		return errDestroyed()
	default:
		return nil
	}
}

// Destroy releases the runtime permanently. Repeated calls are no-ops.
func (r *Runtime) Destroy(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateDestroyed {
		r.state = stateDestroyed
		slog.Info("plugin destroyed")
	}
	return nil
}

// UpdateSettings replaces the stored settings. Only SettingPrivacyRisk has an
// effect; collection ignores settings.
func (r *Runtime) UpdateSettings(settings Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateDestroyed {
		return errDestroyed()
	}
	return r.applySettings(settings)
}

// SetPowerScheme records the host's power hint.
func (r *Runtime) SetPowerScheme(power PowerScheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateDestroyed {
		return errDestroyed()
	}
	r.power = power
	slog.Debug("power scheme updated", slog.String("power_scheme", power.String()))
	return nil
}

// DoManualScan is a no-op: snapshots are collected per request.
func (r *Runtime) DoManualScan(_ context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.state == stateDestroyed {
		return errDestroyed()
	}
	slog.Debug("manual scan ignored, device info is collected on request")
	return nil
}

// Settings returns a copy of the stored settings.
func (r *Runtime) Settings() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.settings)
}

// PowerScheme returns the last power hint.
func (r *Runtime) PowerScheme() PowerScheme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.power
}

// PrivacyRisk returns the tag attached to events.
func (r *Runtime) PrivacyRisk() PrivacyRisk {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.privacy
}

// HandleContextRequest collects a snapshot and wraps it in a ContextEvent.
func (r *Runtime) HandleContextRequest(ctx context.Context, requestID uuid.UUID, contextType string) (*ContextEvent, error) {
	return r.handle(ctx, requestID, contextType, nil)
}

// HandleConfiguredContextRequest is HandleContextRequest with a per-request
// configuration. The device context takes no configuration, so config is
// ignored.
func (r *Runtime) HandleConfiguredContextRequest(ctx context.Context, requestID uuid.UUID, contextType string, config Settings) (*ContextEvent, error) {
	return r.handle(ctx, requestID, contextType, config)
}

func (r *Runtime) handle(ctx context.Context, requestID uuid.UUID, contextType string, config Settings) (*ContextEvent, error) {
	r.mu.RLock()
	st, risk := r.state, r.privacy
	r.mu.RUnlock()

	if st != stateStarted {
		requestsTotal.WithLabelValues(resultRejected).Inc()
		return nil, apperrors.NewWithContext(apperrors.ErrCodeUnavailable,
			"plugin is not started", map[string]any{"state": st.String()})
	}
	if requestID == uuid.Nil {
		requestsTotal.WithLabelValues(resultRejected).Inc()
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "request id is required")
	}
	if contextType != ContextType {
		requestsTotal.WithLabelValues(resultRejected).Inc()
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"unsupported context type", map[string]any{
				"contextType": contextType,
				"supported":   ContextType,
			})
	}
	if len(config) > 0 {
		slog.Debug("ignoring context request configuration", slog.Int("keys", len(config)))
	}

	s := r.collector.Collect(ctx)
	requestsTotal.WithLabelValues(resultHandled).Inc()

	slog.Debug("handled context request",
		slog.String("request_id", requestID.String()),
		slog.String("privacy_risk", risk.String()))

	return newContextEvent(requestID, contextType, risk, s, r.version), nil
}

// applySettings must be called with mu held.
func (r *Runtime) applySettings(settings Settings) error {
	if v, ok := settings[SettingPrivacyRisk]; ok {
		p, err := ParsePrivacyRisk(v)
		if err != nil {
			return err
		}
		r.privacy = p
	}
	r.settings = maps.Clone(settings)
	if r.settings == nil {
		r.settings = Settings{}
	}
	return nil
}

func errDestroyed() error {
	return apperrors.New(apperrors.ErrCodeUnavailable, "plugin is destroyed")
}
