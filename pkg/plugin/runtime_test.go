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
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
	"github.com/NVIDIA/deviceinfo/pkg/header"
	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

type stubCollector struct {
	snap  snapshot.Snapshot
	calls atomic.Int32
}

func (s *stubCollector) Collect(context.Context) snapshot.Snapshot {
	s.calls.Add(1)
	return s.snap
}

func newStub() *stubCollector {
	return &stubCollector{snap: snapshot.New(snapshot.Record{
		IPv4:  []string{"192.168.1.5"},
		IPv6:  []string{"FE80::1"},
		MAC:   "aa:bb:cc:dd:ee:ff",
		Brand: "Dell Inc.",
	})}
}

func startedRuntime(t *testing.T, c Collector, opts ...RuntimeOption) *Runtime {
	t.Helper()
	rt := NewRuntime(c, opts...)
	require.NoError(t, rt.Init(context.Background(), PowerBalanced, nil))
	require.NoError(t, rt.Start(context.Background()))
	return rt
}

func TestRuntime_Lifecycle(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	rt := NewRuntime(stub)

	_, err := rt.HandleContextRequest(ctx, uuid.New(), ContextType)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err), "before init")

	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(rt.Start(ctx)), "start before init")

	require.NoError(t, rt.Init(ctx, PowerSaver, Settings{"k": "v"}))
	assert.Error(t, rt.Init(ctx, PowerSaver, nil), "second init")

	_, err = rt.HandleContextRequest(ctx, uuid.New(), ContextType)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err), "before start")

	require.NoError(t, rt.Start(ctx))
	require.NoError(t, rt.Start(ctx), "start is idempotent")

	ev, err := rt.HandleContextRequest(ctx, uuid.New(), ContextType)
	require.NoError(t, err)
	assert.True(t, stub.snap.Equal(ev.Device))

	require.NoError(t, rt.Stop(ctx))
	_, err = rt.HandleContextRequest(ctx, uuid.New(), ContextType)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err), "after stop")

	require.NoError(t, rt.Start(ctx), "restart after stop")
	_, err = rt.HandleContextRequest(ctx, uuid.New(), ContextType)
	require.NoError(t, err)

	require.NoError(t, rt.Destroy(ctx))
	require.NoError(t, rt.Destroy(ctx), "destroy is idempotent")

	_, err = rt.HandleContextRequest(ctx, uuid.New(), ContextType)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err), "after destroy")
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(rt.Start(ctx)))
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(rt.Stop(ctx)))
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(rt.Init(ctx, PowerBalanced, nil)))
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(rt.UpdateSettings(nil)))
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(rt.SetPowerScheme(PowerSaver)))
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(rt.DoManualScan(ctx)))

	assert.Equal(t, int32(2), stub.calls.Load())
}

func TestRuntime_StopBeforeStart(t *testing.T) {
	rt := NewRuntime(newStub())
	assert.NoError(t, rt.Stop(context.Background()))
}

func TestRuntime_HandleContextRequest(t *testing.T) {
	t.Setenv("NODE_NAME", "edge-1")
	rt := startedRuntime(t, newStub(), WithVersion("v9"))

	id := uuid.New()
	ev, err := rt.HandleContextRequest(context.Background(), id, ContextType)
	require.NoError(t, err)

	assert.Equal(t, id, ev.RequestID)
	assert.Equal(t, ContextType, ev.ContextType)
	assert.Equal(t, PrivacyLow, ev.PrivacyRisk)
	assert.Equal(t, header.KindContextEvent, ev.Kind)
	assert.Equal(t, "v9", ev.Metadata[header.MetadataVersion])
	assert.Equal(t, "edge-1", ev.Metadata[header.MetadataSourceNode])

	got, err := snapshot.Render(ev.Device, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.5", got)
}

func TestRuntime_HandleContextRequest_Rejects(t *testing.T) {
	rt := startedRuntime(t, newStub())

	_, err := rt.HandleContextRequest(context.Background(), uuid.Nil, ContextType)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))

	_, err = rt.HandleContextRequest(context.Background(), uuid.New(), "org.example.location")
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestRuntime_ConfiguredRequestIgnoresConfig(t *testing.T) {
	stub := newStub()
	rt := startedRuntime(t, stub)

	plain, err := rt.HandleContextRequest(context.Background(), uuid.New(), ContextType)
	require.NoError(t, err)

	configured, err := rt.HandleConfiguredContextRequest(context.Background(), uuid.New(), ContextType,
		Settings{"interval": "5s", "fields": "mac"})
	require.NoError(t, err)

	assert.True(t, plain.Device.Equal(configured.Device))
}

func TestRuntime_Settings(t *testing.T) {
	ctx := context.Background()
	rt := NewRuntime(newStub())
	require.NoError(t, rt.Init(ctx, PowerBalanced, Settings{SettingPrivacyRisk: "high"}))
	assert.Equal(t, PrivacyHigh, rt.PrivacyRisk())

	in := Settings{"a": "1"}
	require.NoError(t, rt.UpdateSettings(in))
	in["a"] = "mutated"
	assert.Equal(t, Settings{"a": "1"}, rt.Settings())
	assert.Equal(t, PrivacyHigh, rt.PrivacyRisk(), "unset key keeps tag")

	err := rt.UpdateSettings(Settings{SettingPrivacyRisk: "extreme"})
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))

	require.NoError(t, rt.UpdateSettings(nil))
	assert.NotNil(t, rt.Settings())

	require.NoError(t, rt.SetPowerScheme(PowerHighPerformance))
	assert.Equal(t, PowerHighPerformance, rt.PowerScheme())

	assert.NoError(t, rt.DoManualScan(ctx))
}

func TestRuntime_WithPrivacyRisk(t *testing.T) {
	rt := startedRuntime(t, newStub(), WithPrivacyRisk(PrivacyMax))
	ev, err := rt.HandleContextRequest(context.Background(), uuid.New(), ContextType)
	require.NoError(t, err)
	assert.Equal(t, PrivacyMax, ev.PrivacyRisk)
}

func TestContextEvent_JSON(t *testing.T) {
	rt := startedRuntime(t, newStub())
	ev, err := rt.HandleContextRequest(context.Background(), uuid.MustParse("6f1c1b1e-3c1a-4f64-8a57-0c6b9b1d2e3f"), ContextType)
	require.NoError(t, err)

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "ContextEvent", raw["kind"])
	assert.Equal(t, "6f1c1b1e-3c1a-4f64-8a57-0c6b9b1d2e3f", raw["requestId"])
	assert.Equal(t, "LOW", raw["privacyRisk"])
	assert.Equal(t, ContextType, raw["contextType"])

	var back ContextEvent
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ev.RequestID, back.RequestID)
	assert.Equal(t, ev.PrivacyRisk, back.PrivacyRisk)
	assert.True(t, ev.Device.Equal(back.Device))
}
