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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

type fakeProvider struct {
	ifaces    []Interface
	ifacesErr error
	mac       string
	macErr    error
	props     BuildProperties
	propsErr  error
	block     bool
	panicMAC  bool
}

func (f *fakeProvider) Interfaces(ctx context.Context) ([]Interface, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.ifaces, f.ifacesErr
}

func (f *fakeProvider) MACAddress(_ context.Context) (string, error) {
	if f.panicMAC {
		panic("no hardware")
	}
	return f.mac, f.macErr
}

func (f *fakeProvider) BuildProperties(_ context.Context) (BuildProperties, error) {
	return f.props, f.propsErr
}

func fullProvider() *fakeProvider {
	return &fakeProvider{
		ifaces: []Interface{
			{Name: "lo", Addresses: []string{"127.0.0.1/8", "::1/128"}},
			{Name: "eth0", Addresses: []string{"192.168.1.5/24", "fe80::1%eth0"}},
			{Name: "wlan0", Addresses: []string{"10.0.0.2"}},
		},
		mac: "aa:bb:cc:dd:ee:ff",
		props: BuildProperties{
			OSVersion:    "6.8.0",
			APILevel:     "24.04",
			DeviceType:   "Laptop",
			Product:      "XPS 13",
			Brand:        "Dell Inc.",
			Manufacturer: "Dell Inc.",
			Serial:       "SN1",
			Board:        "0ABC",
		},
	}
}

func TestCollect_Full(t *testing.T) {
	svc := New(fullProvider())
	s := svc.Collect(context.Background())

	assert.Equal(t, []string{"192.168.1.5", "10.0.0.2"}, s.IPv4())
	assert.Equal(t, []string{"FE80::1"}, s.IPv6())
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", s.MAC())
	assert.Equal(t, "6.8.0", s.OSVersion())
	assert.Equal(t, "24.04", s.APILevel())
	assert.Equal(t, "Laptop", s.DeviceType())
	assert.Equal(t, "XPS 13", s.Product())
	assert.Equal(t, "Dell Inc.", s.Brand())
	assert.Equal(t, "Dell Inc.", s.Manufacturer())
	assert.Equal(t, "SN1", s.Serial())
	assert.Equal(t, "0ABC", s.Board())

	got, err := snapshot.Render(s, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.5, 10.0.0.2", got)
}

func TestCollect_OnlyLoopback(t *testing.T) {
	p := &fakeProvider{ifaces: []Interface{{Name: "lo", Addresses: []string{"127.0.0.1", "::1"}}}}
	s := New(p).Collect(context.Background())

	assert.Empty(t, s.IPv4())
	assert.Empty(t, s.IPv6())

	got, err := snapshot.Render(s, "json")
	require.NoError(t, err)
	assert.Equal(t, "ipv4: ", got)
}

func TestCollect_SingleAddress(t *testing.T) {
	p := &fakeProvider{ifaces: []Interface{{Name: "eth0", Addresses: []string{"192.168.1.5"}}}}
	s := New(p).Collect(context.Background())

	got, err := snapshot.Render(s, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.5", got)
}

func TestCollect_Degraded(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fakeProvider)
		source string
		check  func(*testing.T, snapshot.Snapshot)
	}{
		{
			name:   "interfaces error",
			mutate: func(p *fakeProvider) { p.ifacesErr = errors.New("permission denied") },
			source: SourceInterfaces,
			check: func(t *testing.T, s snapshot.Snapshot) {
				assert.Empty(t, s.IPv4())
				assert.Empty(t, s.IPv6())
				assert.Equal(t, "aa:bb:cc:dd:ee:ff", s.MAC())
				assert.Equal(t, "6.8.0", s.OSVersion())
			},
		},
		{
			name:   "mac error",
			mutate: func(p *fakeProvider) { p.macErr = errors.New("no such device") },
			source: SourceMAC,
			check: func(t *testing.T, s snapshot.Snapshot) {
				assert.Equal(t, "", s.MAC())
				assert.Equal(t, []string{"192.168.1.5", "10.0.0.2"}, s.IPv4())
			},
		},
		{
			name:   "mac panic",
			mutate: func(p *fakeProvider) { p.panicMAC = true },
			source: SourceMAC,
			check: func(t *testing.T, s snapshot.Snapshot) {
				assert.Equal(t, "", s.MAC())
				assert.Equal(t, "XPS 13", s.Product())
			},
		},
		{
			name:   "build error",
			mutate: func(p *fakeProvider) { p.propsErr = errors.New("read failed") },
			source: SourceBuild,
			check: func(t *testing.T, s snapshot.Snapshot) {
				assert.Equal(t, "", s.OSVersion())
				assert.Equal(t, "", s.Board())
				assert.Equal(t, "aa:bb:cc:dd:ee:ff", s.MAC())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fullProvider()
			tt.mutate(p)

			before := testutil.ToFloat64(collectionDegraded.WithLabelValues(tt.source))
			degradedBefore := testutil.ToFloat64(collectionTotal.WithLabelValues(statusDegraded))

			s := New(p).Collect(context.Background())
			tt.check(t, s)

			assert.Equal(t, before+1, testutil.ToFloat64(collectionDegraded.WithLabelValues(tt.source)))
			assert.Equal(t, degradedBefore+1, testutil.ToFloat64(collectionTotal.WithLabelValues(statusDegraded)))
		})
	}
}

func TestCollect_Timeout(t *testing.T) {
	p := fullProvider()
	p.block = true

	start := time.Now()
	s := New(p, WithTimeout(50*time.Millisecond)).Collect(context.Background())

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Empty(t, s.IPv4())
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", s.MAC())
}

func TestCollect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(fullProvider()).Collect(ctx)
	assert.True(t, s.Equal(snapshot.Empty()))
}

func TestCollect_CompleteMetric(t *testing.T) {
	before := testutil.ToFloat64(collectionTotal.WithLabelValues(statusComplete))
	New(fullProvider()).Collect(context.Background())
	assert.Equal(t, before+1, testutil.ToFloat64(collectionTotal.WithLabelValues(statusComplete)))
}

func TestCollect_Idempotent(t *testing.T) {
	svc := New(fullProvider())
	a := svc.Collect(context.Background())
	b := svc.Collect(context.Background())
	assert.True(t, a.Equal(b))
}

func TestCollect_Concurrent(t *testing.T) {
	svc := New(fullProvider())
	want := svc.Collect(context.Background())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, want.Equal(svc.Collect(context.Background())))
		}()
	}
	wg.Wait()
}

func TestWithTimeout_IgnoresNonPositive(t *testing.T) {
	svc := New(fullProvider(), WithTimeout(0), WithTimeout(-time.Second))
	assert.Positive(t, svc.timeout)

	svc = New(fullProvider(), WithTimeout(time.Second))
	assert.Equal(t, time.Second, svc.timeout)
}
