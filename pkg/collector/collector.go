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
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

// Provider query sources, used as the degraded metric label.
const (
	SourceInterfaces = "interfaces"
	SourceMAC        = "mac"
	SourceBuild      = "build"
)

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds a single collection pass. Sources that have not answered
// when it expires degrade to empty values. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Service collects device snapshots. It holds no mutable state and is safe
// for concurrent use.
type Service struct {
	provider Provider
	timeout  time.Duration
}

// New returns a Service backed by provider.
func New(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		timeout:  defaults.CollectorTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collect gathers a fresh snapshot. It never fails: sources that error or
// time out leave their fields empty.
func (s *Service) Collect(ctx context.Context) snapshot.Snapshot {
	start := time.Now()
	defer func() {
		collectionDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		rec      snapshot.Record
		degraded atomic.Bool
	)

	// A plain group: one failing source must not cancel the others.
	var g errgroup.Group

	g.Go(func() error {
		ifaces, err := query(ctx, s.provider.Interfaces)
		if err != nil {
			s.degrade(SourceInterfaces, err)
			degraded.Store(true)
			return nil
		}
		rec.IPv4, rec.IPv6 = classifyAddresses(ifaces)
		return nil
	})

	g.Go(func() error {
		mac, err := query(ctx, s.provider.MACAddress)
		if err != nil {
			s.degrade(SourceMAC, err)
			degraded.Store(true)
			return nil
		}
		rec.MAC = mac
		return nil
	})

	var props BuildProperties
	g.Go(func() error {
		p, err := query(ctx, s.provider.BuildProperties)
		if err != nil {
			s.degrade(SourceBuild, err)
			degraded.Store(true)
			return nil
		}
		props = p
		return nil
	})

	// Every goroutine returns nil.
	_ = g.Wait()

	rec.OSVersion = props.OSVersion
	rec.APILevel = props.APILevel
	rec.DeviceType = props.DeviceType
	rec.Product = props.Product
	rec.Brand = props.Brand
	rec.Manufacturer = props.Manufacturer
	rec.Serial = props.Serial
	rec.Board = props.Board

	status := statusComplete
	if degraded.Load() {
		status = statusDegraded
	}
	collectionTotal.WithLabelValues(status).Inc()

	snap := snapshot.New(rec)
	slog.Debug("collected device snapshot",
		slog.Int("ipv4", len(rec.IPv4)),
		slog.Int("ipv6", len(rec.IPv6)),
		slog.String("status", status),
		slog.Duration("duration", time.Since(start)))

	return snap
}

func (s *Service) degrade(source string, err error) {
	collectionDegraded.WithLabelValues(source).Inc()
	slog.Warn("device fact unavailable, using empty value",
		slog.String("source", source),
		slog.String("error", err.Error()))
}

// query runs fn and returns its result, or the context error if ctx ends
// first. A panic in fn is returned as an error.
func query[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("provider panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		ch <- result{val: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
