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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusComplete = "complete"
	statusDegraded = "degraded"
)

var (
	collectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deviceinfo_collection_duration_seconds",
			Help:    "Time taken to collect a device snapshot",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	collectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deviceinfo_collection_total",
			Help: "Total number of snapshot collections",
		},
		[]string{"status"}, // complete or degraded
	)

	collectionDegraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deviceinfo_collection_degraded_total",
			Help: "Total number of provider queries that degraded to empty values",
		},
		[]string{"source"}, // interfaces, mac, build
	)
)
