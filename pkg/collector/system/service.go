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

package system

import (
	"log/slog"

	"github.com/NVIDIA/deviceinfo/pkg/collector"
	"github.com/NVIDIA/deviceinfo/pkg/config"
)

// NewService returns a collector.Service over a Provider rooted as cfg says.
// Extra opts are applied after the configured roots.
func NewService(cfg config.CollectorConfig, opts ...Option) *collector.Service {
	base := []Option{
		WithSysRoot(cfg.SysRoot),
		WithProcRoot(cfg.ProcRoot),
		WithEtcRoot(cfg.EtcRoot),
	}
	p := New(append(base, opts...)...)

	slog.Debug("system provider configured",
		slog.String("sysRoot", p.sysRoot),
		slog.String("procRoot", p.procRoot),
		slog.String("etcRoot", p.etcRoot),
		slog.Duration("timeout", cfg.Timeout))

	return collector.New(p, collector.WithTimeout(cfg.Timeout))
}
