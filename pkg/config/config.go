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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
)

// Config is the root of the configuration file.
type Config struct {
	Collector CollectorConfig `yaml:"collector"`
	Plugin    PluginConfig    `yaml:"plugin"`
	Server    ServerConfig    `yaml:"server"`
}

// CollectorConfig relocates the system provider and bounds collection.
type CollectorConfig struct {
	SysRoot  string        `yaml:"sysRoot"`
	ProcRoot string        `yaml:"procRoot"`
	EtcRoot  string        `yaml:"etcRoot"`
	Timeout  time.Duration `yaml:"timeout"`
}

// PluginConfig configures the plugin runtime.
type PluginConfig struct {
	// PrivacyRisk is the tag attached to context events (NONE, LOW, MEDIUM, HIGH, MAX).
	PrivacyRisk string `yaml:"privacyRisk"`
}

// ServerConfig configures the HTTP daemon.
type ServerConfig struct {
	Address        string  `yaml:"address"`
	Port           int     `yaml:"port"`
	RateLimit      float64 `yaml:"rateLimit"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Collector: CollectorConfig{
			SysRoot:  "/sys",
			ProcRoot: "/proc",
			EtcRoot:  "/etc",
			Timeout:  defaults.CollectorTimeout,
		},
		Plugin: PluginConfig{
			PrivacyRisk: "LOW",
		},
		Server: ServerConfig{
			Port:           8080,
			RateLimit:      100,
			RateLimitBurst: 200,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns
// Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound,
			fmt.Sprintf("failed to read config file %q", path), err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Collector.Timeout < 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"collector timeout must not be negative", map[string]any{"timeout": c.Collector.Timeout.String()})
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"server port out of range", map[string]any{"port": c.Server.Port})
	}
	if c.Server.RateLimit < 0 || c.Server.RateLimitBurst < 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"server rate limits must not be negative", map[string]any{
				"rateLimit":      c.Server.RateLimit,
				"rateLimitBurst": c.Server.RateLimitBurst,
			})
	}
	return nil
}
