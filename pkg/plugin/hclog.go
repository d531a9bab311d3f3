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
	"io"
	"log"
	"log/slog"

	"github.com/hashicorp/go-hclog"
)

// HCLogAdapter routes hashicorp/go-hclog output into a slog.Logger.
type HCLogAdapter struct {
	logger *slog.Logger
	name   string
	args   []any
}

var _ hclog.Logger = (*HCLogAdapter)(nil)

// NewHCLogAdapter returns an hclog.Logger writing to logger. A nil logger
// uses slog.Default.
func NewHCLogAdapter(logger *slog.Logger, name string) hclog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &HCLogAdapter{logger: logger, name: name}
}

func toSlogLevel(level hclog.Level) slog.Level {
	switch level {
	case hclog.Trace, hclog.Debug:
		return slog.LevelDebug
	case hclog.Warn:
		return slog.LevelWarn
	case hclog.Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (h *HCLogAdapter) emit(level slog.Level, msg string, args ...any) {
	attrs := make([]any, 0, len(h.args)+len(args)+2)
	if h.name != "" {
		attrs = append(attrs, slog.String("logger", h.name))
	}
	attrs = append(attrs, h.args...)
	attrs = append(attrs, args...)
	h.logger.Log(context.Background(), level, msg, attrs...)
}

func (h *HCLogAdapter) enabled(level slog.Level) bool {
	return h.logger.Enabled(context.Background(), level)
}

// Log implements hclog.Logger.
func (h *HCLogAdapter) Log(level hclog.Level, msg string, args ...any) {
	if level == hclog.Off || level == hclog.NoLevel {
		return
	}
	h.emit(toSlogLevel(level), msg, args...)
}

func (h *HCLogAdapter) Trace(msg string, args ...any) { h.emit(slog.LevelDebug, msg, args...) }
func (h *HCLogAdapter) Debug(msg string, args ...any) { h.emit(slog.LevelDebug, msg, args...) }
func (h *HCLogAdapter) Info(msg string, args ...any)  { h.emit(slog.LevelInfo, msg, args...) }
func (h *HCLogAdapter) Warn(msg string, args ...any)  { h.emit(slog.LevelWarn, msg, args...) }
func (h *HCLogAdapter) Error(msg string, args ...any) { h.emit(slog.LevelError, msg, args...) }

func (h *HCLogAdapter) IsTrace() bool { return false }
func (h *HCLogAdapter) IsDebug() bool { return h.enabled(slog.LevelDebug) }
func (h *HCLogAdapter) IsInfo() bool  { return h.enabled(slog.LevelInfo) }
func (h *HCLogAdapter) IsWarn() bool  { return h.enabled(slog.LevelWarn) }
func (h *HCLogAdapter) IsError() bool { return h.enabled(slog.LevelError) }

// ImpliedArgs returns the args added through With.
func (h *HCLogAdapter) ImpliedArgs() []any {
	return h.args
}

// With returns a logger that adds args to every entry.
func (h *HCLogAdapter) With(args ...any) hclog.Logger {
	merged := make([]any, 0, len(h.args)+len(args))
	merged = append(merged, h.args...)
	merged = append(merged, args...)
	return &HCLogAdapter{logger: h.logger, name: h.name, args: merged}
}

// Name returns the logger name.
func (h *HCLogAdapter) Name() string {
	return h.name
}

// Named returns a sub-logger, joining names with ".".
func (h *HCLogAdapter) Named(name string) hclog.Logger {
	full := name
	if h.name != "" {
		full = h.name + "." + name
	}
	return &HCLogAdapter{logger: h.logger, name: full, args: h.args}
}

// ResetNamed returns a logger with name replacing the current one.
func (h *HCLogAdapter) ResetNamed(name string) hclog.Logger {
	return &HCLogAdapter{logger: h.logger, name: name, args: h.args}
}

// SetLevel is a no-op; the slog handler owns the level.
func (h *HCLogAdapter) SetLevel(hclog.Level) {}

// GetLevel reports the most verbose level the handler accepts.
func (h *HCLogAdapter) GetLevel() hclog.Level {
	switch {
	case h.IsDebug():
		return hclog.Debug
	case h.IsInfo():
		return hclog.Info
	case h.IsWarn():
		return hclog.Warn
	default:
		return hclog.Error
	}
}

// StandardLogger returns a log.Logger writing through the adapter.
func (h *HCLogAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	level := slog.LevelInfo
	if opts != nil && opts.ForceLevel != hclog.NoLevel {
		level = toSlogLevel(opts.ForceLevel)
	}
	return slog.NewLogLogger(h.logger.With(slog.String("logger", h.name)).Handler(), level)
}

// StandardWriter returns the writer behind StandardLogger.
func (h *HCLogAdapter) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return h.StandardLogger(opts).Writer()
}
