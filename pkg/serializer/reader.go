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

package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
	"github.com/NVIDIA/deviceinfo/pkg/k8s/client"
)

// FormatFromPath picks a format from the file extension: .json, .yaml/.yml,
// .table/.txt. Anything else is JSON.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".table"), strings.HasSuffix(lower, ".txt"):
		return FormatTable
	default:
		slog.Debug("unknown file extension, assuming JSON", slog.String("path", path))
		return FormatJSON
	}
}

// Reader decodes JSON or YAML documents.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader returns a Reader over input. Table format cannot be read.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	r := &Reader{format: format, input: input}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// NewFileReader opens path for decoding. The caller must Close the Reader.
func NewFileReader(format Format, path string) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Reader{format: format, input: f, closer: f}, nil
}

func checkReadable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
	return nil
}

// Close releases the input when it is closeable. Safe to call repeatedly.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile loads a T from a local file or a cm://namespace/name URI, using
// the default Kubernetes client for the latter.
func FromFile[T any](path string) (*T, error) {
	return FromFileWithClient[T](context.Background(), path, nil)
}

// FromFileWithClient is FromFile with an explicit Kubernetes client. A nil
// client uses client.GetKubeClient.
func FromFileWithClient[T any](ctx context.Context, path string, kc client.Interface) (*T, error) {
	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := ParseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		if kc == nil {
			if kc, _, err = client.GetKubeClient(); err != nil {
				return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
			}
		}
		return FromConfigMap[T](ctx, kc, namespace, name)
	}

	format := FormatFromPath(path)
	r, err := NewFileReader(format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			slog.Warn("failed to close reader", slog.String("error", cerr.Error()))
		}
	}()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", path, err)
	}

	slog.Debug("loaded document", slog.String("path", path), slog.String("format", string(format)))
	return &v, nil
}

// FromConfigMap loads a T written by ConfigMapWriter.
func FromConfigMap[T any](ctx context.Context, kc client.Interface, namespace, name string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := kc.CoreV1().ConfigMaps(namespace).Get(ctx, name, getOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f, ok := cm.Data[dataKeyFormat]; ok && !Format(f).IsUnknown() {
		format = Format(f)
	}

	content, ok := cm.Data[dataKey(format)]
	if !ok {
		found := false
		for _, f := range []Format{FormatYAML, FormatJSON} {
			if c, exists := cm.Data[dataKey(f)]; exists {
				content, format, found = c, f, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("ConfigMap %s/%s has no snapshot data", namespace, name)
		}
	}

	r, err := NewReader(format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for ConfigMap data: %w", err)
	}

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize ConfigMap data: %w", err)
	}
	return &v, nil
}
