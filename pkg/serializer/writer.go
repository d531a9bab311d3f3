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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format is a structured output encoding.
type Format string

const (
	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"
	// FormatTable outputs a FIELD/VALUE listing. It cannot be read back.
	FormatTable Format = "table"
)

// IsUnknown reports whether f is outside the supported set.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// Extension returns the file extension used for ConfigMap data keys.
func (f Format) Extension() string {
	if f == FormatTable {
		return "txt"
	}
	return string(f)
}

// SupportedFormats lists the structured output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

func normalizeFormat(f Format) Format {
	if f.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", slog.String("format", string(f)))
		return FormatJSON
	}
	return f
}

// Writer encodes documents to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer for output, or stdout when output is nil.
// Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: normalizeFormat(format),
		output: output,
	}
}

// NewFileWriter returns a Serializer for path: stdout for "" or "-", a
// ConfigMapWriter for cm://namespace/name, a local file otherwise. opts
// apply to the ConfigMap case only.
func NewFileWriter(format Format, path string, opts ...ConfigMapOption) (SerializeCloser, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %q (supported: %s)",
			format, strings.Join(SupportedFormats(), ", "))
	}

	trimmed := strings.TrimSpace(path)
	switch {
	case trimmed == "" || trimmed == StdoutURI:
		return NewStdoutWriter(format), nil
	case strings.HasPrefix(trimmed, ConfigMapURIScheme):
		namespace, name, err := ParseConfigMapURI(trimmed)
		if err != nil {
			return nil, err
		}
		return NewConfigMapWriter(namespace, name, format, opts...), nil
	}

	f, err := os.Create(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &Writer{format: format, output: f, closer: f}, nil
}

// Close releases the underlying file, if any. It is safe to call repeatedly.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize encodes doc in the writer's format.
func (w *Writer) Serialize(ctx context.Context, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := Encode(w.format, doc)
	if err != nil {
		return err
	}
	if _, err := w.output.Write(content); err != nil {
		return fmt.Errorf("failed to write %s output: %w", w.format, err)
	}
	return nil
}

type encodeFunc func(doc any) ([]byte, error)

var encoders = map[Format]encodeFunc{
	FormatJSON:  encodeJSON,
	FormatYAML:  encodeYAML,
	FormatTable: encodeTable,
}

// Encode returns doc encoded in format.
func Encode(format Format, doc any) ([]byte, error) {
	enc, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	content, err := enc(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize to %s: %w", format, err)
	}
	return content, nil
}

func encodeJSON(doc any) ([]byte, error) {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(content, '\n'), nil
}

func encodeYAML(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeTable lists the leaves of the JSON form of doc, one per row, so
// custom marshalers and json tags decide the field names. Keys are dotted
// paths with list indexes in brackets, e.g. device.ipv4[0].
func encodeTable(doc any) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}

	leaves := make(map[string]string)
	collectLeaves(leaves, "", tree)
	if len(leaves) == 0 {
		return []byte("<empty>\n"), nil
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "FIELD\tVALUE\n-----\t-----\n")
	for _, key := range slices.Sorted(maps.Keys(leaves)) {
		fmt.Fprintf(tw, "%s\t%s\n", key, leaves[key])
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func collectLeaves(out map[string]string, path string, node any) {
	switch n := node.(type) {
	case map[string]any:
		for k, child := range n {
			if path != "" {
				k = path + "." + k
			}
			collectLeaves(out, k, child)
		}
	case []any:
		if len(n) == 0 && path != "" {
			out[path] = ""
		}
		for i, child := range n {
			collectLeaves(out, path+"["+strconv.Itoa(i)+"]", child)
		}
	case nil:
		if path != "" {
			out[path] = ""
		}
	default:
		if path == "" {
			path = "value"
		}
		out[path] = fmt.Sprint(n)
	}
}
