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
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
	"github.com/NVIDIA/deviceinfo/pkg/header"
	"github.com/NVIDIA/deviceinfo/pkg/k8s/client"
)

// ConfigMapURIScheme prefixes ConfigMap destinations: cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// FieldManager owns the fields written by server-side apply.
const FieldManager = "deviceinfo"

const (
	dataKeyFormat    = "format"
	dataKeyTimestamp = "timestamp"
)

var getOptions = metav1.GetOptions{}

func dataKey(f Format) string {
	return "snapshot." + f.Extension()
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithClient sets the Kubernetes client. Without it the default client is
// built on first Serialize.
func WithClient(kc client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = kc
	}
}

// ConfigMapWriter applies serialized documents to a ConfigMap, creating it
// when missing.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
}

// NewConfigMapWriter returns a writer for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalizeFormat(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize writes doc under data["snapshot.<ext>"]. Documents carrying a
// header contribute kind, version and timestamp labels.
func (w *ConfigMapWriter) Serialize(ctx context.Context, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	kc := w.client
	if kc == nil {
		c, config, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		kc = c
		slog.Debug("configmap client ready", slog.String("auth_method", client.AuthMethod(config)))
	}

	content, err := Encode(w.format, doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	kind := header.KindDeviceSnapshot.String()
	version := "unknown"
	timestamp := time.Now().UTC().Format(time.RFC3339)
	if h, ok := doc.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		if k := h.GetKind(); k != "" {
			kind = k.String()
		}
		md := h.GetMetadata()
		if v := md[header.MetadataVersion]; v != "" {
			version = v
		}
		if ts := md[header.MetadataTimestamp]; ts != "" {
			timestamp = ts
		}
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "deviceinfo",
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   labelValue(version),
		}).
		WithData(map[string]string{
			dataKey(w.format): string(content),
			dataKeyFormat:     string(w.format),
			dataKeyTimestamp:  timestamp,
		})

	slog.Info("applying ConfigMap",
		slog.String("namespace", w.namespace),
		slog.String("name", w.name),
		slog.String("format", string(w.format)))

	_, err = kc.CoreV1().ConfigMaps(w.namespace).Apply(ctx, cm, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// labelValue coerces v into a valid label value: characters outside
// [A-Za-z0-9._-] become "-", the result is cut to 63 characters and must
// start and end alphanumeric.
func labelValue(v string) string {
	if len(validation.IsValidLabelValue(v)) == 0 {
		return v
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, v)
	if len(s) > validation.LabelValueMaxLength {
		s = s[:validation.LabelValueMaxLength]
	}
	return strings.Trim(s, "-_.")
}

// ParseConfigMapURI splits a cm://namespace/name URI.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	ns, n, ok := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(ns)
	name = strings.TrimSpace(n)
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	if errs := validation.IsDNS1123Label(namespace); len(errs) > 0 {
		return "", "", fmt.Errorf("invalid ConfigMap URI namespace %q: %s", namespace, strings.Join(errs, "; "))
	}
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return "", "", fmt.Errorf("invalid ConfigMap URI name %q: %s", name, strings.Join(errs, "; "))
	}
	return namespace, name, nil
}
