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

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deviceinfo/pkg/collector"
	"github.com/NVIDIA/deviceinfo/pkg/collector/system"
	"github.com/NVIDIA/deviceinfo/pkg/config"
	"github.com/NVIDIA/deviceinfo/pkg/k8s/client"
	"github.com/NVIDIA/deviceinfo/pkg/serializer"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Sources: cli.EnvVars("DEVICEINFO_OUTPUT"),
		Usage: `output destination: file path, ConfigMap URI (cm://namespace/name), or "-" for stdout.
	Defaults to stdout.`,
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   string(serializer.FormatYAML),
		Sources: cli.EnvVars("DEVICEINFO_FORMAT"),
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Sources: cli.EnvVars("KUBECONFIG"),
		Usage:   "path to kubeconfig for cm:// URIs (defaults to in-cluster or ~/.kube/config)",
	}
)

// newService builds the collector from the config; replaced in tests.
var newService = func(cfg *config.Config) *collector.Service {
	return system.NewService(cfg.Collector)
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			cmd.String("format"), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// kubeClient returns an explicit client when --kubeconfig is set, nil otherwise
// so the serializer falls back to its default client.
func kubeClient(cmd *cli.Command) (client.Interface, error) {
	path := cmd.String("kubeconfig")
	if path == "" {
		return nil, nil
	}
	kc, _, err := client.BuildKubeClient(path)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubernetes client: %w", err)
	}
	return kc, nil
}

// newOutputWriter resolves --output to a serializer. Stdout goes through the
// command's writer.
func newOutputWriter(cmd *cli.Command, format serializer.Format) (serializer.SerializeCloser, error) {
	output := strings.TrimSpace(cmd.String("output"))
	if output == "" || output == serializer.StdoutURI {
		return serializer.NewWriter(format, stdout(cmd)), nil
	}

	var opts []serializer.ConfigMapOption
	if strings.HasPrefix(output, serializer.ConfigMapURIScheme) {
		kc, err := kubeClient(cmd)
		if err != nil {
			return nil, err
		}
		if kc != nil {
			opts = append(opts, serializer.WithClient(kc))
		}
	}
	return serializer.NewFileWriter(format, output, opts...)
}

// writeDocument serializes doc to --output and closes the writer.
func writeDocument(ctx context.Context, cmd *cli.Command, doc any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	w, err := newOutputWriter(cmd, format)
	if err != nil {
		return err
	}

	if err := w.Serialize(ctx, doc); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return w.Close()
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
