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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deviceinfo/pkg/serializer"
	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Render a snapshot in one of the legacy text formats",
		Description: `Render a device snapshot as plain text (IPv4 list), an XML <device>
document, or the legacy "ipv4: ..." text. Without --input a fresh snapshot
is collected; with --input a DeviceSnapshot document written by
"deviceinfo snapshot", or a ContextEvent written by "deviceinfo request",
is read back (JSON or YAML file, or cm:// URI).

Format identifiers are matched case-insensitively. Unknown identifiers are
rejected.

# Examples

  deviceinfo render --format text/plain
  deviceinfo render --format xml --input device.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "format",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    fmt.Sprintf("rendering format (%s)", strings.Join(snapshot.SupportedFormats(), ", ")),
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "snapshot document to render instead of collecting (file path or cm://namespace/name)",
			},
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := snapshot.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			s, err := loadSnapshot(ctx, cmd)
			if err != nil {
				return err
			}

			text, err := format.Render(s)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(stdout(cmd), text)
			return err
		},
	}
}

func loadSnapshot(ctx context.Context, cmd *cli.Command) (snapshot.Snapshot, error) {
	input := strings.TrimSpace(cmd.String("input"))
	if input == "" {
		return newService(configFrom(ctx)).Collect(ctx), nil
	}

	kc, err := kubeClient(cmd)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	// A ContextEvent carries the same device field, so both kinds decode here.
	doc, err := serializer.FromFileWithClient[snapshot.Document](ctx, input, kc)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if err := doc.Check(); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to load snapshot from %s: %w", input, err)
	}
	return doc.Device, nil
}
