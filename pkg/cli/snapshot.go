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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Collect a device snapshot and write it as a structured document",
		Description: `Collect the device's IPv4/IPv6 addresses, MAC address and OS/build
properties, wrap them in a versioned DeviceSnapshot document and write it
to stdout, a file, or a Kubernetes ConfigMap.

Collection is best effort: a source that cannot be read leaves its fields
empty and is reported in the log, never as a command failure.

# Examples

Print YAML to stdout:
  deviceinfo snapshot

Write JSON to a file:
  deviceinfo snapshot --format json --output device.json

Store in a ConfigMap:
  deviceinfo snapshot --output cm://kube-system/deviceinfo`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			s := newService(configFrom(ctx)).Collect(ctx)
			slog.Debug("snapshot collected",
				slog.Int("ipv4", len(s.IPv4())),
				slog.Int("ipv6", len(s.IPv6())),
				slog.Bool("mac", s.MAC() != ""))

			return writeDocument(ctx, cmd, snapshot.NewDocument(s, version))
		},
	}
}
