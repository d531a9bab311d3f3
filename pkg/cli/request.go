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
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deviceinfo/pkg/plugin"
)

// pluginConn is the part of *plugin.Client the request command uses.
type pluginConn interface {
	Device() plugin.Device
	Close()
}

// connectPlugin launches a plugin binary; replaced in tests.
var connectPlugin = func(path string) (pluginConn, error) {
	return plugin.NewClient(path)
}

func requestCmd() *cli.Command {
	return &cli.Command{
		Name:                  "request",
		EnableShellCompletion: true,
		Usage:                 "Send a context request to a deviceinfo plugin binary",
		Description: `Launch a deviceinfo-plugin binary over the plugin RPC transport, send one
context request and write the resulting ContextEvent.

Settings given with --setting are pushed to the plugin before the request.
The privacyRisk setting (NONE, LOW, MEDIUM, HIGH, MAX) changes the tag on
the event; other settings are stored by the plugin and otherwise ignored.

# Examples

  deviceinfo request --plugin ./deviceinfo-plugin
  deviceinfo request --plugin ./deviceinfo-plugin --setting privacyRisk=HIGH --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "plugin",
				Aliases:  []string{"p"},
				Required: true,
				Sources:  cli.EnvVars("DEVICEINFO_PLUGIN"),
				Usage:    "path to the deviceinfo-plugin binary",
			},
			&cli.StringFlag{
				Name:  "context-type",
				Value: plugin.ContextType,
				Usage: "context type to request",
			},
			&cli.StringSliceFlag{
				Name:  "setting",
				Usage: "plugin setting as key=value (can be repeated)",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			settings, err := parseSettings(cmd.StringSlice("setting"))
			if err != nil {
				return err
			}

			conn, err := connectPlugin(cmd.String("plugin"))
			if err != nil {
				return err
			}
			defer conn.Close()

			device := conn.Device()
			if len(settings) > 0 {
				if err := device.UpdateSettings(settings); err != nil {
					return fmt.Errorf("failed to update plugin settings: %w", err)
				}
			}

			id := uuid.New()
			slog.Debug("sending context request",
				slog.String("request_id", id.String()),
				slog.String("context_type", cmd.String("context-type")))

			ev, err := device.Request(ctx, id, cmd.String("context-type"), nil)
			if err != nil {
				return fmt.Errorf("context request failed: %w", err)
			}

			return writeDocument(ctx, cmd, ev)
		},
	}
}

func parseSettings(pairs []string) (plugin.Settings, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(plugin.Settings, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid setting %q: expected key=value", p)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
