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
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/deviceinfo/pkg/config"
	"github.com/NVIDIA/deviceinfo/pkg/logging"
)

const (
	name           = "deviceinfo"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

type configKey struct{}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Device identity and network snapshot tool",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		Description: `Collects the device's IP addresses, MAC address and OS/build properties
and renders them as structured documents or in the legacy text formats.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("DEVICEINFO_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to YAML config file",
				Sources: cli.EnvVars("DEVICEINFO_CONFIG"),
			},
		},
		Before: before,
		Commands: []*cli.Command{
			snapshotCmd(),
			renderCmd(),
			formatsCmd(),
			fieldsCmd(),
			requestCmd(),
		},
	}
}

// before configures logging and loads the config file once for all commands.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
	slog.Debug("starting",
		slog.String("name", name),
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("date", date))

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, configKey{}, cfg), nil
}

// configFrom returns the config loaded by before, or defaults.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.Default()
}

// commandLister prints visible subcommands for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}
