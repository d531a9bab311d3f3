package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/NVIDIA/deviceinfo/pkg/collector/system"
	"github.com/NVIDIA/deviceinfo/pkg/config"
	"github.com/NVIDIA/deviceinfo/pkg/logging"
	"github.com/NVIDIA/deviceinfo/pkg/plugin"
)

const name = "deviceinfo-plugin"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
)

// Logs go to stderr; stdout carries the plugin handshake.
func main() {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Debug("starting",
		slog.String("name", name),
		slog.String("version", version),
		slog.String("commit", commit))

	cfg, err := config.Load(os.Getenv("DEVICEINFO_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	risk, err := plugin.ParsePrivacyRisk(cfg.Plugin.PrivacyRisk)
	if err != nil {
		log.Fatal(err)
	}

	rt := plugin.NewRuntime(system.NewService(cfg.Collector),
		plugin.WithPrivacyRisk(risk),
		plugin.WithVersion(version))

	if err := plugin.Run(context.Background(), rt, plugin.PowerBalanced, nil); err != nil {
		log.Fatal(err)
	}
}
