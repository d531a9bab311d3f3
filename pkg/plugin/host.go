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
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	goplugin "github.com/hashicorp/go-plugin"

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
)

// Serve exposes rt to the host process and blocks until the host goes away.
// It must run inside the plugin binary.
func Serve(rt *Runtime) {
	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: goplugin.PluginSet{
			Name: &DevicePlugin{Impl: rt},
		},
		Logger: NewHCLogAdapter(slog.Default(), "deviceinfo-plugin"),
	})
}

// Run initializes and starts rt, serves it until the host disconnects, then
// stops and destroys it.
func Run(ctx context.Context, rt *Runtime, power PowerScheme, settings Settings) error {
	if err := rt.Init(ctx, power, settings); err != nil {
		return fmt.Errorf("failed to initialize plugin: %w", err)
	}
	if err := rt.Start(ctx); err != nil {
		return fmt.Errorf("failed to start plugin: %w", err)
	}

	serve(rt)

	return errors.Join(rt.Stop(ctx), rt.Destroy(ctx))
}

// serve is replaced in tests; goplugin.Serve exits the process when run
// outside a host.
var serve = Serve

// Client owns a launched plugin process.
type Client struct {
	path   string
	client *goplugin.Client
	device Device
}

// NewClient launches the plugin binary at path and connects to it.
// Callers must Close the client to stop the process.
func NewClient(path string, args ...string) (*Client, error) {
	pc := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: Handshake,
		Plugins: goplugin.PluginSet{
			Name: &DevicePlugin{},
		},
		Cmd:              exec.Command(path, args...),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		StartTimeout:     defaults.PluginStartTimeout,
		Logger:           NewHCLogAdapter(slog.Default(), "plugin"),
	})

	rpcClient, err := pc.Client()
	if err != nil {
		pc.Kill()
		return nil, fmt.Errorf("failed to connect to plugin %s: %w", path, err)
	}

	raw, err := rpcClient.Dispense(Name)
	if err != nil {
		pc.Kill()
		return nil, fmt.Errorf("failed to dispense plugin %s: %w", path, err)
	}

	device, ok := raw.(Device)
	if !ok {
		pc.Kill()
		return nil, fmt.Errorf("plugin %s returned unexpected type %T", path, raw)
	}

	slog.Debug("plugin connected", slog.String("path", path))
	return &Client{path: path, client: pc, device: device}, nil
}

// Device returns the connected plugin.
func (c *Client) Device() Device {
	return c.device
}

// Close stops the plugin process.
func (c *Client) Close() {
	c.client.Kill()
	slog.Debug("plugin stopped", slog.String("path", c.path))
}
