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
	"fmt"
	"net/rpc"

	"github.com/google/uuid"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/NVIDIA/deviceinfo/pkg/defaults"
	apperrors "github.com/NVIDIA/deviceinfo/pkg/errors"
	"github.com/NVIDIA/deviceinfo/pkg/header"
	"github.com/NVIDIA/deviceinfo/pkg/snapshot"
)

// Name is the key the device plugin is dispensed under.
const Name = "deviceinfo"

// Handshake must match between host and plugin binaries.
var Handshake = goplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "DEVICEINFO_PLUGIN",
	MagicCookieValue: "deviceinfo",
}

// Device is the host-side view of a running device plugin.
type Device interface {
	Request(ctx context.Context, requestID uuid.UUID, contextType string, config Settings) (*ContextEvent, error)
	UpdateSettings(settings Settings) error
	SetPowerScheme(power PowerScheme) error
	SupportedFormats() ([]string, error)
}

// DevicePlugin binds a Runtime to go-plugin's net/rpc protocol.
type DevicePlugin struct {
	// Impl is set on the plugin side only.
	Impl *Runtime
}

var _ goplugin.Plugin = (*DevicePlugin)(nil)

// Server implements goplugin.Plugin.
func (p *DevicePlugin) Server(*goplugin.MuxBroker) (any, error) {
	if p.Impl == nil {
		return nil, fmt.Errorf("device plugin has no runtime")
	}
	return &DeviceRPCServer{runtime: p.Impl}, nil
}

// Client implements goplugin.Plugin.
func (p *DevicePlugin) Client(_ *goplugin.MuxBroker, c *rpc.Client) (any, error) {
	return &DeviceRPCClient{client: c}, nil
}

// RequestArgs is the wire form of a context request.
type RequestArgs struct {
	RequestID   string
	ContextType string
	Config      map[string]string
}

// RequestReply is the wire form of a context event. Error fields are set
// instead of returning an RPC error so structured codes survive.
type RequestReply struct {
	RequestID    string
	ContextType  string
	PrivacyRisk  string
	Fields       []string
	Metadata     map[string]string
	ErrorCode    string
	ErrorMessage string
}

// DeviceRPCServer serves a Runtime over net/rpc.
type DeviceRPCServer struct {
	runtime *Runtime
}

// Request handles a context request.
func (s *DeviceRPCServer) Request(args RequestArgs, reply *RequestReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaults.PluginRequestTimeout)
	defer cancel()

	id, err := uuid.Parse(args.RequestID)
	if err != nil {
		reply.ErrorCode = string(apperrors.ErrCodeInvalidRequest)
		reply.ErrorMessage = "invalid request id: " + args.RequestID
		return nil
	}

	ev, err := s.runtime.HandleConfiguredContextRequest(ctx, id, args.ContextType, args.Config)
	if err != nil {
		reply.ErrorCode = string(apperrors.CodeOf(err))
		reply.ErrorMessage = err.Error()
		return nil
	}

	reply.RequestID = ev.RequestID.String()
	reply.ContextType = ev.ContextType
	reply.PrivacyRisk = ev.PrivacyRisk.String()
	reply.Fields = ev.Device.Fields()
	reply.Metadata = ev.Metadata
	return nil
}

// UpdateSettings forwards to Runtime.UpdateSettings.
func (s *DeviceRPCServer) UpdateSettings(args map[string]string, reply *bool) error {
	if err := s.runtime.UpdateSettings(args); err != nil {
		return err
	}
	*reply = true
	return nil
}

// SetPowerScheme forwards to Runtime.SetPowerScheme.
func (s *DeviceRPCServer) SetPowerScheme(args int, reply *bool) error {
	if err := s.runtime.SetPowerScheme(PowerScheme(args)); err != nil {
		return err
	}
	*reply = true
	return nil
}

// SupportedFormats lists the rendering identifiers. The argument is unused;
// gob cannot carry an empty struct.
func (s *DeviceRPCServer) SupportedFormats(_ int, reply *[]string) error {
	*reply = snapshot.SupportedFormats()
	return nil
}

// DeviceRPCClient is the host-side stub of DeviceRPCServer.
type DeviceRPCClient struct {
	client *rpc.Client
}

var _ Device = (*DeviceRPCClient)(nil)

// Request sends a context request and rebuilds the event from the field
// sequence. ctx bounds the wait; net/rpc cannot cancel the remote call.
func (c *DeviceRPCClient) Request(ctx context.Context, requestID uuid.UUID, contextType string, config Settings) (*ContextEvent, error) {
	args := RequestArgs{
		RequestID:   requestID.String(),
		ContextType: contextType,
		Config:      config,
	}

	var reply RequestReply
	call := c.client.Go("Plugin.Request", args, &reply, make(chan *rpc.Call, 1))
	select {
	case <-call.Done:
		if call.Error != nil {
			return nil, fmt.Errorf("plugin request failed: %w", call.Error)
		}
	case <-ctx.Done():
		return nil, apperrors.Wrap(apperrors.ErrCodeTimeout, "plugin request canceled", ctx.Err())
	}

	if reply.ErrorCode != "" {
		return nil, apperrors.New(apperrors.ErrorCode(reply.ErrorCode), reply.ErrorMessage)
	}

	s, err := snapshot.FromFields(reply.Fields)
	if err != nil {
		return nil, fmt.Errorf("plugin returned malformed snapshot: %w", err)
	}
	risk, err := ParsePrivacyRisk(reply.PrivacyRisk)
	if err != nil {
		return nil, fmt.Errorf("plugin returned malformed privacy risk: %w", err)
	}
	id, err := uuid.Parse(reply.RequestID)
	if err != nil {
		return nil, fmt.Errorf("plugin returned malformed request id: %w", err)
	}

	return &ContextEvent{
		Header: header.Header{
			Kind:       header.KindContextEvent,
			APIVersion: header.APIVersion,
			Metadata:   reply.Metadata,
		},
		RequestID:   id,
		ContextType: reply.ContextType,
		PrivacyRisk: risk,
		Device:      s,
	}, nil
}

// UpdateSettings forwards settings to the plugin.
func (c *DeviceRPCClient) UpdateSettings(settings Settings) error {
	var ok bool
	return c.client.Call("Plugin.UpdateSettings", map[string]string(settings), &ok)
}

// SetPowerScheme forwards the power hint to the plugin.
func (c *DeviceRPCClient) SetPowerScheme(power PowerScheme) error {
	var ok bool
	return c.client.Call("Plugin.SetPowerScheme", int(power), &ok)
}

// SupportedFormats asks the plugin for its rendering identifiers.
func (c *DeviceRPCClient) SupportedFormats() ([]string, error) {
	var reply []string
	if err := c.client.Call("Plugin.SupportedFormats", 0, &reply); err != nil {
		return nil, err
	}
	return reply, nil
}
