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

package collector

import "context"

// Provider reports platform facts about the local device.
// Implementations must honor context cancellation where they can block.
type Provider interface {
	// Interfaces lists the network interfaces and their address literals.
	Interfaces(ctx context.Context) ([]Interface, error)

	// MACAddress returns the primary hardware address, or "" when unknown.
	MACAddress(ctx context.Context) (string, error)

	// BuildProperties returns OS and hardware identifiers.
	BuildProperties(ctx context.Context) (BuildProperties, error)
}

// Interface is one network interface as reported by a Provider.
type Interface struct {
	Name string
	// Addresses are address literals, optionally with a "/prefix" or "%zone" suffix.
	Addresses []string
}

// BuildProperties holds the OS and hardware identifiers of the device.
// Unknown values are empty.
type BuildProperties struct {
	OSVersion    string
	APILevel     string
	DeviceType   string
	Product      string
	Brand        string
	Manufacturer string
	Serial       string
	Board        string
}
