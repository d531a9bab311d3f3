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

package system

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/deviceinfo/pkg/collector/file"
)

// Boards without SMBIOS (ARM SBCs, embedded modules) describe themselves in
// the flattened device tree. String properties are NUL-terminated and
// string lists are NUL-separated.

func newDeviceTreeParser() *file.Parser {
	return file.NewParser(
		file.WithDelimiter("\x00"),
		file.WithSkipComments(false),
		file.WithMaxSize(4<<10),
	)
}

// cpuinfo lines look like "Serial\t\t: 10000000abcdef01".
func newCPUInfoParser() *file.Parser {
	return file.NewParser(
		file.WithKVDelimiter(":"),
		file.WithSkipEmptyValues(true),
	)
}

func (p *Provider) deviceTreePath(name string) string {
	return filepath.Join(p.sysRoot, "firmware", "devicetree", "base", name)
}

// dtString reads a single string property.
func (p *Provider) dtString(name string) func() (string, error) {
	return func() (string, error) {
		return p.devicetree.GetValue(p.deviceTreePath(name))
	}
}

// compatible returns the most specific "vendor,board" entry split in two.
// An entry without a vendor prefix is all board.
func (p *Provider) compatible() (vendor, board string, err error) {
	path := p.deviceTreePath("compatible")
	entries, err := p.devicetree.GetLines(path)
	if err != nil {
		return "", "", err
	}
	if len(entries) == 0 {
		return "", "", fmt.Errorf("%q: %w", path, file.ErrNoValue)
	}

	vendor, board, ok := strings.Cut(entries[0], ",")
	if !ok {
		return "", entries[0], nil
	}
	return vendor, board, nil
}

func (p *Provider) dtVendor() (string, error) {
	vendor, _, err := p.compatible()
	if err == nil && vendor == "" {
		err = fmt.Errorf("compatible: vendor: %w", file.ErrNoValue)
	}
	return vendor, err
}

func (p *Provider) dtBoard() (string, error) {
	_, board, err := p.compatible()
	return board, err
}

// cpuSerial reads the SoC serial some ARM kernels expose in /proc/cpuinfo.
func (p *Provider) cpuSerial() (string, error) {
	path := filepath.Join(p.procRoot, "cpuinfo")
	kv, err := p.cpuinfo.GetMap(path)
	if err != nil {
		return "", err
	}
	v, ok := kv["Serial"]
	if !ok {
		return "", fmt.Errorf("%q: Serial: %w", path, file.ErrNoValue)
	}
	return v, nil
}

// firstOf returns the first source that yields a value.
func firstOf(sources ...func() (string, error)) func() (string, error) {
	return func() (string, error) {
		errs := make([]error, 0, len(sources))
		for _, src := range sources {
			v, err := src()
			if err == nil {
				return v, nil
			}
			errs = append(errs, err)
		}
		return "", errors.Join(errs...)
	}
}
