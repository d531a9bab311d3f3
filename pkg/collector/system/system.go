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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/NVIDIA/deviceinfo/pkg/collector"
	"github.com/NVIDIA/deviceinfo/pkg/collector/file"
)

const (
	DefaultSysRoot  = "/sys"
	DefaultProcRoot = "/proc"
	DefaultEtcRoot  = "/etc"

	zeroMAC = "00:00:00:00:00:00"
)

// InterfaceLister enumerates network interfaces with their address literals.
type InterfaceLister func() ([]collector.Interface, error)

// Option configures a Provider.
type Option func(*Provider)

// WithSysRoot relocates the sysfs mount point.
func WithSysRoot(root string) Option {
	return func(p *Provider) {
		if root != "" {
			p.sysRoot = root
		}
	}
}

// WithProcRoot relocates the procfs mount point.
func WithProcRoot(root string) Option {
	return func(p *Provider) {
		if root != "" {
			p.procRoot = root
		}
	}
}

// WithEtcRoot relocates /etc. The os-release fallback is resolved as
// usr/lib/os-release next to it.
func WithEtcRoot(root string) Option {
	return func(p *Provider) {
		if root != "" {
			p.etcRoot = root
		}
	}
}

// WithInterfaceLister replaces net.Interfaces as the interface source.
func WithInterfaceLister(l InterfaceLister) Option {
	return func(p *Provider) {
		if l != nil {
			p.lister = l
		}
	}
}

// Provider reads device facts from the running Linux system.
type Provider struct {
	sysRoot  string
	procRoot string
	etcRoot  string
	lister   InterfaceLister

	// guards the process-wide interface table query
	mu sync.Mutex

	values     *file.Parser
	release    *file.Parser
	devicetree *file.Parser
	cpuinfo    *file.Parser
}

var _ collector.Provider = (*Provider)(nil)

// New returns a Provider reading from the standard mount points unless
// overridden by opts.
func New(opts ...Option) *Provider {
	p := &Provider{
		sysRoot:  DefaultSysRoot,
		procRoot: DefaultProcRoot,
		etcRoot:  DefaultEtcRoot,
		lister:   listSystemInterfaces,
		values:   file.NewParser(file.WithMaxSize(4 << 10)),
		release: file.NewParser(
			file.WithVTrimChars(`"'`),
			file.WithSkipEmptyValues(true),
		),
		devicetree: newDeviceTreeParser(),
		cpuinfo:    newCPUInfoParser(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interfaces implements collector.Provider.
func (p *Provider) Interfaces(ctx context.Context) ([]collector.Interface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ifaces, err := p.lister()
	if err != nil {
		return nil, fmt.Errorf("failed to list network interfaces: %w", err)
	}
	return ifaces, nil
}

// MACAddress implements collector.Provider. Wireless interfaces are preferred;
// otherwise the first non-loopback interface with a non-zero address wins.
// No candidate yields "" without error.
func (p *Provider) MACAddress(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	netDir := filepath.Join(p.sysRoot, "class", "net")
	entries, err := os.ReadDir(netDir)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", netDir, err)
	}

	var wired []string
	for _, e := range entries {
		name := e.Name()
		if name == "lo" {
			continue
		}
		if isWireless(filepath.Join(netDir, name)) {
			if mac := p.readMAC(netDir, name); mac != "" {
				return mac, nil
			}
			continue
		}
		wired = append(wired, name)
	}

	for _, name := range wired {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if mac := p.readMAC(netDir, name); mac != "" {
			return mac, nil
		}
	}

	slog.Debug("no interface with a hardware address", slog.String("dir", netDir))
	return "", nil
}

func (p *Provider) readMAC(netDir, name string) string {
	v, err := p.values.GetValue(filepath.Join(netDir, name, "address"))
	if err != nil {
		return ""
	}
	v = strings.ToLower(v)
	if v == zeroMAC {
		return ""
	}
	return v
}

func isWireless(ifaceDir string) bool {
	for _, marker := range []string{"wireless", "phy80211"} {
		if _, err := os.Stat(filepath.Join(ifaceDir, marker)); err == nil {
			return true
		}
	}
	return false
}

// BuildProperties implements collector.Provider. SMBIOS (DMI) values win;
// boards without it fall back to the device tree and /proc/cpuinfo.
func (p *Provider) BuildProperties(ctx context.Context) (collector.BuildProperties, error) {
	var (
		props collector.BuildProperties
		found int
		errs  []error
	)

	read := func(dst *string, fn func() (string, error)) {
		if ctx.Err() != nil {
			return
		}
		v, err := fn()
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, file.ErrNoValue) {
				slog.Debug("build property unreadable", slog.String("error", err.Error()))
			}
			errs = append(errs, err)
			return
		}
		*dst = v
		found++
	}

	dmi := func(name string) func() (string, error) {
		return func() (string, error) {
			return p.values.GetValue(filepath.Join(p.sysRoot, "class", "dmi", "id", name))
		}
	}

	read(&props.OSVersion, func() (string, error) {
		return p.values.GetValue(filepath.Join(p.procRoot, "sys", "kernel", "osrelease"))
	})
	read(&props.APILevel, p.releaseVersion)
	read(&props.DeviceType, func() (string, error) {
		v, err := dmi("chassis_type")()
		if err != nil {
			return "", err
		}
		return ChassisName(v), nil
	})
	read(&props.Product, firstOf(dmi("product_name"), p.dtString("model")))
	read(&props.Brand, firstOf(dmi("sys_vendor"), p.dtVendor))
	read(&props.Manufacturer, firstOf(dmi("board_vendor"), p.dtVendor))
	read(&props.Serial, firstOf(dmi("product_serial"), p.dtString("serial-number"), p.cpuSerial))
	read(&props.Board, firstOf(dmi("board_name"), p.dtBoard))

	if err := ctx.Err(); err != nil {
		return collector.BuildProperties{}, err
	}
	if found == 0 {
		return collector.BuildProperties{}, fmt.Errorf("no build property readable: %w", errors.Join(errs...))
	}
	return props, nil
}

// releaseVersion reads VERSION_ID from os-release, falling back to
// usr/lib/os-release when the primary file does not exist.
func (p *Provider) releaseVersion() (string, error) {
	path := filepath.Join(p.etcRoot, "os-release")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		path = filepath.Join(filepath.Dir(p.etcRoot), "usr", "lib", "os-release")
	}

	kv, err := p.release.GetMap(path)
	if err != nil {
		return "", err
	}
	v, ok := kv["VERSION_ID"]
	if !ok {
		return "", fmt.Errorf("%q: VERSION_ID: %w", path, file.ErrNoValue)
	}
	return v, nil
}

// listSystemInterfaces reads the kernel interface table. IPv6 link-local
// addresses carry the interface name as zone.
func listSystemInterfaces() ([]collector.Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	result := make([]collector.Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			slog.Debug("failed to read interface addresses",
				slog.String("interface", iface.Name),
				slog.String("error", err.Error()))
			continue
		}

		literals := make([]string, 0, len(addrs))
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				literals = append(literals, addr.String())
				continue
			}
			lit := ipNet.IP.String()
			if ipNet.IP.To4() == nil && ipNet.IP.IsLinkLocalUnicast() {
				lit += "%" + iface.Name
			}
			literals = append(literals, lit)
		}

		result = append(result, collector.Interface{Name: iface.Name, Addresses: literals})
	}
	return result, nil
}
