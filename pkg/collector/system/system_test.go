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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/deviceinfo/pkg/collector"
	"github.com/NVIDIA/deviceinfo/pkg/collector/file"
)

// fakeTree lays out a minimal sysfs/procfs/etc tree under a temp dir.
type fakeTree struct {
	root string
}

func newFakeTree(t *testing.T) *fakeTree {
	t.Helper()
	return &fakeTree{root: t.TempDir()}
}

func (f *fakeTree) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *fakeTree) mkdir(t *testing.T, rel string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(f.root, rel), 0o755))
}

func (f *fakeTree) provider(opts ...Option) *Provider {
	base := []Option{
		WithSysRoot(filepath.Join(f.root, "sys")),
		WithProcRoot(filepath.Join(f.root, "proc")),
		WithEtcRoot(filepath.Join(f.root, "etc")),
	}
	return New(append(base, opts...)...)
}

func (f *fakeTree) populate(t *testing.T) {
	t.Helper()
	f.write(t, "proc/sys/kernel/osrelease", "6.8.0-45-generic\n")
	f.write(t, "etc/os-release", "NAME=\"Ubuntu\"\nVERSION_ID=\"24.04\"\n")
	f.write(t, "sys/class/dmi/id/chassis_type", "10\n")
	f.write(t, "sys/class/dmi/id/product_name", "XPS 13 9310\n")
	f.write(t, "sys/class/dmi/id/sys_vendor", "Dell Inc.\n")
	f.write(t, "sys/class/dmi/id/board_vendor", "Dell Inc.\n")
	f.write(t, "sys/class/dmi/id/product_serial", "ABC1234\n")
	f.write(t, "sys/class/dmi/id/board_name", "0DXP1F\n")
}

func TestNew_Defaults(t *testing.T) {
	p := New()
	assert.Equal(t, DefaultSysRoot, p.sysRoot)
	assert.Equal(t, DefaultProcRoot, p.procRoot)
	assert.Equal(t, DefaultEtcRoot, p.etcRoot)
	assert.NotNil(t, p.lister)

	p = New(WithSysRoot(""), WithProcRoot(""), WithEtcRoot(""), WithInterfaceLister(nil))
	assert.Equal(t, DefaultSysRoot, p.sysRoot)
	assert.NotNil(t, p.lister)
}

func TestBuildProperties(t *testing.T) {
	tree := newFakeTree(t)
	tree.populate(t)

	got, err := tree.provider().BuildProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, collector.BuildProperties{
		OSVersion:    "6.8.0-45-generic",
		APILevel:     "24.04",
		DeviceType:   "Notebook",
		Product:      "XPS 13 9310",
		Brand:        "Dell Inc.",
		Manufacturer: "Dell Inc.",
		Serial:       "ABC1234",
		Board:        "0DXP1F",
	}, got)
}

func TestBuildProperties_Partial(t *testing.T) {
	tree := newFakeTree(t)
	tree.write(t, "proc/sys/kernel/osrelease", "6.1.0\n")

	got, err := tree.provider().BuildProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "6.1.0", got.OSVersion)
	assert.Empty(t, got.APILevel)
	assert.Empty(t, got.Serial)
}

func TestBuildProperties_ReleaseFallback(t *testing.T) {
	tree := newFakeTree(t)
	tree.write(t, "usr/lib/os-release", "VERSION_ID='12'\n")

	got, err := tree.provider().BuildProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12", got.APILevel)
}

func TestBuildProperties_NothingReadable(t *testing.T) {
	tree := newFakeTree(t)

	_, err := tree.provider().BuildProperties(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no build property readable")
}

func TestBuildProperties_DeviceTree(t *testing.T) {
	tree := newFakeTree(t)
	tree.write(t, "proc/sys/kernel/osrelease", "6.6.31+rpt-rpi-v8\n")
	tree.write(t, "sys/firmware/devicetree/base/model", "Raspberry Pi 4 Model B Rev 1.4\x00")
	tree.write(t, "sys/firmware/devicetree/base/compatible", "raspberrypi,4-model-b\x00brcm,bcm2711\x00")
	tree.write(t, "proc/cpuinfo", "processor\t: 0\nBogoMIPS\t: 108.00\n\nRevision\t: c03114\nSerial\t\t: 10000000abcdef01\nModel\t\t: Raspberry Pi 4 Model B Rev 1.4\n")

	got, err := tree.provider().BuildProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, collector.BuildProperties{
		OSVersion:    "6.6.31+rpt-rpi-v8",
		Product:      "Raspberry Pi 4 Model B Rev 1.4",
		Brand:        "raspberrypi",
		Manufacturer: "raspberrypi",
		Serial:       "10000000abcdef01",
		Board:        "4-model-b",
	}, got)
}

func TestBuildProperties_DMIWinsOverDeviceTree(t *testing.T) {
	tree := newFakeTree(t)
	tree.populate(t)
	tree.write(t, "sys/firmware/devicetree/base/model", "ignored\x00")
	tree.write(t, "sys/firmware/devicetree/base/serial-number", "ignored\x00")
	tree.write(t, "sys/firmware/devicetree/base/compatible", "acme,board\x00")

	got, err := tree.provider().BuildProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "XPS 13 9310", got.Product)
	assert.Equal(t, "ABC1234", got.Serial)
	assert.Equal(t, "0DXP1F", got.Board)
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantVendor string
		wantBoard  string
		wantErr    bool
	}{
		{name: "vendor and board", content: "nvidia,p3768-0000+p3767-0000\x00nvidia,tegra234\x00", wantVendor: "nvidia", wantBoard: "p3768-0000+p3767-0000"},
		{name: "no vendor prefix", content: "generic-board\x00", wantBoard: "generic-board"},
		{name: "empty", content: "\x00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newFakeTree(t)
			tree.write(t, "sys/firmware/devicetree/base/compatible", tt.content)

			vendor, board, err := tree.provider().compatible()
			if tt.wantErr {
				assert.ErrorIs(t, err, file.ErrNoValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVendor, vendor)
			assert.Equal(t, tt.wantBoard, board)
		})
	}
}

func TestFirstOf(t *testing.T) {
	fail := func(msg string) func() (string, error) {
		return func() (string, error) { return "", errors.New(msg) }
	}
	ok := func(v string) func() (string, error) {
		return func() (string, error) { return v, nil }
	}

	v, err := firstOf(fail("a"), ok("b"), ok("c"))()
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = firstOf(fail("a"), fail("b"))()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
}

func TestBuildProperties_Canceled(t *testing.T) {
	tree := newFakeTree(t)
	tree.populate(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tree.provider().BuildProperties(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMACAddress(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testing.T, *fakeTree)
		want  string
	}{
		{
			name: "wireless preferred",
			setup: func(t *testing.T, f *fakeTree) {
				f.write(t, "sys/class/net/eth0/address", "11:22:33:44:55:66\n")
				f.write(t, "sys/class/net/wlan0/address", "AA:BB:CC:DD:EE:FF\n")
				f.mkdir(t, "sys/class/net/wlan0/wireless")
			},
			want: "aa:bb:cc:dd:ee:ff",
		},
		{
			name: "phy80211 marks wireless",
			setup: func(t *testing.T, f *fakeTree) {
				f.write(t, "sys/class/net/a0/address", "11:22:33:44:55:66\n")
				f.write(t, "sys/class/net/wlp2s0/address", "aa:bb:cc:00:00:01\n")
				f.mkdir(t, "sys/class/net/wlp2s0/phy80211")
			},
			want: "aa:bb:cc:00:00:01",
		},
		{
			name: "wired fallback skips loopback and zero",
			setup: func(t *testing.T, f *fakeTree) {
				f.write(t, "sys/class/net/lo/address", "00:00:00:00:00:01\n")
				f.write(t, "sys/class/net/dummy0/address", "00:00:00:00:00:00\n")
				f.write(t, "sys/class/net/eth0/address", "11:22:33:44:55:66\n")
			},
			want: "11:22:33:44:55:66",
		},
		{
			name: "no candidates",
			setup: func(t *testing.T, f *fakeTree) {
				f.write(t, "sys/class/net/lo/address", "00:00:00:00:00:00\n")
			},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newFakeTree(t)
			tt.setup(t, tree)

			got, err := tree.provider().MACAddress(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMACAddress_NoSysfs(t *testing.T) {
	_, err := newFakeTree(t).provider().MACAddress(context.Background())
	assert.Error(t, err)
}

func TestInterfaces_Lister(t *testing.T) {
	want := []collector.Interface{{Name: "eth0", Addresses: []string{"10.0.0.1/24"}}}
	p := New(WithInterfaceLister(func() ([]collector.Interface, error) { return want, nil }))

	got, err := p.Interfaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInterfaces_ListerError(t *testing.T) {
	p := New(WithInterfaceLister(func() ([]collector.Interface, error) {
		return nil, errors.New("netlink unavailable")
	}))

	_, err := p.Interfaces(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netlink unavailable")
}

func TestInterfaces_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Interfaces(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInterfaces_System(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping system interface test in short mode")
	}

	ifaces, err := New().Interfaces(context.Background())
	if err != nil {
		t.Skipf("interface table unavailable: %v", err)
	}
	for _, iface := range ifaces {
		assert.NotEmpty(t, iface.Name)
	}
}

func TestCollect_FakeTree(t *testing.T) {
	tree := newFakeTree(t)
	tree.populate(t)
	tree.write(t, "sys/class/net/eth0/address", "11:22:33:44:55:66\n")

	p := tree.provider(WithInterfaceLister(func() ([]collector.Interface, error) {
		return []collector.Interface{
			{Name: "lo", Addresses: []string{"127.0.0.1", "::1"}},
			{Name: "eth0", Addresses: []string{"192.168.1.5", "fe80::1%eth0"}},
		}, nil
	}))

	s := collector.New(p).Collect(context.Background())
	assert.Equal(t, []string{"192.168.1.5"}, s.IPv4())
	assert.Equal(t, []string{"FE80::1"}, s.IPv6())
	assert.Equal(t, "11:22:33:44:55:66", s.MAC())
	assert.Equal(t, "Notebook", s.DeviceType())
	assert.Equal(t, "24.04", s.APILevel())
}

func TestChassisName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"3", "Desktop"},
		{"9", "Laptop"},
		{" 23 ", "Rack Mount Chassis"},
		{"36", "Stick PC"},
		{"99", "99"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ChassisName(tt.code))
		})
	}
}
