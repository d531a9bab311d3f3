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

// Package system implements collector.Provider for Linux hosts.
//
// Facts come from the following sources, all relative to configurable roots
// so tests can point the provider at a fake tree:
//
//	interfaces      net.Interfaces (injectable via WithInterfaceLister)
//	mac             <sys>/class/net/<iface>/address, wireless interfaces first
//	osVersion       <proc>/sys/kernel/osrelease
//	apiLevel        VERSION_ID from <etc>/os-release (or usr/lib/os-release)
//	deviceType      <sys>/class/dmi/id/chassis_type, decoded
//	product         <sys>/class/dmi/id/product_name, else device tree model
//	brand           <sys>/class/dmi/id/sys_vendor, else compatible vendor
//	manufacturer    <sys>/class/dmi/id/board_vendor, else compatible vendor
//	serial          <sys>/class/dmi/id/product_serial, else device tree
//	                serial-number, else Serial from <proc>/cpuinfo
//	board           <sys>/class/dmi/id/board_name, else compatible board
//
// The device tree lives under <sys>/firmware/devicetree/base. Its string
// properties are NUL-separated; the first compatible entry is split at the
// comma into vendor and board.
//
// Missing individual files yield empty values. BuildProperties only fails
// when none of its sources can be read.
package system
