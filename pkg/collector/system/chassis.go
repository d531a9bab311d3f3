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

import "strings"

// chassisNames maps SMBIOS chassis type codes to names.
var chassisNames = map[string]string{
	"1":  "Other",
	"2":  "Unknown",
	"3":  "Desktop",
	"4":  "Low Profile Desktop",
	"5":  "Pizza Box",
	"6":  "Mini Tower",
	"7":  "Tower",
	"8":  "Portable",
	"9":  "Laptop",
	"10": "Notebook",
	"11": "Hand Held",
	"12": "Docking Station",
	"13": "All in One",
	"14": "Sub Notebook",
	"15": "Space-saving",
	"16": "Lunch Box",
	"17": "Main Server Chassis",
	"18": "Expansion Chassis",
	"19": "SubChassis",
	"20": "Bus Expansion Chassis",
	"21": "Peripheral Chassis",
	"22": "RAID Chassis",
	"23": "Rack Mount Chassis",
	"24": "Sealed-case PC",
	"25": "Multi-system Chassis",
	"26": "Compact PCI",
	"27": "Advanced TCA",
	"28": "Blade",
	"29": "Blade Enclosure",
	"30": "Tablet",
	"31": "Convertible",
	"32": "Detachable",
	"33": "IoT Gateway",
	"34": "Embedded PC",
	"35": "Mini PC",
	"36": "Stick PC",
}

// ChassisName decodes an SMBIOS chassis type code. Unknown codes are
// returned unchanged.
func ChassisName(code string) string {
	code = strings.TrimSpace(code)
	if name, ok := chassisNames[code]; ok {
		return name
	}
	return code
}
