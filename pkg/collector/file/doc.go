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

// Package file parses small text files of the kind found under /proc, /sys
// and /etc.
//
// A Parser reads a file up to a size limit, validates it as UTF-8 and splits
// it into trimmed entries. Three views are offered:
//
//	p := file.NewParser(file.WithVTrimChars(`"'`))
//	lines, err := p.GetLines("/proc/modules")     // non-empty entries
//	kv, err := p.GetMap("/etc/os-release")         // key=value pairs
//	v, err := p.GetValue("/sys/class/dmi/id/sys_vendor") // single value
//
// Comment lines starting with "#" are skipped by default. Errors wrap the
// underlying os error, so errors.Is(err, fs.ErrNotExist) works for missing
// files.
package file
