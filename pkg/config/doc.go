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

// Package config loads the optional deviceinfo YAML configuration file.
//
//	collector:
//	  sysRoot: /sys
//	  procRoot: /proc
//	  etcRoot: /etc
//	  timeout: 10s
//	plugin:
//	  privacyRisk: LOW
//	server:
//	  address: ""
//	  port: 8080
//	  rateLimit: 100
//	  rateLimitBurst: 200
//
// Every key is optional; missing keys keep the values from Default.
// Unknown keys are rejected.
package config
