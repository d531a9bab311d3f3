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

// Package client builds the Kubernetes clientset the serializer uses to
// publish device snapshots to ConfigMaps (cm://namespace/name) and read them
// back.
//
// The default client is created once and cached:
//
//	cs, cfg, err := client.GetKubeClient()
//
// Kubeconfig discovery order for an empty path:
//  1. KUBECONFIG environment variable
//  2. ~/.kube/config, when it exists
//  3. in-cluster service account
//
// Tests substitute k8s.io/client-go/kubernetes/fake clientsets through the
// Interface alias.
package client
