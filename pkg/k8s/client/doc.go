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

// Package client provides the shared Kubernetes client used for ConfigMap
// profile input and result output.
//
// GetKubeClient builds the client once per process and returns the cached
// instance afterwards:
//
//	cs, _, err := client.GetKubeClient()
//	cm, err := cs.CoreV1().ConfigMaps("ci").Get(ctx, "gcc13-profile", metav1.GetOptions{})
//
// Configuration is discovered in order: an explicit kubeconfig path, the
// KUBECONFIG environment variable, ~/.kube/config, then the in-cluster
// service account. GetKubeClientWithConfig bypasses the cache for an
// explicit path.
package client
