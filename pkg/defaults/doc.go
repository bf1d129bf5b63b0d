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

// Package defaults provides centralized timeout constants for sparrowctl and
// sparrowd.
//
// Timeouts are organized by component:
//
//   - Handler timeouts: HTTP evaluation requests
//   - Server timeouts: HTTP server configuration
//   - Build timeouts: the external build driver, installer and test runner
//   - HTTP client timeouts: fetching remote profiles
//   - Kubernetes timeouts: ConfigMap profile input and result output
//   - OCI timeouts: pushing packaged layouts
//
// Import and use the constants directly:
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.BuildTimeout)
//	defer cancel()
package defaults
