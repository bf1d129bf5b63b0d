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

// Package api wires the recipe engine into the HTTP server run by sparrowd.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        os.Exit(1)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET  /v1/variants   - list variants with their options and minimum toolchains
//   - POST /v1/resolve    - evaluate a variant for a host (JSON or YAML body)
//   - POST /v1/components - declare the components of a finished build
//
// System endpoints:
//   - GET /health  - liveness probe
//   - GET /ready   - readiness probe
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl -s -X POST localhost:8080/v1/resolve \
//	  -H 'Content-Type: application/json' \
//	  -d '{"os":"Linux","options":{"export_json_reader":"True"},
//	       "toolchain":{"family":"gcc","version":"13.2","standard":"20"}}'
//
// Rejections carry the error code of the failing stage: UNKNOWN_OPTION and
// INVALID_REQUEST map to 400, STANDARD_TOO_LOW and INCOMPATIBLE_TOOLCHAIN
// to 422.
//
// # Configuration
//
// PORT, SHUTDOWN_TIMEOUT_SECONDS and LOG_LEVEL are read from the environment.
package api
