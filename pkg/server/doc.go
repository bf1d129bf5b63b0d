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

// Package server provides the HTTP server that fronts the recipe engine.
//
// The server keeps no state beyond its serving flag and readiness checks.
// Every API route is wrapped in the same middleware chain:
//
//   - Prometheus metrics (sparrow_api_*), errors counted by error code
//   - API version negotiation via Accept: application/vnd.nvidia.sparrow.v1+json
//   - X-Request-Id propagation (client tokens such as UUIDs or CI run IDs are
//     kept, anything else is replaced with a fresh UUID)
//   - panic recovery
//   - token bucket rate limiting (golang.org/x/time/rate)
//   - request body cap (MaxBodyBytes, 413 when the declared length exceeds it)
//   - one log record per request, at warn level for 5xx
//
// System endpoints are not rate limited:
//
//	GET /health   liveness, with version and uptime
//	GET /ready    503 until Start is listening or while a readiness check fails
//	GET /metrics  Prometheus exposition
//
// # Usage
//
//	s := server.New(
//	    server.WithName("sparrowd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/resolve": engine.HandleResolve,
//	    }),
//	    server.WithReadinessCheck("variants", api.VariantsReady(engine)),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr. The latter
// maps pkg/errors codes to HTTP statuses: invalid requests and unknown options
// to 400, unknown variants to 404, toolchain rejections to 422, rate limiting
// to 429 and everything unclassified to 500.
//
// # Configuration
//
// NewConfig reads PORT, SHUTDOWN_TIMEOUT_SECONDS and MAX_BODY_BYTES from the
// environment.
// Timeouts default to the values in pkg/defaults.
package server
