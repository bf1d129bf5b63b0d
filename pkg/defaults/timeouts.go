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

package defaults

import "time"

// Handler timeouts for HTTP request processing.
const (
	// EvaluationHandlerTimeout bounds a single resolve or components request.
	EvaluationHandlerTimeout = 10 * time.Second

	// VariantCacheTTL is the cache duration advertised for variant listings.
	// Variant data is embedded in the binary and only changes on upgrade.
	VariantCacheTTL = 10 * time.Minute
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerReadinessCheckTimeout bounds all readiness checks of one /ready request.
	ServerReadinessCheckTimeout = 2 * time.Second
)

// Build timeouts for the external build driver and test runner.
const (
	// BuildTimeout bounds a full configure, build and install cycle.
	BuildTimeout = 60 * time.Minute

	// TestRunTimeout bounds a single consumer test executable.
	TestRunTimeout = 2 * time.Minute

	// InstallTimeout bounds copying the package layout and checksumming it.
	InstallTimeout = 5 * time.Minute

	// DetectProbeTimeout bounds one compiler version probe.
	DetectProbeTimeout = 10 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Kubernetes timeouts for ConfigMap operations.
const (
	// ConfigMapReadTimeout is the timeout for reading profiles from ConfigMaps.
	ConfigMapReadTimeout = 15 * time.Second

	// ConfigMapWriteTimeout is the timeout for writing results to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// OCI timeouts for registry operations.
const (
	// OCIPushTimeout bounds pushing a packaged layout to a registry.
	OCIPushTimeout = 10 * time.Minute
)
