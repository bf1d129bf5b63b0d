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

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "sparrow"

var (
	apiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API requests by route, method and HTTP status.",
		},
		[]string{"route", "method", "status"},
	)

	apiErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "API error responses by route and error code.",
		},
		[]string{"route", "code"},
	)

	// evaluations finish in milliseconds; the upper buckets catch slow
	// ConfigMap or profile reads behind a request
	apiLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request latency by route.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route"},
	)

	apiInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "api",
			Name:      "requests_in_flight",
			Help:      "API requests currently being served.",
		},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "API requests rejected by the rate limiter.",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "api",
			Name:      "panics_total",
			Help:      "Handler panics turned into 500 responses.",
		},
	)

	readinessFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "readiness",
			Name:      "check_failures_total",
			Help:      "Failed readiness checks by check name.",
		},
		[]string{"check"},
	)
)

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiInFlight.Inc()
		defer apiInFlight.Dec()

		rec := recordStatus(w)
		start := time.Now()
		next(rec, r)

		route := routeLabel(r)
		apiLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		apiRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.Status())).Inc()
		if rec.errorCode != "" {
			apiErrors.WithLabelValues(route, string(rec.errorCode)).Inc()
		}
	}
}

// routeLabel keeps label cardinality bounded to the registered patterns.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
