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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sparrow_recipe_evaluation_duration_seconds",
			Help:    "Duration of recipe evaluations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"variant", "operation"},
	)

	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sparrow_recipe_evaluations_total",
			Help: "Total number of recipe evaluations by outcome",
		},
		[]string{"variant", "operation", "result"},
	)

	// Variant store cache metrics
	variantCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sparrow_recipe_variant_cache_hits_total",
			Help: "Total number of variant store cache hits",
		},
	)
	variantCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sparrow_recipe_variant_cache_misses_total",
			Help: "Total number of variant store cache misses (initial loads)",
		},
	)
)
