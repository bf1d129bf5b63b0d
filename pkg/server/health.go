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
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/serializer"
)

// ReadinessCheck reports whether something the API depends on can serve.
type ReadinessCheck func(ctx context.Context) error

// States reported by /health and /ready.
const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"

	checkOK         = "ok"
	checkNotServing = "server is not accepting requests"
)

// HealthStatus is the body of /health and /ready.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// handleHealth reports liveness. It never consults readiness checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	p := HealthStatus{
		Status:    StatusHealthy,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC(),
	}
	if started := s.started.Load(); started != nil {
		p.Uptime = time.Since(*started).Truncate(time.Second).String()
	}
	serializer.RespondJSON(w, http.StatusOK, p)
}

// handleReady reports 200 only while the server accepts requests and every
// registered check passes.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	p := HealthStatus{
		Status:    StatusReady,
		Version:   s.config.Version,
		Checks:    s.runChecks(r.Context()),
		Timestamp: time.Now().UTC(),
	}
	if !s.serving.Load() {
		p.Checks["server"] = checkNotServing
	}

	status := http.StatusOK
	for _, result := range p.Checks {
		if result != checkOK {
			p.Status = StatusNotReady
			status = http.StatusServiceUnavailable
			break
		}
	}
	serializer.RespondJSON(w, status, p)
}

// runChecks runs the checks in name order under one shared deadline.
func (s *Server) runChecks(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, defaults.ServerReadinessCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names)+1)
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			readinessFailures.WithLabelValues(name).Inc()
			results[name] = err.Error()
			continue
		}
		results[name] = checkOK
	}
	return results
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"method not allowed", false, nil)
	return false
}
