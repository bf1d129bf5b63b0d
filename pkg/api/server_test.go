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

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/recipe"
	"github.com/NVIDIA/sparrow-recipe/pkg/server"
)

// Serve blocks until shutdown, so these tests exercise the route table
// through the same server wiring instead.

func TestConstants(t *testing.T) {
	if name != "sparrowd" {
		t.Errorf("name = %q, want %q", name, "sparrowd")
	}

	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}

	if version == "" {
		t.Error("version should not be empty")
	}
	if commit == "" {
		t.Error("commit should not be empty")
	}
	if date == "" {
		t.Error("date should not be empty")
	}
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	e, err := recipe.NewEngine(recipe.WithVersion("test"))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	cfg := server.NewConfig()
	cfg.RateLimit = 1000
	cfg.RateLimitBurst = 1000
	s := server.New(server.WithConfig(cfg), server.WithHandler(Routes(e)))
	return s.Handler()
}

func TestRouteConfiguration(t *testing.T) {
	e, err := recipe.NewEngine()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	routes := Routes(e)
	for _, path := range []string{PathVariants, PathResolve, PathComponents} {
		if h, ok := routes[path]; !ok || h == nil {
			t.Errorf("expected %s route to exist", path)
		}
	}
	if len(routes) != 3 {
		t.Errorf("expected exactly 3 routes, got %d", len(routes))
	}
}

func TestEndpoints(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"variants", http.MethodGet, PathVariants, "", http.StatusOK},
		{"resolve", http.MethodPost, PathResolve,
			`{"os":"Linux","toolchain":{"family":"gcc","version":"12"}}`, http.StatusOK},
		{"resolve standard too low", http.MethodPost, PathResolve,
			`{"os":"Linux","toolchain":{"family":"gcc","version":"12","standard":"17"}}`, http.StatusUnprocessableEntity},
		{"components", http.MethodPost, PathComponents,
			`{"os":"Windows","buildType":"Release"}`, http.StatusOK},
		{"resolve wrong method", http.MethodPut, PathResolve, "", http.StatusMethodNotAllowed},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"index", http.MethodGet, "/", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d; body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if w.Header().Get("X-Request-Id") == "" && tt.path != "/health" {
				t.Error("expected X-Request-Id header to be set")
			}
		})
	}
}

func TestConcurrentResolve(t *testing.T) {
	h := newTestHandler(t)

	body := `{"os":"Linux","options":{"export_json_reader":"True","build_tests":"True"},` +
		`"toolchain":{"family":"clang","version":"18.1.8"}}`

	var wg sync.WaitGroup
	errs := make(chan string, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, PathResolve, strings.NewReader(body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				errs <- w.Body.String()
				return
			}
			var ev struct {
				Requirements []struct {
					Target string `json:"target"`
					Scope  string `json:"scope"`
				} `json:"requirements"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &ev); err != nil {
				errs <- err.Error()
				return
			}
			for _, r := range ev.Requirements {
				if r.Target == "nlohmann_json" && r.Scope == "test" {
					errs <- "exported reader must not add a test-only json edge"
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

func TestVariantsReady(t *testing.T) {
	e, err := recipe.NewEngine()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	if err := VariantsReady(e)(context.Background()); err != nil {
		t.Errorf("expected embedded variants to be ready, got %v", err)
	}

	empty, err := recipe.NewEngine(recipe.WithStore(&recipe.Store{}))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	err = VariantsReady(empty)(context.Background())
	if errors.CodeOf(err) != errors.ErrCodeUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE for an empty store, got %v", err)
	}

	if err := VariantsReady(nil)(context.Background()); err == nil {
		t.Error("expected a nil engine to fail readiness")
	}
}
