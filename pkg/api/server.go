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
	"log/slog"
	"net/http"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/logging"
	"github.com/NVIDIA/sparrow-recipe/pkg/recipe"
	"github.com/NVIDIA/sparrow-recipe/pkg/server"
)

const (
	name           = "sparrowd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/sparrow-recipe/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Route paths served by sparrowd.
const (
	PathVariants   = "/v1/variants"
	PathResolve    = "/v1/resolve"
	PathComponents = "/v1/components"
)

// Routes returns the API routes backed by e.
func Routes(e *recipe.Engine) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		PathVariants:   e.HandleVariants,
		PathResolve:    e.HandleResolve,
		PathComponents: e.HandleComponents,
	}
}

// CheckVariants names the readiness check that guards the variant store.
const CheckVariants = "variants"

// VariantsReady fails while the engine has no variant to evaluate, including
// when the embedded variant data did not load.
func VariantsReady(e *recipe.Engine) server.ReadinessCheck {
	return func(context.Context) error {
		if e == nil || e.Store() == nil {
			if _, err := recipe.DefaultStore(); err != nil {
				return errors.Wrap(errors.ErrCodeUnavailable, "recipe variants failed to load", err)
			}
			return errors.New(errors.ErrCodeUnavailable, "recipe engine not initialized")
		}
		if len(e.Store().Names()) == 0 {
			return errors.New(errors.ErrCodeUnavailable, "no recipe variants loaded")
		}
		return nil
	}
}

// Serve starts the API server and blocks until shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	e, err := recipe.NewEngine(recipe.WithVersion(version))
	if err != nil {
		slog.Error("failed to load recipe variants", "error", err)
		return err
	}
	slog.Info("variants loaded", "variants", e.Store().Names())

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(e)),
		server.WithReadinessCheck(CheckVariants, VariantsReady(e)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
