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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/header"
	"github.com/NVIDIA/sparrow-recipe/pkg/serializer"
	"github.com/NVIDIA/sparrow-recipe/pkg/server"
	"github.com/NVIDIA/sparrow-recipe/pkg/toolchain"
)

// maxRequestBytes bounds request bodies; requests are a handful of fields.
const maxRequestBytes = 1 << 20

var (
	// variantCacheTTL can be overridden in tests
	variantCacheTTL = defaults.VariantCacheTTL
)

// VariantSummary is the public description of a variant.
type VariantSummary struct {
	Name        string                 `json:"name" yaml:"name"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	PackageType string                 `json:"packageType" yaml:"packageType"`
	MinStandard string                 `json:"minStandard" yaml:"minStandard"`
	Compilers   toolchain.VersionTable `json:"compilers" yaml:"compilers"`
	Options     []OptionSpec           `json:"options" yaml:"options"`
}

// VariantList is the response of GET /v1/variants.
type VariantList struct {
	header.Header `json:",inline" yaml:",inline"`

	Default  string           `json:"default" yaml:"default"`
	Variants []VariantSummary `json:"variants" yaml:"variants"`
}

// List describes every variant in the store.
func (e *Engine) List() *VariantList {
	list := &VariantList{Default: DefaultVariant}
	for _, v := range e.store.Variants() {
		list.Variants = append(list.Variants, VariantSummary{
			Name:        v.Name(),
			Description: v.Metadata.Description,
			PackageType: v.Spec.PackageType,
			MinStandard: v.Spec.MinStandard,
			Compilers:   v.Spec.Compilers,
			Options:     v.Spec.Options,
		})
	}
	list.Init(header.KindVariantList, "", e.version)
	return list
}

// HandleVariants serves GET /v1/variants.
func (e *Engine) HandleVariants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(variantCacheTTL.Seconds())))
	serializer.RespondJSON(w, http.StatusOK, e.List())
}

// HandleResolve serves POST /v1/resolve. The body is a Request in JSON or
// YAML; the response is an Evaluation.
func (e *Engine) HandleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.EvaluationHandlerTimeout)
	defer cancel()

	var req Request
	if err := decodeBody(w, r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid resolve request", nil)
		return
	}

	slog.Debug("resolve request",
		"variant", req.Variant,
		"os", req.OS,
		"toolchain", req.Toolchain.String(),
		"overrides", len(req.Options),
	)

	ev, err := e.Evaluate(ctx, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to evaluate recipe", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, ev)
}

// HandleComponents serves POST /v1/components. The body is a DeclareRequest
// in JSON or YAML; the response is a Manifest.
func (e *Engine) HandleComponents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.EvaluationHandlerTimeout)
	defer cancel()

	var req DeclareRequest
	if err := decodeBody(w, r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid components request", nil)
		return
	}

	m, err := e.Declare(ctx, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to declare components", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, m)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{allowed},
		})
}

// decodeBody decodes a JSON body, or YAML when the content type says so.
func decodeBody(w http.ResponseWriter, r *http.Request, out any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New(errors.ErrCodeInvalidRequest, "request body is required")
	}
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "request body is required")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		err = yaml.Unmarshal(body, out)
	default:
		dec := json.NewDecoder(strings.NewReader(string(body)))
		dec.DisallowUnknownFields()
		err = dec.Decode(out)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode request body", err)
	}
	return nil
}
