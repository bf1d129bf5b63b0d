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
	"log/slog"
	"time"

	"github.com/NVIDIA/sparrow-recipe/pkg/component"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/header"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
	"github.com/NVIDIA/sparrow-recipe/pkg/params"
	"github.com/NVIDIA/sparrow-recipe/pkg/requirement"
	"github.com/NVIDIA/sparrow-recipe/pkg/toolchain"
)

// DefaultVariant is used when a request names no variant.
const DefaultVariant = "sparrow"

// PackageName is the package every variant produces. Scoped option
// overrides select it by this name.
const PackageName = "sparrow"

// Request selects a variant and describes the host it is evaluated for.
type Request struct {
	Variant   string             `json:"variant,omitempty" yaml:"variant,omitempty"`
	Options   map[string]string  `json:"options,omitempty" yaml:"options,omitempty"`
	OS        option.OS          `json:"os" yaml:"os"`
	Toolchain toolchain.Identity `json:"toolchain" yaml:"toolchain"`
}

// DeclareRequest asks for the components of a finished build.
type DeclareRequest struct {
	Variant        string            `json:"variant,omitempty" yaml:"variant,omitempty"`
	Options        map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	OS             option.OS         `json:"os" yaml:"os"`
	BuildType      string            `json:"buildType" yaml:"buildType"`
	PackageVersion string            `json:"packageVersion,omitempty" yaml:"packageVersion,omitempty"`
}

// Evaluation is the result of evaluating a variant for a host.
type Evaluation struct {
	header.Header `json:",inline" yaml:",inline"`

	Variant      string             `json:"variant" yaml:"variant"`
	OS           option.OS          `json:"os" yaml:"os"`
	Toolchain    toolchain.Identity `json:"toolchain" yaml:"toolchain"`
	Options      *option.Set        `json:"options" yaml:"options"`
	Requirements []requirement.Edge `json:"requirements" yaml:"requirements"`
	Parameters   params.Map         `json:"parameters" yaml:"parameters"`
}

// Manifest lists the components a build produced.
type Manifest struct {
	header.Header `json:",inline" yaml:",inline"`

	Variant        string                 `json:"variant" yaml:"variant"`
	BuildType      string                 `json:"buildType" yaml:"buildType"`
	PackageVersion string                 `json:"packageVersion,omitempty" yaml:"packageVersion,omitempty"`
	Options        *option.Set            `json:"options" yaml:"options"`
	Components     []component.Descriptor `json:"components" yaml:"components"`
}

// Engine evaluates requests against a variant store.
type Engine struct {
	store   *Store
	version string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithVersion sets the tool version stamped into result headers.
func WithVersion(v string) EngineOption {
	return func(e *Engine) {
		e.version = v
	}
}

// WithStore replaces the embedded variant store.
func WithStore(s *Store) EngineOption {
	return func(e *Engine) {
		e.store = s
	}
}

// NewEngine returns an Engine over the embedded variants unless WithStore
// is given.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		s, err := DefaultStore()
		if err != nil {
			return nil, err
		}
		e.store = s
	}
	return e, nil
}

// Store returns the variant store the engine evaluates against.
func (e *Engine) Store() *Store {
	return e.store
}

// Options resolves the option state of a variant for targetOS.
func (e *Engine) Options(variant string, overrides map[string]string, targetOS option.OS) (*Variant, *option.Set, error) {
	v, err := e.store.Get(variantOrDefault(variant))
	if err != nil {
		return nil, nil, err
	}
	targetOS, err = normalizeOS(targetOS)
	if err != nil {
		return nil, nil, err
	}
	set, err := option.Resolve(v.Declarations(), overrides, targetOS)
	if err != nil {
		return nil, nil, err
	}
	return v, set, nil
}

// OptionState is the resolved option state of a variant for one target OS.
type OptionState struct {
	header.Header `json:",inline" yaml:",inline"`

	Variant string       `json:"variant" yaml:"variant"`
	OS      option.OS    `json:"os" yaml:"os"`
	Options *option.Set  `json:"options" yaml:"options"`
	Pruned  []string     `json:"pruned,omitempty" yaml:"pruned,omitempty"`
	Schema  []OptionSpec `json:"schema" yaml:"schema"`
}

// State resolves options like Options and reports which declared options
// were pruned for the target.
func (e *Engine) State(variant string, overrides map[string]string, targetOS option.OS) (*OptionState, error) {
	v, set, err := e.Options(variant, overrides, targetOS)
	if err != nil {
		return nil, err
	}
	targetOS, _ = normalizeOS(targetOS)
	st := &OptionState{
		Variant: v.Name(),
		OS:      targetOS,
		Options: set,
		Schema:  v.Spec.Options,
	}
	for _, name := range v.Declarations().Names() {
		if !set.Has(name) {
			st.Pruned = append(st.Pruned, name)
		}
	}
	st.Init(header.KindOptionState, "", e.version)
	return st, nil
}

// Evaluate resolves options, validates the toolchain, resolves requirements
// and generates build parameters.
func (e *Engine) Evaluate(ctx context.Context, req Request) (ev *Evaluation, err error) {
	start := time.Now()
	defer func() { observe(variantOrDefault(req.Variant), "evaluate", start, err) }()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "evaluation canceled", err)
	}

	if req.Toolchain.Family == "" || req.Toolchain.Version == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "toolchain family and version are required")
	}
	// aliases fold onto the canonical names the version tables use
	if f, ferr := toolchain.ParseFamily(string(req.Toolchain.Family)); ferr == nil {
		req.Toolchain.Family = f
	}

	v, set, err := e.Options(req.Variant, req.Options, req.OS)
	if err != nil {
		return nil, err
	}
	req.OS, _ = normalizeOS(req.OS)

	if err := toolchain.Validate(req.Toolchain, v.Spec.MinStandard, v.Spec.Compilers); err != nil {
		return nil, err
	}

	ev = &Evaluation{
		Variant:      v.Name(),
		OS:           req.OS,
		Toolchain:    req.Toolchain,
		Options:      set,
		Requirements: requirement.Resolve(set, v.Spec.Pins),
		Parameters:   params.Generate(set, req.Toolchain, v.Spec.Params),
	}
	ev.Init(header.KindRecipeEvaluation, "", e.version)

	slog.Debug("recipe evaluated",
		"variant", ev.Variant,
		"os", ev.OS,
		"toolchain", ev.Toolchain.String(),
		"options", set.String(),
		"requirements", len(ev.Requirements),
	)
	return ev, nil
}

// Declare resolves options and declares the components of a finished build.
func (e *Engine) Declare(ctx context.Context, req DeclareRequest) (m *Manifest, err error) {
	start := time.Now()
	defer func() { observe(variantOrDefault(req.Variant), "declare", start, err) }()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "declaration canceled", err)
	}
	if req.BuildType == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "build type is required")
	}

	v, set, err := e.Options(req.Variant, req.Options, req.OS)
	if err != nil {
		return nil, err
	}

	descs, err := component.Declare(set, req.BuildType, req.PackageVersion, v.Spec.Components)
	if err != nil {
		return nil, err
	}

	m = &Manifest{
		Variant:        v.Name(),
		BuildType:      req.BuildType,
		PackageVersion: req.PackageVersion,
		Options:        set,
		Components:     descs,
	}
	m.Init(header.KindComponentManifest, "", e.version)
	return m, nil
}

// normalizeOS folds the target OS onto its canonical spelling so pruning
// sees the same value on every entry point.
func normalizeOS(targetOS option.OS) (option.OS, error) {
	if targetOS == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "target os is required")
	}
	canonical, err := option.ParseOS(string(targetOS))
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInvalidRequest, "unsupported target os", err,
			map[string]any{"os": string(targetOS), "supported": option.SupportedOSes()})
	}
	return canonical, nil
}

func variantOrDefault(name string) string {
	if name == "" {
		return DefaultVariant
	}
	return name
}

func observe(variant, operation string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = string(errors.CodeOf(err))
		if errors.CodeOf(err) == errors.ErrCodeNotFound {
			variant = "unknown"
		}
	}
	evaluationDuration.WithLabelValues(variant, operation).Observe(time.Since(start).Seconds())
	evaluationsTotal.WithLabelValues(variant, operation, result).Inc()
}
