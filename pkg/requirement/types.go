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

package requirement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NVIDIA/sparrow-recipe/pkg/version"
)

// Scope classifies how a dependency is used.
type Scope string

// Requirement scopes.
const (
	ScopeRuntime Scope = "runtime"
	ScopeTest    Scope = "test"
	ScopeTool    Scope = "tool"
)

var scopeOrder = map[Scope]int{ScopeRuntime: 0, ScopeTest: 1, ScopeTool: 2}

// Edge is a single dependency of the package.
type Edge struct {
	Target  string `json:"target" yaml:"target"`
	Version string `json:"version" yaml:"version"`
	Scope   Scope  `json:"scope" yaml:"scope"`
	// Visible marks dependencies whose headers are re-exported to consumers.
	Visible bool `json:"visible,omitempty" yaml:"visible,omitempty"`
	// Options are passed to the dependency itself (doxygen enable_app).
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Ref renders the edge as a "name/version" reference.
func (e Edge) Ref() string {
	return e.Target + "/" + e.Version
}

func (e Edge) String() string {
	s := fmt.Sprintf("%s (%s)", e.Ref(), e.Scope)
	if e.Visible {
		s += " visible"
	}
	return s
}

// Pin is a "name/version" reference. The version may be a bracketed range.
type Pin string

// Split returns the name and version parts of the pin.
func (p Pin) Split() (name, ver string) {
	name, ver, _ = strings.Cut(string(p), "/")
	return name, ver
}

// Validate checks the pin is name/version and that the version parses as a
// version or a range.
func (p Pin) Validate() error {
	name, ver := p.Split()
	if name == "" || ver == "" {
		return fmt.Errorf("invalid pin %q: expected name/version", p)
	}
	if version.IsRange(ver) {
		if _, err := version.ParseRange(ver); err != nil {
			return fmt.Errorf("invalid pin %q: %w", p, err)
		}
		return nil
	}
	if _, err := version.Parse(ver); err != nil {
		return fmt.Errorf("invalid pin %q: %w", p, err)
	}
	return nil
}

// Pins are the exact dependency references a variant uses. Empty pins
// disable the corresponding rule.
type Pins struct {
	Date      Pin `json:"date,omitempty" yaml:"date,omitempty"`
	JSON      Pin `json:"json,omitempty" yaml:"json,omitempty"`
	Doctest   Pin `json:"doctest,omitempty" yaml:"doctest,omitempty"`
	Catch2    Pin `json:"catch2,omitempty" yaml:"catch2,omitempty"`
	Benchmark Pin `json:"benchmark,omitempty" yaml:"benchmark,omitempty"`
	CMake     Pin `json:"cmake,omitempty" yaml:"cmake,omitempty"`
	Doxygen   Pin `json:"doxygen,omitempty" yaml:"doxygen,omitempty"`
	// DoxygenOptions are attached to the doxygen tool edge.
	DoxygenOptions map[string]string `json:"doxygenOptions,omitempty" yaml:"doxygenOptions,omitempty"`
	// BaselineTest are test requirements added regardless of options.
	BaselineTest []Pin `json:"baselineTest,omitempty" yaml:"baselineTest,omitempty"`
}

// Validate checks every non-empty pin.
func (p Pins) Validate() error {
	all := []Pin{p.Date, p.JSON, p.Doctest, p.Catch2, p.Benchmark, p.CMake, p.Doxygen}
	all = append(all, p.BaselineTest...)
	for _, pin := range all {
		if pin == "" {
			continue
		}
		if err := pin.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Sort orders edges by scope, then target, then version.
func Sort(edges []Edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Scope != b.Scope {
			return scopeOrder[a.Scope] < scopeOrder[b.Scope]
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Version < b.Version
	})
}

// Filter returns the edges with the given scope.
func Filter(edges []Edge, scope Scope) []Edge {
	var out []Edge
	for _, e := range edges {
		if e.Scope == scope {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the edge for target in scope.
func Find(edges []Edge, target string, scope Scope) (Edge, bool) {
	for _, e := range edges {
		if e.Target == target && e.Scope == scope {
			return e, true
		}
	}
	return Edge{}, false
}
