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
	"maps"

	"github.com/NVIDIA/sparrow-recipe/pkg/option"
)

// Resolve returns the dependency edges implied by set.
//
// The JSON library is either a visible runtime dependency (exported reader)
// or a private test dependency (tests only), never both.
func Resolve(set *option.Set, pins Pins) []Edge {
	b := &builder{seen: make(map[key]int)}

	if set.Bool(option.UseDatePolyfill) {
		b.add(pins.Date, ScopeRuntime, false, nil)
	}

	if set.Bool(option.ExportJSONReader) {
		b.add(pins.JSON, ScopeRuntime, true, nil)
	} else if set.Bool(option.BuildTests) {
		b.add(pins.JSON, ScopeTest, false, nil)
	}

	if set.Bool(option.BuildTests) {
		b.add(pins.Doctest, ScopeTest, false, nil)
		b.add(pins.Catch2, ScopeTest, false, nil)
	}

	if set.Bool(option.BuildBenchmarks) {
		b.add(pins.Benchmark, ScopeTest, false, nil)
	}

	for _, pin := range pins.BaselineTest {
		b.add(pin, ScopeTest, false, nil)
	}

	b.add(pins.CMake, ScopeTool, false, nil)
	if set.Bool(option.GenerateDocumentation) {
		b.add(pins.Doxygen, ScopeTool, false, pins.DoxygenOptions)
	}

	Sort(b.edges)
	return b.edges
}

type key struct {
	target string
	scope  Scope
}

type builder struct {
	edges []Edge
	seen  map[key]int
}

// add appends an edge unless one already exists for the same target and
// scope, in which case visibility is widened.
func (b *builder) add(pin Pin, scope Scope, visible bool, opts map[string]string) {
	if pin == "" {
		return
	}
	name, ver := pin.Split()
	k := key{target: name, scope: scope}
	if i, ok := b.seen[k]; ok {
		b.edges[i].Visible = b.edges[i].Visible || visible
		return
	}
	b.seen[k] = len(b.edges)
	b.edges = append(b.edges, Edge{
		Target:  name,
		Version: ver,
		Scope:   scope,
		Visible: visible,
		Options: maps.Clone(opts),
	})
}
