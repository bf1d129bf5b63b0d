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

package params

import (
	"sort"
	"strings"

	"github.com/NVIDIA/sparrow-recipe/pkg/option"
	"github.com/NVIDIA/sparrow-recipe/pkg/toolchain"
)

// Well-known parameter names.
const (
	BuildSharedLibs         = "BUILD_SHARED_LIBS"
	PositionIndependentCode = "CMAKE_POSITION_INDEPENDENT_CODE"
	BuildDocs               = "BUILD_DOCS"
	UseLargeIntPlaceholders = "USE_LARGE_INT_PLACEHOLDERS"
)

// Map is a flat parameter name to boolean mapping.
type Map map[string]bool

// Names returns the parameter names, sorted.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// CacheArgs renders the map as sorted -DKEY=ON|OFF arguments.
func (m Map) CacheArgs() []string {
	args := make([]string, 0, len(m))
	for _, k := range m.Names() {
		args = append(args, "-D"+k+"="+onOff(m[k]))
	}
	return args
}

// Strings renders the map with "ON"/"OFF" values.
func (m Map) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = onOff(v)
	}
	return out
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// Spec describes how a variant maps options to parameters.
type Spec struct {
	// Options lists the options that become parameters.
	Options []string `json:"options" yaml:"options"`
	// Rename overrides the default upper-cased parameter name.
	Rename map[string]string `json:"rename,omitempty" yaml:"rename,omitempty"`
	// Forced parameters set per toolchain family, applied after options.
	Forced map[toolchain.Family]map[string]bool `json:"forced,omitempty" yaml:"forced,omitempty"`
}

// DefaultRename is the option to parameter mapping shared by all variants.
var DefaultRename = map[string]string{
	option.Shared: BuildSharedLibs,
	option.FPIC:   PositionIndependentCode,
}

// ParamName returns the parameter an option maps to under spec.
func (s Spec) ParamName(opt string) string {
	if name, ok := s.Rename[opt]; ok {
		return name
	}
	if name, ok := DefaultRename[opt]; ok {
		return name
	}
	return strings.ToUpper(opt)
}

// Generate builds the parameter map for set and identity.
func Generate(set *option.Set, identity toolchain.Identity, spec Spec) Map {
	m := make(Map, len(spec.Options)+1)
	for _, opt := range spec.Options {
		m[spec.ParamName(opt)] = set.Bool(opt)
	}
	for name, v := range spec.Forced[identity.Family] {
		m[name] = v
	}
	return m
}
