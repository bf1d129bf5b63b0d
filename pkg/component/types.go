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

package component

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Property keys attached to descriptors.
const (
	PropertyCMakeTargetName = "cmake_target_name"
	PropertyPkgConfigName   = "pkg_config_name"
)

// Descriptor is one installable component of the package.
type Descriptor struct {
	Name        string            `json:"name" yaml:"name"`
	DisplayName string            `json:"displayName" yaml:"displayName"`
	Artifacts   []string          `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Requires    []string          `json:"requires,omitempty" yaml:"requires,omitempty"`
	Properties  map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	HeaderOnly  bool              `json:"headerOnly,omitempty" yaml:"headerOnly,omitempty"`
}

// Conditional adds requirements when Option is true.
type Conditional struct {
	Option   string   `json:"option" yaml:"option"`
	Requires []string `json:"requires" yaml:"requires"`
}

// Template describes a component before options are applied.
type Template struct {
	Name string `json:"name" yaml:"name"`
	// Artifact is the library base name, before the debug suffix.
	Artifact string `json:"artifact,omitempty" yaml:"artifact,omitempty"`
	// EnabledBy is the option that turns the component on. Empty means always.
	EnabledBy  string            `json:"enabledBy,omitempty" yaml:"enabledBy,omitempty"`
	Requires   []string          `json:"requires,omitempty" yaml:"requires,omitempty"`
	When       []Conditional     `json:"when,omitempty" yaml:"when,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Spec is the component layout of a variant.
type Spec struct {
	HeaderOnly bool       `json:"headerOnly,omitempty" yaml:"headerOnly,omitempty"`
	Components []Template `json:"components" yaml:"components"`
	// DebugSuffix is appended to artifact names of debug builds.
	DebugSuffix string `json:"debugSuffix,omitempty" yaml:"debugSuffix,omitempty"`
	// DebugSuffixSince is the first package version that uses DebugSuffix.
	DebugSuffixSince string `json:"debugSuffixSince,omitempty" yaml:"debugSuffixSince,omitempty"`
}

var acronyms = map[string]string{
	"json": "JSON",
	"csv":  "CSV",
	"ipc":  "IPC",
}

// DisplayName renders a component name for humans ("json_reader" becomes
// "JSON Reader").
func DisplayName(name string) string {
	caser := cases.Title(language.English)
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		if a, ok := acronyms[strings.ToLower(w)]; ok {
			words[i] = a
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
