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

package toolchain

import (
	"fmt"
	"strings"
)

// Family is a compiler family.
type Family string

// Known compiler families.
const (
	GCC        Family = "gcc"
	Clang      Family = "clang"
	AppleClang Family = "apple-clang"
	MSVC       Family = "msvc"
	IntelCC    Family = "intel-cc"
)

// ParseFamily parses a compiler family name. Common aliases ("g++",
// "appleclang", "visual studio") are folded onto the canonical name.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gcc", "g++", "gnu":
		return GCC, nil
	case "clang", "clang++", "llvm":
		return Clang, nil
	case "apple-clang", "appleclang", "apple_clang":
		return AppleClang, nil
	case "msvc", "visual studio", "cl":
		return MSVC, nil
	case "intel-cc", "icx", "intel":
		return IntelCC, nil
	default:
		return "", fmt.Errorf("invalid compiler family: %q, supported values: %v", s, SupportedFamilies())
	}
}

// SupportedFamilies returns the canonical family names.
func SupportedFamilies() []string {
	return []string{string(AppleClang), string(Clang), string(GCC), string(IntelCC), string(MSVC)}
}

// Identity describes the host compiler. Standard is empty when no explicit
// language standard was requested.
type Identity struct {
	Family   Family `json:"family" yaml:"family"`
	Version  string `json:"version" yaml:"version"`
	Standard string `json:"standard,omitempty" yaml:"standard,omitempty"`
}

func (id Identity) String() string {
	s := string(id.Family) + " " + id.Version
	if id.Standard != "" {
		s += " (std " + id.Standard + ")"
	}
	return s
}

// VersionTable maps compiler families to the minimum accepted version.
type VersionTable map[Family]string

// Minimum returns the minimum version for f and whether f is listed.
func (t VersionTable) Minimum(f Family) (string, bool) {
	v, ok := t[f]
	return v, ok
}
