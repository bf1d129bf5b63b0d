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

package option

import (
	"fmt"
	"sort"
	"strings"
)

// Well-known option names shared by the recipe variants.
const (
	Shared                = "shared"
	FPIC                  = "fPIC"
	UseDatePolyfill       = "use_date_polyfill"
	BuildTests            = "build_tests"
	BuildBenchmarks       = "build_benchmarks"
	GenerateDocumentation = "generate_documentation"
	ExportJSONReader      = "export_json_reader"
)

// Kind is the value domain of an option.
type Kind string

const (
	// KindBool options hold true or false.
	KindBool Kind = "bool"
	// KindEnum options hold one of a declared set of strings.
	KindEnum Kind = "enum"
)

// OS is the target operating system family.
type OS string

// OS constants for supported target platforms.
const (
	OSLinux   OS = "Linux"
	OSWindows OS = "Windows"
	OSMacos   OS = "Macos"
	OSFreeBSD OS = "FreeBSD"
)

// ParseOS parses a target OS name case-insensitively.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux":
		return OSLinux, nil
	case "windows":
		return OSWindows, nil
	case "macos", "darwin":
		return OSMacos, nil
	case "freebsd":
		return OSFreeBSD, nil
	default:
		return "", fmt.Errorf("invalid os: %q, supported values: %v", s, SupportedOSes())
	}
}

// SupportedOSes returns all supported target OS names.
func SupportedOSes() []string {
	return []string{string(OSFreeBSD), string(OSLinux), string(OSMacos), string(OSWindows)}
}

// Value is a typed option value. Exactly one of the fields is meaningful,
// selected by Kind.
type Value struct {
	Kind Kind
	Bool bool
	Enum string
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// EnumValue returns an enumerated Value.
func EnumValue(s string) Value {
	return Value{Kind: KindEnum, Enum: s}
}

// String renders the value the way overrides spell it.
func (v Value) String() string {
	if v.Kind == KindBool {
		if v.Bool {
			return "True"
		}
		return "False"
	}
	return v.Enum
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Declaration describes one option a recipe accepts.
type Declaration struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    Kind     `json:"kind" yaml:"kind"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
	Default Value    `json:"default" yaml:"default"`
	Help    string   `json:"help,omitempty" yaml:"help,omitempty"`
}

// Bool declares a boolean option.
func Bool(name string, def bool, help string) Declaration {
	return Declaration{Name: name, Kind: KindBool, Default: BoolValue(def), Help: help}
}

// Enum declares an enumerated option. def must be one of values.
func Enum(name string, values []string, def, help string) Declaration {
	return Declaration{Name: name, Kind: KindEnum, Values: values, Default: EnumValue(def), Help: help}
}

// Parse converts a raw override into a Value for this declaration.
func (d Declaration) Parse(raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch d.Kind {
	case KindBool:
		switch strings.ToLower(raw) {
		case "true", "1", "on", "yes":
			return BoolValue(true), nil
		case "false", "0", "off", "no":
			return BoolValue(false), nil
		}
		return Value{}, &InvalidOptionValueError{Name: d.Name, Value: raw, Allowed: []string{"True", "False"}}
	case KindEnum:
		for _, allowed := range d.Values {
			if allowed == raw {
				return EnumValue(raw), nil
			}
		}
		return Value{}, &InvalidOptionValueError{Name: d.Name, Value: raw, Allowed: d.Values}
	default:
		return Value{}, fmt.Errorf("option %q has unknown kind %q", d.Name, d.Kind)
	}
}

// Declarations is the ordered option schema of a recipe.
type Declarations []Declaration

// Lookup returns the declaration for name.
func (ds Declarations) Lookup(name string) (Declaration, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}

// Names returns the declared option names, sorted.
func (ds Declarations) Names() []string {
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
