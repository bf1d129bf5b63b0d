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
	"fmt"

	"github.com/NVIDIA/sparrow-recipe/pkg/component"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
	"github.com/NVIDIA/sparrow-recipe/pkg/params"
	"github.com/NVIDIA/sparrow-recipe/pkg/requirement"
	"github.com/NVIDIA/sparrow-recipe/pkg/toolchain"
)

const (
	// VariantKind is the kind of the embedded variant documents.
	VariantKind = "RecipeVariant"
	// VariantAPIVersion is the schema version of the embedded variant documents.
	VariantAPIVersion = "sparrow.nvidia.com/v1alpha1"
)

// Package types.
const (
	PackageTypeLibrary       = "library"
	PackageTypeHeaderLibrary = "header-library"
)

// Variant is one packaging of the library: its options, toolchain minimums,
// dependency pins, build parameters and components.
type Variant struct {
	Kind       string          `json:"kind" yaml:"kind"`
	APIVersion string          `json:"apiVersion" yaml:"apiVersion"`
	Metadata   VariantMetadata `json:"metadata" yaml:"metadata"`
	Spec       VariantSpec     `json:"spec" yaml:"spec"`

	decls option.Declarations
}

// VariantMetadata describes the packaged library.
type VariantMetadata struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	License     string   `json:"license,omitempty" yaml:"license,omitempty"`
	Homepage    string   `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Topics      []string `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// VariantSpec holds the static recipe data of a variant.
type VariantSpec struct {
	PackageType string                 `json:"packageType" yaml:"packageType"`
	Options     []OptionSpec           `json:"options" yaml:"options"`
	MinStandard string                 `json:"minStandard" yaml:"minStandard"`
	Compilers   toolchain.VersionTable `json:"compilers" yaml:"compilers"`
	Pins        requirement.Pins       `json:"pins" yaml:"pins"`
	Params      params.Spec            `json:"params" yaml:"params"`
	Components  component.Spec         `json:"components" yaml:"components"`
	Layout      Layout                 `json:"layout" yaml:"layout"`
}

// OptionSpec is the serialized form of an option declaration.
type OptionSpec struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    string   `json:"kind" yaml:"kind"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
	Default string   `json:"default" yaml:"default"`
	Help    string   `json:"help,omitempty" yaml:"help,omitempty"`
}

// Layout describes where packaged files come from.
type Layout struct {
	Licenses        []string `json:"licenses,omitempty" yaml:"licenses,omitempty"`
	IncludeDir      string   `json:"includeDir,omitempty" yaml:"includeDir,omitempty"`
	HeaderPatterns  []string `json:"headerPatterns,omitempty" yaml:"headerPatterns,omitempty"`
	LibraryPatterns []string `json:"libraryPatterns,omitempty" yaml:"libraryPatterns,omitempty"`
	RuntimePatterns []string `json:"runtimePatterns,omitempty" yaml:"runtimePatterns,omitempty"`
}

// Name returns the variant name.
func (v *Variant) Name() string {
	return v.Metadata.Name
}

// HeaderOnly reports whether the variant ships no compiled artifacts.
func (v *Variant) HeaderOnly() bool {
	return v.Spec.PackageType == PackageTypeHeaderLibrary
}

// Declarations returns the option schema of the variant.
func (v *Variant) Declarations() option.Declarations {
	return v.decls
}

// init validates the variant document and builds its option declarations.
func (v *Variant) init() error {
	if v.Kind != VariantKind {
		return fmt.Errorf("unexpected kind %q, want %q", v.Kind, VariantKind)
	}
	if v.Metadata.Name == "" {
		return fmt.Errorf("variant name is required")
	}
	switch v.Spec.PackageType {
	case PackageTypeLibrary, PackageTypeHeaderLibrary:
	default:
		return fmt.Errorf("variant %s: unknown package type %q", v.Name(), v.Spec.PackageType)
	}
	if v.HeaderOnly() != v.Spec.Components.HeaderOnly {
		return fmt.Errorf("variant %s: package type %s disagrees with components.headerOnly",
			v.Name(), v.Spec.PackageType)
	}

	decls := make(option.Declarations, 0, len(v.Spec.Options))
	for _, o := range v.Spec.Options {
		d, err := o.declaration()
		if err != nil {
			return fmt.Errorf("variant %s: %w", v.Name(), err)
		}
		if _, dup := decls.Lookup(d.Name); dup {
			return fmt.Errorf("variant %s: option %q declared twice", v.Name(), d.Name)
		}
		decls = append(decls, d)
	}
	v.decls = decls

	for _, name := range v.Spec.Params.Options {
		if _, ok := decls.Lookup(name); !ok {
			return fmt.Errorf("variant %s: parameter for undeclared option %q", v.Name(), name)
		}
	}
	for _, tpl := range v.Spec.Components.Components {
		if tpl.EnabledBy != "" {
			if _, ok := decls.Lookup(tpl.EnabledBy); !ok {
				return fmt.Errorf("variant %s: component %s enabled by undeclared option %q",
					v.Name(), tpl.Name, tpl.EnabledBy)
			}
		}
	}

	if err := v.Spec.Pins.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("variant %s has invalid pins", v.Name()), err)
	}
	return nil
}

func (o OptionSpec) declaration() (option.Declaration, error) {
	switch option.Kind(o.Kind) {
	case option.KindBool:
		d := option.Bool(o.Name, false, o.Help)
		v, err := d.Parse(o.Default)
		if err != nil {
			return option.Declaration{}, err
		}
		d.Default = v
		return d, nil
	case option.KindEnum:
		d := option.Enum(o.Name, o.Values, o.Default, o.Help)
		if _, err := d.Parse(o.Default); err != nil {
			return option.Declaration{}, err
		}
		return d, nil
	default:
		return option.Declaration{}, fmt.Errorf("option %q has unknown kind %q", o.Name, o.Kind)
	}
}
