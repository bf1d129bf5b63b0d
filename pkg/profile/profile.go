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

package profile

import (
	"context"
	"maps"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
	"github.com/NVIDIA/sparrow-recipe/pkg/serializer"
	"github.com/NVIDIA/sparrow-recipe/pkg/toolchain"
)

// DefaultBuildType is used when a profile names none.
const DefaultBuildType = "Release"

// Profile describes one build host.
type Profile struct {
	Settings Settings          `json:"settings" yaml:"settings"`
	Options  map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Settings are the host settings of a profile.
type Settings struct {
	OS              string `json:"os" yaml:"os"`
	Compiler        string `json:"compiler" yaml:"compiler"`
	CompilerVersion string `json:"compilerVersion" yaml:"compilerVersion"`
	Cppstd          string `json:"cppstd,omitempty" yaml:"cppstd,omitempty"`
	BuildType       string `json:"buildType,omitempty" yaml:"buildType,omitempty"`
}

// Load reads and validates the profile at src.
func Load(ctx context.Context, src string, opts ...serializer.ReadOption) (*Profile, error) {
	p, err := Read(ctx, src, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Read reads the profile at src without validating it, so callers can
// complete it from other sources first.
func Read(ctx context.Context, src string, opts ...serializer.ReadOption) (*Profile, error) {
	p, err := serializer.FromFile[Profile](ctx, src, opts...)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load profile", err,
			map[string]any{"source": src})
	}
	return p, nil
}

// Apply overwrites every non-empty field of s onto the profile settings.
func (p *Profile) Apply(s Settings) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Settings.OS, s.OS)
	set(&p.Settings.Compiler, s.Compiler)
	set(&p.Settings.CompilerVersion, s.CompilerVersion)
	set(&p.Settings.Cppstd, s.Cppstd)
	set(&p.Settings.BuildType, s.BuildType)
}

// Validate checks the settings parse.
func (p *Profile) Validate() error {
	if _, err := p.TargetOS(); err != nil {
		return err
	}
	if _, err := p.Toolchain(); err != nil {
		return err
	}
	return nil
}

// TargetOS returns the parsed target OS.
func (p *Profile) TargetOS() (option.OS, error) {
	os, err := option.ParseOS(p.Settings.OS)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidRequest, "invalid profile os", err)
	}
	return os, nil
}

// Toolchain returns the compiler identity. The standard is normalized, so
// "gnu20" and "c++20" both become "20".
func (p *Profile) Toolchain() (toolchain.Identity, error) {
	family, err := toolchain.ParseFamily(p.Settings.Compiler)
	if err != nil {
		return toolchain.Identity{}, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid profile compiler", err)
	}
	if p.Settings.CompilerVersion == "" {
		return toolchain.Identity{}, errors.New(errors.ErrCodeInvalidRequest, "profile compiler version is required")
	}

	id := toolchain.Identity{Family: family, Version: p.Settings.CompilerVersion}
	if p.Settings.Cppstd != "" {
		std, err := toolchain.ParseStandard(p.Settings.Cppstd)
		if err != nil {
			return toolchain.Identity{}, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid profile cppstd", err)
		}
		id.Standard = std
	}
	return id, nil
}

// BuildType returns the build type, defaulting to Release.
func (p *Profile) BuildType() string {
	if p.Settings.BuildType == "" {
		return DefaultBuildType
	}
	return p.Settings.BuildType
}

// Overrides returns the profile options with extra applied on top.
func (p *Profile) Overrides(extra map[string]string) map[string]string {
	out := make(map[string]string, len(p.Options)+len(extra))
	maps.Copy(out, p.Options)
	maps.Copy(out, extra)
	return out
}
