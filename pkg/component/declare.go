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
	"maps"
	"slices"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
	"github.com/NVIDIA/sparrow-recipe/pkg/version"
)

// BuildTypeDebug is the build type that selects the debug suffix.
const BuildTypeDebug = "Debug"

// Suffix returns the artifact suffix for buildType and packageVersion. The
// suffix applies only to debug builds of versions at or after
// spec.DebugSuffixSince. An empty packageVersion never gets the suffix.
func Suffix(buildType, packageVersion string, spec Spec) (string, error) {
	if buildType != BuildTypeDebug || packageVersion == "" || spec.DebugSuffix == "" {
		return "", nil
	}
	v, err := version.Parse(packageVersion)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid package version", err,
			map[string]any{"version": packageVersion})
	}
	if spec.DebugSuffixSince != "" {
		since, err := version.Parse(spec.DebugSuffixSince)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, "invalid debug suffix version", err)
		}
		if v.LessThan(since) {
			return "", nil
		}
	}
	return spec.DebugSuffix, nil
}

// Declare returns the descriptors enabled by set, in template order.
func Declare(set *option.Set, buildType, packageVersion string, spec Spec) ([]Descriptor, error) {
	suffix, err := Suffix(buildType, packageVersion, spec)
	if err != nil {
		return nil, err
	}

	descs := make([]Descriptor, 0, len(spec.Components))
	for _, tpl := range spec.Components {
		if tpl.EnabledBy != "" && !set.Bool(tpl.EnabledBy) {
			continue
		}

		d := Descriptor{
			Name:        tpl.Name,
			DisplayName: DisplayName(tpl.Name),
			Requires:    slices.Clone(tpl.Requires),
			Properties:  maps.Clone(tpl.Properties),
			HeaderOnly:  spec.HeaderOnly,
		}
		if !spec.HeaderOnly && tpl.Artifact != "" {
			d.Artifacts = []string{tpl.Artifact + suffix}
		}
		for _, c := range tpl.When {
			if set.Bool(c.Option) {
				d.Requires = append(d.Requires, c.Requires...)
			}
		}
		descs = append(descs, d)
	}
	return descs, nil
}

// Find returns the descriptor named name.
func Find(descs []Descriptor, name string) (Descriptor, bool) {
	for _, d := range descs {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
