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
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"path"
	"sort"
	"strings"
)

// Set is a resolved, normalized option state. It is immutable: every method
// that changes state returns a new Set.
type Set struct {
	decls  Declarations
	values map[string]Value
}

// Resolve builds a Set from the declaration defaults overridden by overrides,
// then prunes options that do not apply to targetOS.
//
// Resolution runs in two phases. The merge phase applies overrides and fails
// with UnknownOptionError or InvalidOptionValueError. The prune phase removes
// fPIC on Windows and whenever shared is true; it never fails.
func Resolve(decls Declarations, overrides map[string]string, targetOS OS) (*Set, error) {
	base := &Set{decls: decls, values: make(map[string]Value, len(decls))}
	for _, d := range decls {
		base.values[d.Name] = d.Default
	}
	return base.With(overrides, targetOS)
}

// With applies overrides on top of s and re-runs pruning. With(nil, os) on an
// already resolved Set returns an equal Set.
func (s *Set) With(overrides map[string]string, targetOS OS) (*Set, error) {
	merged := &Set{decls: s.decls, values: maps.Clone(s.values)}
	if merged.values == nil {
		merged.values = make(map[string]Value)
	}

	// sorted so the first reported error is stable
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d, ok := s.decls.Lookup(name)
		if !ok {
			return nil, &UnknownOptionError{Name: name, Known: s.decls.Names()}
		}
		v, err := d.Parse(overrides[name])
		if err != nil {
			return nil, err
		}
		merged.values[name] = v
	}

	merged.prune(targetOS)
	return merged, nil
}

// prune removes options that are meaningless for the target.
func (s *Set) prune(targetOS OS) {
	if targetOS == OSWindows {
		delete(s.values, FPIC)
	}
	if s.Bool(Shared) {
		delete(s.values, FPIC)
	}
}

// Declarations returns the schema the Set was resolved against.
func (s *Set) Declarations() Declarations {
	return s.decls
}

// Has reports whether name survived pruning.
func (s *Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Get returns the value of name.
func (s *Set) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Bool returns the boolean value of name. Absent or non-boolean options are false.
func (s *Set) Bool(name string) bool {
	v, ok := s.values[name]
	return ok && v.Kind == KindBool && v.Bool
}

// Names returns the names of the present options, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns the option state as name to string value.
func (s *Set) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for name, v := range s.values {
		out[name] = v.String()
	}
	return out
}

// Equal reports whether both sets hold the same options with the same values.
func (s *Set) Equal(other *Set) bool {
	if s == nil || other == nil {
		return s == other
	}
	return maps.Equal(s.values, other.values)
}

// String renders the set as sorted name=value pairs.
func (s *Set) String() string {
	parts := make([]string, 0, len(s.values))
	for _, name := range s.Names() {
		parts = append(parts, name+"="+s.values[name].String())
	}
	return strings.Join(parts, " ")
}

// MarshalJSON renders the set as a flat object.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// MarshalYAML renders the set as a flat mapping.
func (s *Set) MarshalYAML() (any, error) {
	return s.Map(), nil
}

// ParseOverrides parses name=value pairs for package pkg. A conan-style
// scope prefix ("sparrow/*:shared=True" or "*:shared=True") is stripped when
// it matches pkg. Pairs scoped to another package are dropped.
func ParseOverrides(pairs []string, pkg string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid option override %q: expected name=value", pair)
		}
		if i := strings.LastIndex(key, ":"); i >= 0 {
			scope := strings.TrimSpace(key[:i])
			key = key[i+1:]
			match, err := scopeMatches(scope, pkg)
			if err != nil {
				return nil, fmt.Errorf("invalid option override %q: %w", pair, err)
			}
			if !match {
				slog.Debug("option override scoped to another package", "override", pair, "package", pkg)
				continue
			}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid option override %q: empty name", pair)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// scopeMatches reports whether a reference pattern like "sparrow/*",
// "sparrow/0.9.0" or "*" selects pkg. Only the name part is compared.
func scopeMatches(scope, pkg string) (bool, error) {
	name, _, _ := strings.Cut(scope, "/")
	if name == "" {
		return false, fmt.Errorf("empty package scope")
	}
	return path.Match(name, pkg)
}
