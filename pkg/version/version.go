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

// Package version provides semantic version ordering and range matching for
// compiler versions, package versions, and tool requirement ranges.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3 that accepts
// the short forms compilers report ("13", "11.2", "194") and the bracketed
// range syntax used in requirement references ("[>=3.28.1 <4.2.0]").
package version

import (
	"errors"
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

var (
	// ErrEmptyVersion is returned when an empty version string is parsed.
	ErrEmptyVersion = errors.New("version string is empty")
	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidRange is returned when a range expression cannot be parsed.
	ErrInvalidRange = errors.New("invalid version range")
)

// Version is a parsed version that remembers its original spelling.
type Version struct {
	v   *mm.Version
	raw string
}

// Parse parses s leniently: missing minor/patch components are zero and a
// leading "v" is ignored.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	v, err := mm.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, s, err)
	}
	return Version{v: v, raw: s}, nil
}

// MustParse parses s and panics on failure. Only use it for literals.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return v
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return v.v == nil
}

// String returns the version as originally written.
func (v Version) String() string {
	return v.raw
}

// Compare returns -1, 0 or 1. A zero Version sorts before everything else.
func (v Version) Compare(other Version) int {
	switch {
	case v.v == nil && other.v == nil:
		return 0
	case v.v == nil:
		return -1
	case other.v == nil:
		return 1
	}
	return v.v.Compare(other.v)
}

// LessThan reports whether v sorts strictly before other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// AtLeast reports whether v is equal to or newer than other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*v = Version{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Range is a version constraint such as ">=3.28.1 <4.2.0".
type Range struct {
	c   *mm.Constraints
	raw string
}

// IsRange reports whether a requirement version is written in range form.
func IsRange(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

// ParseRange parses a range expression, with or without surrounding brackets.
func ParseRange(s string) (Range, error) {
	expr := strings.TrimSpace(s)
	expr = strings.TrimSuffix(strings.TrimPrefix(expr, "["), "]")
	if strings.TrimSpace(expr) == "" {
		return Range{}, fmt.Errorf("%w: empty expression", ErrInvalidRange)
	}
	c, err := mm.NewConstraint(expr)
	if err != nil {
		return Range{}, fmt.Errorf("%w %q: %v", ErrInvalidRange, s, err)
	}
	return Range{c: c, raw: s}, nil
}

// MustParseRange parses s and panics on failure. Only use it for literals.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseRange: %v", err))
	}
	return r
}

// Contains reports whether v satisfies the range.
func (r Range) Contains(v Version) bool {
	if r.c == nil || v.v == nil {
		return false
	}
	return r.c.Check(v.v)
}

// String returns the range as originally written.
func (r Range) String() string {
	return r.raw
}
