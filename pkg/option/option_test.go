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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/sparrow-recipe/pkg/errors"
)

func testDecls() Declarations {
	return Declarations{
		Bool(Shared, false, "build a shared library"),
		Bool(FPIC, true, "position independent code"),
		Bool(UseDatePolyfill, true, "use the date polyfill"),
		Bool(BuildTests, false, "build tests"),
		Enum("cxx_flavor", []string{"strict", "relaxed"}, "strict", "warning profile"),
	}
}

func TestResolveDefaults(t *testing.T) {
	set, err := Resolve(testDecls(), nil, OSLinux)
	require.NoError(t, err)

	assert.True(t, set.Has(FPIC))
	assert.True(t, set.Bool(FPIC))
	assert.True(t, set.Bool(UseDatePolyfill))
	assert.False(t, set.Bool(Shared))
	v, ok := set.Get("cxx_flavor")
	require.True(t, ok)
	assert.Equal(t, EnumValue("strict"), v)
}

func TestResolveOverrides(t *testing.T) {
	set, err := Resolve(testDecls(), map[string]string{
		BuildTests:   "True",
		"cxx_flavor": "relaxed",
	}, OSLinux)
	require.NoError(t, err)
	assert.True(t, set.Bool(BuildTests))
	assert.Equal(t, "relaxed", set.Map()["cxx_flavor"])
}

func TestResolveUnknownOption(t *testing.T) {
	_, err := Resolve(testDecls(), map[string]string{"with_arrow": "True"}, OSLinux)
	require.Error(t, err)

	var unknown *UnknownOptionError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "with_arrow", unknown.Name)
	assert.Contains(t, unknown.Known, Shared)
	assert.Equal(t, apperrors.ErrCodeUnknownOption, apperrors.CodeOf(err))
}

func TestResolveInvalidValue(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
	}{
		{name: "bool garbage", overrides: map[string]string{Shared: "maybe"}},
		{name: "enum outside domain", overrides: map[string]string{"cxx_flavor": "loose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(testDecls(), tt.overrides, OSLinux)
			var invalid *InvalidOptionValueError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
		})
	}
}

func TestPruneFPIC(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		os        OS
		wantFPIC  bool
	}{
		{name: "linux static keeps fPIC", os: OSLinux, wantFPIC: true},
		{name: "macos static keeps fPIC", os: OSMacos, wantFPIC: true},
		{name: "windows removes fPIC", os: OSWindows, wantFPIC: false},
		{name: "windows removes explicit fPIC", os: OSWindows, overrides: map[string]string{FPIC: "True"}, wantFPIC: false},
		{name: "shared removes fPIC", os: OSLinux, overrides: map[string]string{Shared: "True"}, wantFPIC: false},
		{name: "shared with explicit fPIC is not an error", os: OSLinux,
			overrides: map[string]string{Shared: "True", FPIC: "False"}, wantFPIC: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Resolve(testDecls(), tt.overrides, tt.os)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFPIC, set.Has(FPIC))
			assert.NotContains(t, set.Map(), FPIC+"_unused")
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	cases := []struct {
		overrides map[string]string
		os        OS
	}{
		{os: OSLinux},
		{os: OSWindows},
		{os: OSLinux, overrides: map[string]string{Shared: "True"}},
		{os: OSMacos, overrides: map[string]string{BuildTests: "True", "cxx_flavor": "relaxed"}},
	}
	for _, c := range cases {
		first, err := Resolve(testDecls(), c.overrides, c.os)
		require.NoError(t, err)

		again, err := first.With(nil, c.os)
		require.NoError(t, err)
		assert.True(t, first.Equal(again), "%s != %s", first, again)

		again, err = first.With(map[string]string{}, c.os)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	first, err := Resolve(testDecls(), nil, OSLinux)
	require.NoError(t, err)

	_, err = first.With(map[string]string{Shared: "True"}, OSLinux)
	require.NoError(t, err)

	assert.False(t, first.Bool(Shared))
	assert.True(t, first.Has(FPIC))
}

func TestBoolOnAbsentOrEnum(t *testing.T) {
	set, err := Resolve(testDecls(), nil, OSWindows)
	require.NoError(t, err)
	assert.False(t, set.Bool(FPIC))
	assert.False(t, set.Bool("cxx_flavor"))
	assert.False(t, set.Bool("nope"))
}

func TestSetMarshalJSON(t *testing.T) {
	set, err := Resolve(testDecls(), nil, OSWindows)
	require.NoError(t, err)

	b, err := json.Marshal(set)
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "False", m[Shared])
	assert.Equal(t, "True", m[UseDatePolyfill])
	assert.NotContains(t, m, FPIC)
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides([]string{
		"shared=True",
		"sparrow/*:build_tests = False",
		"*:use_date_polyfill=0",
		"",
	}, "sparrow")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		Shared:          "True",
		BuildTests:      "False",
		UseDatePolyfill: "0",
	}, got)

	_, err = ParseOverrides([]string{"shared"}, "sparrow")
	assert.Error(t, err)
	_, err = ParseOverrides([]string{"sparrow/*:=True"}, "sparrow")
	assert.Error(t, err)
	_, err = ParseOverrides([]string{":shared=True"}, "sparrow")
	assert.Error(t, err)
}

func TestParseOverridesScopedToOtherPackage(t *testing.T) {
	tests := []struct {
		name string
		pair string
		want map[string]string
	}{
		{"dependency wildcard", "nlohmann_json/*:shared=True", map[string]string{}},
		{"dependency exact", "date/3.0.4:shared=True", map[string]string{}},
		{"own exact version", "sparrow/0.9.0:shared=True", map[string]string{Shared: "True"}},
		{"name glob", "spar*/*:shared=True", map[string]string{Shared: "True"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverrides([]string{tt.pair}, "sparrow")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := ParseOverrides([]string{"nlohmann_json/*:shared=True"}, "sparrow")
	require.NoError(t, err)
	set, err := Resolve(testDecls(), got, OSLinux)
	require.NoError(t, err)
	assert.False(t, set.Bool(Shared))
	assert.True(t, set.Has(FPIC))
}

func TestParseOS(t *testing.T) {
	for in, want := range map[string]OS{"linux": OSLinux, "Windows": OSWindows, "darwin": OSMacos, "Macos": OSMacos, "FreeBSD": OSFreeBSD} {
		got, err := ParseOS(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseOS("plan9")
	assert.Error(t, err)
}
