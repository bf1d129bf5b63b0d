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

package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/header"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
	"github.com/NVIDIA/sparrow-recipe/pkg/recipe"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixture lays out a source checkout and a build tree.
func fixture(t *testing.T, libs ...string) (src, build string) {
	t.Helper()
	src = t.TempDir()
	build = t.TempDir()
	writeFile(t, filepath.Join(src, "LICENSE"), "Apache-2.0\n")
	writeFile(t, filepath.Join(src, "include", "sparrow", "sparrow.hpp"), "#pragma once\n")
	writeFile(t, filepath.Join(src, "include", "sparrow", "layout", "primitive_array.hpp"), "#pragma once\n")
	writeFile(t, filepath.Join(src, "include", "sparrow", "README.md"), "not a header\n")
	for _, lib := range libs {
		writeFile(t, filepath.Join(build, "src", lib), "binary")
	}
	writeFile(t, filepath.Join(build, "CMakeCache.txt"), "cache")
	return src, build
}

func declare(t *testing.T, variant string, opts map[string]string, buildType, version string) (*recipe.Manifest, recipe.Layout) {
	t.Helper()
	e, err := recipe.NewEngine(recipe.WithVersion("test"))
	require.NoError(t, err)
	m, err := e.Declare(context.Background(), recipe.DeclareRequest{
		Variant:        variant,
		Options:        opts,
		OS:             option.OSLinux,
		BuildType:      buildType,
		PackageVersion: version,
	})
	require.NoError(t, err)
	v, err := e.Store().Get(variant)
	require.NoError(t, err)
	return m, v.Spec.Layout
}

func TestInstallCompiledLibrary(t *testing.T) {
	src, build := fixture(t, "libsparrowd.a")
	m, layout := declare(t, "sparrow", nil, "Debug", "1.4.0")
	dest := t.TempDir()

	res, err := New(WithVersion("test")).Install(context.Background(), Request{
		Layout:      layout,
		Manifest:    m,
		SourceDir:   src,
		ArtifactDir: build,
		DestDir:     dest,
	})
	require.NoError(t, err)

	assert.Equal(t, header.KindInstallManifest, res.Kind)
	assert.Equal(t, "sparrow", res.Variant)
	assert.Equal(t, []string{
		"components.yaml",
		"include/sparrow/layout/primitive_array.hpp",
		"include/sparrow/sparrow.hpp",
		"lib/libsparrowd.a",
		"licenses/LICENSE",
	}, res.Files)
	assert.Empty(t, res.Reference)

	manifest, err := os.ReadFile(filepath.Join(dest, ManifestFileName))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "sparrowd")
	assert.Contains(t, string(manifest), "kind: ComponentManifest")

	require.NoError(t, VerifyChecksums(dest))
}

func TestInstallMissingCompanionArtifact(t *testing.T) {
	src, build := fixture(t, "libsparrow.so", "libsparrow.so.1.4.0")
	m, layout := declare(t, "sparrow", map[string]string{option.ExportJSONReader: "True"}, "Release", "1.4.0")

	_, err := New().Install(context.Background(), Request{
		Layout:      layout,
		Manifest:    m,
		SourceDir:   src,
		ArtifactDir: build,
		DestDir:     t.TempDir(),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingArtifact, errors.CodeOf(err))
	assert.Equal(t, "sparrow_json_reader", errors.ContextOf(err)["artifact"])
}

func TestInstallHeaderUnderLibDirIsNotArtifact(t *testing.T) {
	src, build := fixture(t, "libsparrow.so")
	writeFile(t, filepath.Join(src, "include", "sparrow", "lib", "sparrow_json_reader.hpp"), "#pragma once\n")
	m, layout := declare(t, "sparrow", map[string]string{option.ExportJSONReader: "True"}, "Release", "1.4.0")

	_, err := New().Install(context.Background(), Request{
		Layout:      layout,
		Manifest:    m,
		SourceDir:   src,
		ArtifactDir: build,
		DestDir:     t.TempDir(),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingArtifact, errors.CodeOf(err))
	assert.Equal(t, "sparrow_json_reader", errors.ContextOf(err)["artifact"])
}

func TestInstallHeaderOnly(t *testing.T) {
	src, _ := fixture(t)
	m, layout := declare(t, "sparrow-headers", nil, "Release", "0.6.0")
	dest := t.TempDir()

	res, err := New().Install(context.Background(), Request{
		Layout:    layout,
		Manifest:  m,
		SourceDir: src,
		DestDir:   dest,
	})
	require.NoError(t, err)
	assert.NotContains(t, res.Files, "lib/libsparrow.a")
	assert.Contains(t, res.Files, "include/sparrow/sparrow.hpp")
	assert.NoDirExists(t, filepath.Join(dest, LibDir))
}

func TestInstallMissingLicense(t *testing.T) {
	src, build := fixture(t, "libsparrow.a")
	require.NoError(t, os.Remove(filepath.Join(src, "LICENSE")))
	m, layout := declare(t, "sparrow", nil, "Release", "1.4.0")

	_, err := New().Install(context.Background(), Request{
		Layout:      layout,
		Manifest:    m,
		SourceDir:   src,
		ArtifactDir: build,
		DestDir:     t.TempDir(),
	})
	assert.Equal(t, errors.ErrCodeMissingArtifact, errors.CodeOf(err))
}

func TestInstallInvalidRequest(t *testing.T) {
	m, layout := declare(t, "sparrow", nil, "Release", "1.4.0")

	tests := []struct {
		name string
		req  Request
	}{
		{name: "no manifest", req: Request{Layout: layout, SourceDir: "src", ArtifactDir: "build", DestDir: "out"}},
		{name: "no source", req: Request{Layout: layout, Manifest: m, ArtifactDir: "build", DestDir: "out"}},
		{name: "no dest", req: Request{Layout: layout, Manifest: m, SourceDir: "src", ArtifactDir: "build"}},
		{name: "no artifacts for compiled", req: Request{Layout: layout, Manifest: m, SourceDir: "src", DestDir: "out"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Install(context.Background(), tt.req)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}

func TestInstallCanceled(t *testing.T) {
	src, build := fixture(t, "libsparrow.a")
	m, layout := declare(t, "sparrow", nil, "Release", "1.4.0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Install(ctx, Request{
		Layout:      layout,
		Manifest:    m,
		SourceDir:   src,
		ArtifactDir: build,
		DestDir:     t.TempDir(),
	})
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestArtifactName(t *testing.T) {
	tests := map[string]string{
		"libsparrow.a":                 "sparrow",
		"libsparrowd.so.1.4.0":         "sparrowd",
		"sparrow.lib":                  "sparrow",
		"sparrow_json_reader.dll":      "sparrow_json_reader",
		"libsparrow_json_reader.dylib": "sparrow_json_reader",
	}
	for in, want := range tests {
		assert.Equal(t, want, ArtifactName(in), in)
	}
}
