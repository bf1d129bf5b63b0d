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
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/header"
	"github.com/NVIDIA/sparrow-recipe/pkg/oci"
	"github.com/NVIDIA/sparrow-recipe/pkg/recipe"
	"github.com/NVIDIA/sparrow-recipe/pkg/serializer"
)

// Package tree directories and files.
const (
	LicensesDir      = "licenses"
	IncludeDir       = "include"
	LibDir           = "lib"
	BinDir           = "bin"
	ManifestFileName = "components.yaml"
)

var copyConcurrency = runtime.NumCPU()

// Request describes one install.
type Request struct {
	// Layout says which files make up the package.
	Layout recipe.Layout
	// Manifest is the declared component list of the build.
	Manifest *recipe.Manifest
	// SourceDir holds the license files and the include directory.
	SourceDir string
	// ArtifactDir is searched recursively for library and runtime files.
	// Unused for header-only manifests.
	ArtifactDir string
	// DestDir receives the package tree.
	DestDir string

	// Publish, when set to an OCI reference, pushes the tree after install.
	Publish     *oci.Reference
	Annotations map[string]string
	PlainHTTP   bool
	InsecureTLS bool
}

// Result describes an installed package tree.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Variant   string   `json:"variant" yaml:"variant"`
	DestDir   string   `json:"destDir" yaml:"destDir"`
	Files     []string `json:"files" yaml:"files"`
	Checksums string   `json:"checksums" yaml:"checksums"`
	Reference string   `json:"reference,omitempty" yaml:"reference,omitempty"`
	Digest    string   `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// Installer assembles package trees.
type Installer struct {
	version string
}

// Option configures an Installer.
type Option func(*Installer)

// WithVersion sets the tool version stamped into result headers.
func WithVersion(v string) Option {
	return func(i *Installer) {
		i.version = v
	}
}

// New returns an Installer.
func New(opts ...Option) *Installer {
	i := &Installer{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// copyJob is one file to place in the package tree.
type copyJob struct {
	src, dst string
	// artifact marks compiled library and runtime files.
	artifact bool
}

// Install copies licenses, headers and compiled artifacts into DestDir,
// writes components.yaml and checksums.txt, and optionally publishes the
// tree to a registry.
func (i *Installer) Install(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaults.InstallTimeout)
		defer cancel()
	}

	jobs, err := planCopies(req)
	if err != nil {
		return nil, err
	}
	if err := checkArtifacts(req.Manifest, jobs); err != nil {
		return nil, err
	}

	files, err := runCopies(ctx, jobs)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(req.DestDir, ManifestFileName)
	if err := writeManifest(ctx, manifestPath, req.Manifest); err != nil {
		return nil, err
	}
	files = append(files, manifestPath)

	sumPath, err := WriteChecksums(ctx, req.DestDir, files)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Variant:   req.Manifest.Variant,
		DestDir:   req.DestDir,
		Files:     relativeTo(req.DestDir, files),
		Checksums: sumPath,
	}
	res.Init(header.KindInstallManifest, "", i.version)

	if req.Publish != nil && req.Publish.IsOCI {
		if err := i.publish(ctx, req, res); err != nil {
			return nil, err
		}
	}

	slog.Info("package installed",
		"variant", res.Variant,
		"dest", res.DestDir,
		"files", len(res.Files),
		"reference", res.Reference,
	)
	return res, nil
}

func (i *Installer) publish(ctx context.Context, req Request, res *Result) error {
	ref := req.Publish
	if ref.Tag == "" {
		ref = ref.WithTag(req.Manifest.PackageVersion)
	}

	annotations := map[string]string{
		ociv1.AnnotationTitle:   req.Manifest.Variant,
		ociv1.AnnotationVendor:  "NVIDIA",
		ociv1.AnnotationVersion: req.Manifest.PackageVersion,
	}
	for k, v := range req.Annotations {
		annotations[k] = v
	}

	workDir, err := os.MkdirTemp("", "sparrow-oci-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create OCI work directory", err)
	}
	defer os.RemoveAll(workDir)

	out, err := oci.PackageAndPush(ctx, oci.OutputConfig{
		SourceDir:   req.DestDir,
		OutputDir:   workDir,
		Reference:   ref,
		Annotations: annotations,
		PlainHTTP:   req.PlainHTTP,
		InsecureTLS: req.InsecureTLS,
	})
	if err != nil {
		return err
	}
	res.Reference = out.Reference
	res.Digest = out.Digest
	return nil
}

func validateRequest(req Request) error {
	switch {
	case req.Manifest == nil:
		return errors.New(errors.ErrCodeInvalidRequest, "component manifest is required")
	case req.SourceDir == "":
		return errors.New(errors.ErrCodeInvalidRequest, "source directory is required")
	case req.DestDir == "":
		return errors.New(errors.ErrCodeInvalidRequest, "destination directory is required")
	case !headerOnly(req.Manifest) && req.ArtifactDir == "":
		return errors.New(errors.ErrCodeInvalidRequest, "artifact directory is required for compiled components")
	}
	return nil
}

// planCopies expands the layout into concrete source and destination paths.
func planCopies(req Request) ([]copyJob, error) {
	var jobs []copyJob

	for _, name := range req.Layout.Licenses {
		src := filepath.Join(req.SourceDir, name)
		if _, err := os.Stat(src); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeMissingArtifact, "license file not found", err,
				map[string]any{"path": src})
		}
		jobs = append(jobs, copyJob{src: src, dst: filepath.Join(req.DestDir, LicensesDir, filepath.Base(name))})
	}

	if req.Layout.IncludeDir != "" {
		root := filepath.Join(req.SourceDir, req.Layout.IncludeDir)
		headers, err := match(root, req.Layout.HeaderPatterns)
		if err != nil {
			return nil, err
		}
		for _, src := range headers {
			rel, _ := filepath.Rel(root, src)
			jobs = append(jobs, copyJob{src: src, dst: filepath.Join(req.DestDir, IncludeDir, rel)})
		}
	}

	if headerOnly(req.Manifest) {
		return jobs, nil
	}

	for _, set := range []struct {
		patterns []string
		dir      string
	}{
		{req.Layout.LibraryPatterns, LibDir},
		{req.Layout.RuntimePatterns, BinDir},
	} {
		found, err := match(req.ArtifactDir, set.patterns)
		if err != nil {
			return nil, err
		}
		for _, src := range found {
			jobs = append(jobs, copyJob{src: src, dst: filepath.Join(req.DestDir, set.dir, filepath.Base(src)), artifact: true})
		}
	}
	return jobs, nil
}

// match walks root and returns the regular files whose base name matches
// any of patterns, sorted.
func match(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, p := range patterns {
			if ok, _ := filepath.Match(p, d.Name()); ok {
				out = append(out, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to scan directory", err,
			map[string]any{"path": root})
	}
	sort.Strings(out)
	return out, nil
}

// checkArtifacts fails when a declared artifact has no library file in the plan.
func checkArtifacts(m *recipe.Manifest, jobs []copyJob) error {
	present := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if j.artifact {
			present[ArtifactName(filepath.Base(j.src))] = true
		}
	}
	for _, c := range m.Components {
		for _, a := range c.Artifacts {
			if !present[a] {
				return errors.NewWithContext(errors.ErrCodeMissingArtifact,
					fmt.Sprintf("artifact %s of component %s not found", a, c.Name),
					map[string]any{"component": c.Name, "artifact": a})
			}
		}
	}
	return nil
}

// ArtifactName strips the platform prefix and extensions from a library file
// name: "libsparrowd.so.1.4.0" and "sparrowd.lib" both yield "sparrowd".
func ArtifactName(file string) string {
	name, _, _ := strings.Cut(file, ".")
	return strings.TrimPrefix(name, "lib")
}

func runCopies(ctx context.Context, jobs []copyJob) ([]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(copyConcurrency)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return copyFile(j.src, j.dst)
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "install canceled", err)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to copy package files", err)
	}

	files := make([]string, 0, len(jobs))
	for _, j := range jobs {
		files = append(files, j.dst)
	}
	return files, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, time.Now(), info.ModTime())
}

func writeManifest(ctx context.Context, path string, m *recipe.Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create component manifest", err)
	}
	w := serializer.NewWriter(serializer.FormatYAML, f)
	if err := w.Serialize(ctx, m); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to write component manifest", err)
	}
	return f.Close()
}

func headerOnly(m *recipe.Manifest) bool {
	for _, c := range m.Components {
		if !c.HeaderOnly {
			return false
		}
	}
	return true
}

func relativeTo(root string, files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			rel = f
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}
