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

package oci

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/content/oci"

	apperrors "github.com/NVIDIA/sparrow-recipe/pkg/errors"
)

// ArtifactType is the media type of packaged sparrow install trees.
const ArtifactType = "application/vnd.nvidia.sparrow.package"

// LayoutDirName is the directory under OutputDir holding the OCI image layout.
const LayoutDirName = "oci-layout"

// PackageOptions configures local OCI packaging.
type PackageOptions struct {
	// SourceDir is the install tree to package.
	SourceDir string
	// OutputDir receives the OCI image layout.
	OutputDir string
	// Registry, Repository and Tag name the artifact.
	Registry   string
	Repository string
	Tag        string
	// Annotations are set on the manifest.
	Annotations map[string]string
	// ReproducibleTimestamp pins org.opencontainers.image.created.
	ReproducibleTimestamp string
}

// PackageResult describes a locally packaged artifact.
type PackageResult struct {
	Digest    string
	Reference string
	StorePath string
}

// Package packs SourceDir as a single gzip layer into an OCI image layout
// under OutputDir and tags it.
func Package(ctx context.Context, opts PackageOptions) (*PackageResult, error) {
	switch {
	case opts.Tag == "":
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required for OCI packaging")
	case opts.Registry == "":
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "registry is required for OCI packaging")
	case opts.Repository == "":
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "repository is required for OCI packaging")
	}
	if err := ValidateRegistryReference(opts.Registry, opts.Repository); err != nil {
		return nil, err
	}

	srcDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve source directory", err)
	}
	storePath := filepath.Join(opts.OutputDir, LayoutDirName)
	if err := os.MkdirAll(storePath, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create OCI layout directory", err)
	}

	fs, err := file.New(srcDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layer, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, srcDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to add install tree to store", err)
	}

	annotations := make(map[string]string, len(opts.Annotations)+1)
	for k, v := range opts.Annotations {
		annotations[k] = v
	}
	if opts.ReproducibleTimestamp != "" {
		annotations[ociv1.AnnotationCreated] = opts.ReproducibleTimestamp
	}

	manifest, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: annotations,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}
	if err := fs.Tag(ctx, manifest, opts.Tag); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest", err)
	}

	store, err := oci.New(storePath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to open OCI layout", err)
	}
	desc, err := oras.Copy(ctx, fs, opts.Tag, store, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write OCI layout", err)
	}

	res := &PackageResult{
		Digest:    desc.Digest.String(),
		Reference: stripProtocol(opts.Registry) + "/" + opts.Repository + ":" + opts.Tag,
		StorePath: storePath,
	}
	slog.Debug("install tree packaged",
		"reference", res.Reference,
		"digest", res.Digest,
		"store_path", res.StorePath,
	)
	return res, nil
}

// OutputConfig configures PackageAndPush.
type OutputConfig struct {
	SourceDir   string
	OutputDir   string
	Reference   *Reference
	Annotations map[string]string
	PlainHTTP   bool
	InsecureTLS bool
}

// PackageAndPush packages SourceDir locally and pushes the result to the
// registry named by Reference.
func PackageAndPush(ctx context.Context, cfg OutputConfig) (*PackageResult, error) {
	if cfg.Reference == nil || !cfg.Reference.IsOCI {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}

	pkg, err := Package(ctx, PackageOptions{
		SourceDir:   cfg.SourceDir,
		OutputDir:   cfg.OutputDir,
		Registry:    cfg.Reference.Registry,
		Repository:  cfg.Reference.Repository,
		Tag:         cfg.Reference.Tag,
		Annotations: cfg.Annotations,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("pushing package",
		"registry", cfg.Reference.Registry,
		"repository", cfg.Reference.Repository,
		"tag", cfg.Reference.Tag,
	)
	pushed, err := PushFromStore(ctx, pkg.StorePath, PushOptions{
		Registry:    cfg.Reference.Registry,
		Repository:  cfg.Reference.Repository,
		Tag:         cfg.Reference.Tag,
		PlainHTTP:   cfg.PlainHTTP,
		InsecureTLS: cfg.InsecureTLS,
	})
	if err != nil {
		return nil, err
	}

	return &PackageResult{
		Digest:    pushed.Digest,
		Reference: pushed.Reference,
		StorePath: pkg.StorePath,
	}, nil
}
