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

// Package oci packages an installed sparrow tree as an OCI artifact and
// pushes it to a registry using ORAS.
//
// Package writes the tree as one reproducible gzip layer into a local OCI
// image layout; PushFromStore copies a tagged manifest from that layout to a
// remote repository. PackageAndPush runs both for an "oci://" install target:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/nvidia/sparrow:1.4.0")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.PackageAndPush(ctx, oci.OutputConfig{
//	    SourceDir: installDir,
//	    OutputDir: workDir,
//	    Reference: ref,
//	})
//
// Registry credentials come from the Docker configuration
// (~/.docker/config.json). Artifacts carry the media type
// "application/vnd.nvidia.sparrow.package" so they are not mistaken for
// runnable images.
package oci
