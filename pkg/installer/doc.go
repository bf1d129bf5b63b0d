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

// Package installer assembles the package tree of a finished build.
//
// Install lays out:
//
//	licenses/LICENSE
//	include/...          headers from the source include directory
//	lib/...              static, shared and import libraries
//	bin/...              runtime libraries (Windows DLLs)
//	components.yaml      the declared component manifest
//	checksums.txt        sha256sum-compatible digests of the files above
//
// Every artifact named by the manifest must be present in the build tree or
// Install fails with MISSING_ARTIFACT. Copies and digests run in parallel.
// When Request.Publish names an oci:// reference the finished tree is pushed
// with package oci.
package installer
