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

// Package cli implements sparrowctl, the command line front end of the
// sparrow recipe engine.
//
// # Commands
//
//	sparrowctl detect                        profile of this machine
//	sparrowctl variants                      list variants and their minimums
//	sparrowctl options    [host flags]       resolved option state
//	sparrowctl resolve    [host flags]       toolchain check, requirements, build parameters
//	sparrowctl components [host flags]       installable components of a build
//	sparrowctl build      -s SRC [host flags] cmake configure, build and install
//	sparrowctl install    -s SRC -d DEST      package tree, checksums, optional OCI push
//	sparrowctl test       -b DIR              consumer test executables
//
// # Host flags
//
//	--profile, -p      host profile (file, http(s) URL or cm://namespace/name)
//	--os               target OS (default: this host)
//	--compiler         compiler family
//	--compiler-version compiler version
//	--cppstd           requested C++ standard
//	--build-type       build type (default: Release)
//	--option, -o       option override name=value, repeatable
//	--variant          recipe variant (default: sparrow)
//
// Flags override profile settings; -o overrides override profile options.
// Results are written with --output (file or cm://namespace/name, default
// stdout) in --format yaml, json or table. Most flags also read SPARROW_*
// environment variables.
//
// The process exits 0 on success, 2 when the recipe rejects the request
// (unknown option, illegal value, compiler or standard too old) and 1 on any
// other failure.
package cli
