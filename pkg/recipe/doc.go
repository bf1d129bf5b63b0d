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

// Package recipe evaluates the sparrow packaging recipe.
//
// A recipe is data: each variant is an embedded YAML document (data/*.yaml)
// declaring options, minimum toolchains, dependency pins, build parameter
// mapping and components. Two variants ship with the engine:
//
//	sparrow          compiled library with the optional json_reader companion
//	sparrow-headers  header-only packaging of the early releases
//
// # Evaluation
//
// Engine.Evaluate runs the pre-build pipeline for one host:
//
//	option.Resolve      merge overrides onto defaults, then prune
//	toolchain.Validate  reject a standard or compiler below the minimum
//	requirement.Resolve dependency edges implied by the options
//	params.Generate     build driver parameters
//
// Engine.Declare runs after a successful build and lists the installable
// components for the final options, build type and package version.
//
//	eng, err := recipe.NewEngine(recipe.WithVersion(version))
//	ev, err := eng.Evaluate(ctx, recipe.Request{
//	    Options:   map[string]string{"export_json_reader": "True"},
//	    OS:        option.OSLinux,
//	    Toolchain: toolchain.Identity{Family: toolchain.GCC, Version: "13"},
//	})
//
// Evaluations hold no state between calls. The variant store is parsed once
// per process and is read-only afterwards.
//
// # HTTP
//
// HandleVariants, HandleResolve and HandleComponents expose the engine over
// HTTP; see pkg/api for the route table.
package recipe
