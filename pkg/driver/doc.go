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

// Package driver runs the external build for an evaluated recipe.
//
// The recipe engine never builds anything itself. It hands a Plan (build
// parameters plus requirement edges) to a Driver and waits for the result.
// CMakeDriver is the reference implementation:
//
//	cmake -S <source> -B <build> -DCMAKE_BUILD_TYPE=<type> -DCMAKE_INSTALL_PREFIX=<install> -D<PARAM>=ON|OFF...
//	cmake --build <build> --config <type> --parallel
//	cmake --install <build> --config <type>
//
// Requirement edges are written next to the build tree as a conanfile.txt
// so a dependency provider can satisfy them before configure runs.
//
// Any non-zero exit is reported as a BUILD_FAILED error carrying the step
// and exit code. Exceeding the context deadline is reported as TIMEOUT.
package driver
