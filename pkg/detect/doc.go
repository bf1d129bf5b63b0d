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


// Package detect builds a host profile by probing the local machine.
//
// The operating system comes from the Go runtime. The compiler is found by
// running each candidate binary with --version (or bare, for cl) and
// matching the banner:
//
//	g++ (Ubuntu 11.4.0-1ubuntu1~22.04) 11.4.0            -> gcc 11.4
//	Ubuntu clang version 18.1.3                          -> clang 18
//	Apple clang version 16.0.0 (clang-1600.0.26.3)       -> apple-clang 16
//	Microsoft (R) C/C++ Optimizing Compiler Version 19.40 -> msvc 194
//
// The result is a plain profile.Profile that can be written with
// sparrowctl detect and fed back through --profile.
package detect
