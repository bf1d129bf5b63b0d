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

// Package testrunner runs the consumer-side test package against an
// installed sparrow.
//
// The test package builds "example" and, when the json_reader companion was
// exported, "json_reader_test" (".exe" on Windows). Run checks that every
// expected executable exists before starting any of them: a companion that
// was expected but not built is a MissingExpectedArtifactError, never a skip.
package testrunner
