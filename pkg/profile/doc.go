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

// Package profile loads host profiles: the target OS, compiler, language
// standard, build type and option overrides of one build host.
//
// A profile is a YAML or JSON document read from a local path, an http(s)
// URL or a ConfigMap (cm://namespace/name):
//
//	settings:
//	  os: Linux
//	  compiler: gcc
//	  compilerVersion: "13.2"
//	  cppstd: gnu20
//	  buildType: Release
//	options:
//	  export_json_reader: true
//
// Command line overrides are applied on top with Profile.Overrides.
package profile
