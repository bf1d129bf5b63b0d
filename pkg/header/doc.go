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

// Package header provides the common document header for sparrowctl and
// sparrowd output.
//
// Every top-level document (evaluations, component manifests, install
// manifests, test reports) embeds a Header inline, so serialized output
// always starts with kind, apiVersion and metadata:
//
//	kind: RecipeEvaluation
//	apiVersion: sparrow.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2026-01-12T10:30:00Z"
//	  version: v0.3.1
//
// Documents stamp themselves with Init:
//
//	var ev Evaluation
//	ev.Init(header.KindRecipeEvaluation, "", version)
//
// Writers reach the header of any embedding document through DocumentHeader;
// the ConfigMap writer labels its object with Labels.
package header
