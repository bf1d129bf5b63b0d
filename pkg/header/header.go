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

package header

import (
	"slices"
	"time"
)

// APIVersion is stamped on every document unless Init is given another.
const APIVersion = "sparrow.nvidia.com/v1alpha1"

// Kind names a sparrow document type.
type Kind string

const (
	KindRecipeEvaluation  Kind = "RecipeEvaluation"
	KindComponentManifest Kind = "ComponentManifest"
	KindVariantList       Kind = "VariantList"
	KindOptionState       Kind = "OptionState"
	KindBuildResult       Kind = "BuildResult"
	KindInstallManifest   Kind = "InstallManifest"
	KindTestReport        Kind = "TestReport"
)

// Kinds lists the document kinds in pipeline order: evaluation first, test
// report last.
func Kinds() []Kind {
	return []Kind{
		KindVariantList,
		KindOptionState,
		KindRecipeEvaluation,
		KindBuildResult,
		KindComponentManifest,
		KindInstallManifest,
		KindTestReport,
	}
}

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is one of Kinds.
func (k Kind) IsValid() bool {
	return slices.Contains(Kinds(), k)
}

// Metadata keys written by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// Label values used when a document carries no header data.
const (
	appName          = "sparrow-recipe"
	unknownComponent = "document"
	unknownVersion   = "unknown"
)

// Header opens every document written by sparrowctl and sparrowd. Embed it
// inline so kind, apiVersion and metadata lead the serialized output.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init stamps the header with kind, the UTC time and the tool version. An
// empty apiVersion means APIVersion; an empty version is left out.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	if apiVersion == "" {
		apiVersion = APIVersion
	}
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// DocumentHeader gives writers access to the header of any embedding document.
func (h *Header) DocumentHeader() *Header {
	return h
}

// Labels returns the Kubernetes recommended labels for the document. They tag
// ConfigMaps the document is written to.
func (h *Header) Labels() map[string]string {
	component, version := unknownComponent, unknownVersion
	if h != nil {
		if h.Kind != "" {
			component = h.Kind.String()
		}
		if v := h.Metadata[MetadataVersion]; v != "" {
			version = v
		}
	}
	return map[string]string{
		"app.kubernetes.io/name":      appName,
		"app.kubernetes.io/component": component,
		"app.kubernetes.io/version":   version,
	}
}

// Timestamp returns the time Init stamped, or the zero time when the header
// was never initialized or the value does not parse.
func (h *Header) Timestamp() time.Time {
	if h == nil {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	if err != nil {
		return time.Time{}
	}
	return ts
}
