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

package oci

import (
	"context"
	"testing"

	apperrors "github.com/NVIDIA/sparrow-recipe/pkg/errors"
)

func TestStripProtocol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "https prefix", input: "https://ghcr.io", expected: "ghcr.io"},
		{name: "http prefix", input: "http://localhost:5000", expected: "localhost:5000"},
		{name: "no prefix", input: "registry.example.com", expected: "registry.example.com"},
		{name: "https with path", input: "https://ghcr.io/nvidia", expected: "ghcr.io/nvidia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripProtocol(tt.input); got != tt.expected {
				t.Errorf("stripProtocol(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPushFromStore_EmptyTag(t *testing.T) {
	_, err := PushFromStore(context.Background(), t.TempDir(), PushOptions{
		Registry:   "localhost:5000",
		Repository: "test/sparrow",
	})
	if err == nil {
		t.Fatal("PushFromStore() expected error for empty tag, got nil")
	}
	if code := apperrors.CodeOf(err); code != apperrors.ErrCodeInvalidRequest {
		t.Errorf("PushFromStore() code = %s, want %s", code, apperrors.ErrCodeInvalidRequest)
	}
}

func TestPushFromStore_InvalidReference(t *testing.T) {
	_, err := PushFromStore(context.Background(), t.TempDir(), PushOptions{
		Registry:   "invalid registry with spaces",
		Repository: "test/sparrow",
		Tag:        "1.4.0",
	})
	if err == nil {
		t.Error("PushFromStore() expected error for invalid registry, got nil")
	}
}

func TestValidateRegistryReference(t *testing.T) {
	tests := []struct {
		name       string
		registry   string
		repository string
		wantErr    bool
	}{
		{name: "valid ghcr.io", registry: "ghcr.io", repository: "nvidia/sparrow"},
		{name: "valid localhost with port", registry: "localhost:5000", repository: "test/repo"},
		{name: "valid with https prefix", registry: "https://ghcr.io", repository: "nvidia/sparrow"},
		{name: "valid nested repository", registry: "registry.example.com:5000", repository: "org/team/sparrow"},
		{name: "registry with spaces", registry: "invalid registry", repository: "test/repo", wantErr: true},
		{name: "uppercase repository", registry: "ghcr.io", repository: "NVIDIA/Sparrow", wantErr: true},
		{name: "digest in repository", registry: "ghcr.io", repository: "test/repo@latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistryReference(tt.registry, tt.repository)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistryReference() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
