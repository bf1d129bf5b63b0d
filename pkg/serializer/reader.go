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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/sparrow-recipe/pkg/k8s/client"
)

// FormatFromPath determines the serialization format from a file extension:
// .json, .yaml/.yml, or .table/.txt. Unknown extensions map to JSON.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// Reader decodes JSON or YAML documents. Table output is write-only.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader over input. When input is an io.Closer it is
// closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{format: format, input: input}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader opens a local file or fetches an http(s) URL into memory.
func NewFileReader(ctx context.Context, format Format, filePath string) (*Reader, error) {
	if isURL(filePath) {
		data, err := NewHttpReader().ReadWithContext(ctx, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return NewReader(format, bytes.NewReader(data))
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, err := NewReader(format, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
	return nil
}

// Close releases the input. It is idempotent and safe on a nil Reader.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ReadOption configures FromFile.
type ReadOption func(*readOptions)

type readOptions struct {
	kubeconfig string
	kubeClient client.Interface
}

// WithKubeconfig selects the kubeconfig used for cm:// sources.
func WithKubeconfig(path string) ReadOption {
	return func(o *readOptions) {
		o.kubeconfig = path
	}
}

// WithKubeClient injects the Kubernetes client used for cm:// sources.
func WithKubeClient(c client.Interface) ReadOption {
	return func(o *readOptions) {
		o.kubeClient = c
	}
}

// FromFile loads a document of type T from a local path, an http(s) URL or
// a ConfigMap URI (cm://namespace/name).
func FromFile[T any](ctx context.Context, src string, opts ...ReadOption) (*T, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	if strings.HasPrefix(src, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(src)
		if err != nil {
			return nil, fmt.Errorf("invalid ConfigMap URI: %w", err)
		}
		c := o.kubeClient
		if c == nil {
			if c, _, err = client.GetKubeClientWithConfig(o.kubeconfig); err != nil {
				return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
			}
		}
		return FromConfigMap[T](ctx, c, namespace, name)
	}

	format := FormatFromPath(urlPath(src))
	slog.Debug("determined file format", "path", src, "format", format)

	r, err := NewFileReader(ctx, format, src)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", src, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", src, err)
	}
	return &out, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// urlPath strips the query string so the extension of a URL can be detected.
func urlPath(s string) string {
	if !isURL(s) {
		return s
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
