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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
	"github.com/NVIDIA/sparrow-recipe/pkg/header"
	"github.com/NVIDIA/sparrow-recipe/pkg/k8s/client"
)

// ConfigMap data keys.
const (
	configMapDocumentPrefix = "document."
	configMapFormatKey      = "format"
	configMapTimestampKey   = "timestamp"
	configMapFieldManager   = "sparrowctl"
)

// ConfigMapWriter writes documents to a Kubernetes ConfigMap, creating or
// updating it with server-side apply.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
}

// NewConfigMapWriter creates a writer for namespace/name. The Kubernetes
// client is discovered on first write unless one is set with WithClient.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
	}
}

// WithClient sets the Kubernetes client used by the writer.
func (w *ConfigMapWriter) WithClient(c client.Interface) *ConfigMapWriter {
	w.client = c
	return w
}

// Serialize stores doc under data["document.<ext>"] alongside its format and
// timestamp. Labels carry the document kind and tool version when doc embeds
// a header.
func (w *ConfigMapWriter) Serialize(ctx context.Context, doc any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	c := w.client
	if c == nil {
		var err error
		if c, _, err = client.GetKubeClient(); err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	content, err := encode(w.format, doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	var h *header.Header
	if d, ok := doc.(interface{ DocumentHeader() *header.Header }); ok {
		h = d.DocumentHeader()
	}
	stamp := h.Timestamp()
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(h.Labels()).
		WithData(map[string]string{
			configMapDocumentPrefix + w.format.Extension(): string(content),
			configMapFormatKey:                             string(w.format),
			configMapTimestampKey:                          stamp.UTC().Format(time.RFC3339),
		})

	slog.Info("applying ConfigMap", "namespace", w.namespace, "name", w.name, "format", w.format)

	_, err = c.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: configMapFieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; ConfigMapWriter holds no resources.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// FromConfigMap reads a document written by ConfigMapWriter.
func FromConfigMap[T any](ctx context.Context, c client.Interface, namespace, name string) (*T, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := c.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f, ok := cm.Data[configMapFormatKey]; ok {
		format = Format(f)
	}
	content, ok := cm.Data[configMapDocumentPrefix+format.Extension()]
	if !ok {
		// format key missing or stale: take whichever decodable document is present
		for _, f := range []Format{FormatYAML, FormatJSON} {
			if data, found := cm.Data[configMapDocumentPrefix+f.Extension()]; found {
				content, format, ok = data, f, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("ConfigMap %s/%s has no document data", namespace, name)
	}

	slog.Debug("reading from ConfigMap", "namespace", namespace, "name", name, "format", format, "size", len(content))

	r, err := NewReader(format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for ConfigMap data: %w", err)
	}
	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize ConfigMap data: %w", err)
	}
	return &out, nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	ns, n, found := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !found {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}
	namespace, name = strings.TrimSpace(ns), strings.TrimSpace(n)
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
