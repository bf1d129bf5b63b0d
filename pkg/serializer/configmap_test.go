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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/sparrow-recipe/pkg/header"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{name: "valid", uri: "cm://ci/sparrow-profile", wantNamespace: "ci", wantName: "sparrow-profile"},
		{name: "spaces trimmed", uri: "cm://ci / sparrow-profile ", wantNamespace: "ci", wantName: "sparrow-profile"},
		{name: "missing scheme", uri: "ci/sparrow-profile", wantErr: true},
		{name: "wrong scheme", uri: "http://ci/sparrow-profile", wantErr: true},
		{name: "missing name", uri: "cm://ci/", wantErr: true},
		{name: "missing namespace", uri: "cm:///sparrow-profile", wantErr: true},
		{name: "missing separator", uri: "cm://ci", wantErr: true},
		{name: "empty", uri: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespace, ns)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

type headedDoc struct {
	header.Header `json:",inline" yaml:",inline"`
	Name          string `json:"name" yaml:"name"`
}

func TestConfigMapRoundTrip(t *testing.T) {
	ctx := context.Background()
	cs := fake.NewClientset()

	doc := headedDoc{Name: "evaluation"}
	doc.Init(header.KindRecipeEvaluation, "", "v1.0.0")

	w := NewConfigMapWriter("ci", "sparrow-eval", FormatYAML).WithClient(cs)
	require.NoError(t, w.Serialize(ctx, &doc))

	cm, err := cs.CoreV1().ConfigMaps("ci").Get(ctx, "sparrow-eval", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cm.Data["format"])
	assert.Contains(t, cm.Data["document.yaml"], "name: evaluation")
	assert.Equal(t, "RecipeEvaluation", cm.Labels["app.kubernetes.io/component"])
	assert.Equal(t, "v1.0.0", cm.Labels["app.kubernetes.io/version"])

	got, err := FromFile[headedDoc](ctx, "cm://ci/sparrow-eval", WithKubeClient(cs))
	require.NoError(t, err)
	assert.Equal(t, "evaluation", got.Name)
}

func TestFromConfigMapFallbackKey(t *testing.T) {
	cs := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ci", Name: "profile"},
		Data:       map[string]string{"document.json": `{"name":"from-json"}`},
	})

	got, err := FromConfigMap[testDoc](context.Background(), cs, "ci", "profile")
	require.NoError(t, err)
	assert.Equal(t, "from-json", got.Name)
}

func TestFromConfigMapErrors(t *testing.T) {
	cs := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ci", Name: "empty"},
		Data:       map[string]string{"unrelated": "x"},
	})

	_, err := FromConfigMap[testDoc](context.Background(), cs, "ci", "empty")
	assert.Error(t, err)

	_, err = FromConfigMap[testDoc](context.Background(), cs, "ci", "missing")
	assert.Error(t, err)
}

func TestNewConfigMapWriterUnknownFormat(t *testing.T) {
	w := NewConfigMapWriter("ci", "x", Format("xml"))
	assert.Equal(t, FormatJSON, w.format)
	assert.NoError(t, w.Close())
}
