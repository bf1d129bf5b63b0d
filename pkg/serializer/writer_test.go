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
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testDoc struct {
	Name     string            `json:"name" yaml:"name"`
	Count    int               `json:"count" yaml:"count"`
	Labels   map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Items    []string          `json:"items,omitempty" yaml:"items,omitempty"`
	Ref      *testRef          `json:"ref,omitempty" yaml:"ref,omitempty"`
	internal string
}

type testRef struct {
	Target string
}

func (r testRef) String() string { return "ref:" + r.Target }

func TestWriterFormats(t *testing.T) {
	doc := testDoc{Name: "sparrow", Count: 2, Items: []string{"a", "b"}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatJSON, &buf).Serialize(context.Background(), doc))
		var got testDoc
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "sparrow", got.Name)
		assert.Contains(t, buf.String(), "\n  \"name\"")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(context.Background(), doc))
		var got testDoc
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []string{"a", "b"}, got.Items)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), doc))
		out := buf.String()
		assert.Contains(t, out, "FIELD")
		assert.Contains(t, out, "name")
		assert.Contains(t, out, "items[1]")
		assert.NotContains(t, out, "internal")
	})

	t.Run("unknown defaults to json", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(Format("xml"), &buf)
		assert.Equal(t, FormatJSON, w.format)
	})
}

func TestFlattenValue(t *testing.T) {
	flat := map[string]any{}
	flattenValue(flat, reflectValue(testDoc{
		Name:   "x",
		Labels: map[string]string{"k": "v"},
		Ref:    &testRef{Target: "date"},
	}), "")

	assert.Equal(t, "x", flat["name"])
	assert.Equal(t, 0, flat["count"])
	assert.Equal(t, "v", flat["labels.k"])
	assert.Equal(t, "ref:date", flat["ref"], "stringers render as a single cell")
	assert.NotContains(t, flat, "items", "omitempty fields are skipped")
}

func TestFlattenFollowsJSONTags(t *testing.T) {
	type meta struct {
		Kind string `json:"kind"`
	}
	type edge struct {
		Target  string `json:"target"`
		Visible bool   `json:"visible,omitempty"`
	}
	type doc struct {
		Header meta   `json:",inline"`
		Edges  []edge `json:"requirements"`
		Secret string `json:"-"`
	}

	flat := map[string]any{}
	flattenValue(flat, reflectValue(doc{
		Header: meta{Kind: "RecipeEvaluation"},
		Edges:  []edge{{Target: "date"}, {Target: "nlohmann_json", Visible: true}},
		Secret: "token",
	}), "")

	assert.Equal(t, map[string]any{
		"kind":                    "RecipeEvaluation",
		"requirements[0].target":  "date",
		"requirements[1].target":  "nlohmann_json",
		"requirements[1].visible": true,
	}, flat)
}

func TestFlattenEmbeddedStruct(t *testing.T) {
	type inner struct{ Kind string }
	type outer struct {
		inner
		Exported inner
	}
	flat := map[string]any{}
	flattenValue(flat, reflectValue(outer{Exported: inner{Kind: "k"}}), "")
	assert.Equal(t, "k", flat["Exported.Kind"])
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, struct{}{}))
	assert.Equal(t, "<empty>\n", buf.String())
}

func TestNewFileWriterOrStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	s := NewFileWriterOrStdout(FormatYAML, path)
	require.NoError(t, s.Serialize(context.Background(), testDoc{Name: "file"}))
	require.NoError(t, Close(s))
	require.NoError(t, Close(s), "close is idempotent")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "name: file"))

	_, isWriter := NewFileWriterOrStdout(FormatJSON, "").(*Writer)
	assert.True(t, isWriter)

	_, isCM := NewFileWriterOrStdout(FormatJSON, "cm://ns/name").(*ConfigMapWriter)
	assert.True(t, isCM)

	_, fallback := NewFileWriterOrStdout(FormatJSON, "cm://broken").(*Writer)
	assert.True(t, fallback)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "txt", FormatTable.Extension())
	assert.Equal(t, "yaml", FormatYAML.Extension())
	assert.ElementsMatch(t, []string{"json", "yaml", "table"}, SupportedFormats())
	assert.True(t, Format("").IsUnknown())
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, WriteToFile(path, []byte("hello")))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func reflectValue(v any) reflect.Value {
	return reflect.ValueOf(v)
}
