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

package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NVIDIA/sparrow-recipe/pkg/requirement"
)

// RequirementsFileName is written into the build directory.
const RequirementsFileName = "conanfile.txt"

var sections = []struct {
	name  string
	scope requirement.Scope
}{
	{"requires", requirement.ScopeRuntime},
	{"test_requires", requirement.ScopeTest},
	{"tool_requires", requirement.ScopeTool},
}

// RenderRequirements renders edges as conanfile.txt sections. Dependency
// options go to an [options] section as name/*:key=value.
func RenderRequirements(edges []requirement.Edge) string {
	var b strings.Builder
	var opts []string

	for _, sec := range sections {
		scoped := requirement.Filter(edges, sec.scope)
		if len(scoped) == 0 {
			continue
		}
		fmt.Fprintf(&b, "[%s]\n", sec.name)
		for _, e := range scoped {
			b.WriteString(e.Ref())
			if e.Visible {
				b.WriteString("  # transitive_headers")
			}
			b.WriteByte('\n')
			for k, v := range e.Options {
				opts = append(opts, fmt.Sprintf("%s/*:%s=%s", e.Target, k, v))
			}
		}
		b.WriteByte('\n')
	}

	if len(opts) > 0 {
		sort.Strings(opts)
		b.WriteString("[options]\n")
		for _, o := range opts {
			b.WriteString(o)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString("[generators]\nCMakeDeps\nCMakeToolchain\n")
	return b.String()
}

// WriteRequirements writes the requirement list into dir and returns its path.
func WriteRequirements(dir string, edges []requirement.Edge) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, RequirementsFileName)
	if err := os.WriteFile(path, []byte(RenderRequirements(edges)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
