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
	"context"
	"time"

	"github.com/NVIDIA/sparrow-recipe/pkg/header"
	"github.com/NVIDIA/sparrow-recipe/pkg/params"
	"github.com/NVIDIA/sparrow-recipe/pkg/requirement"
)

// Driver builds and installs the library described by a Plan.
type Driver interface {
	Build(ctx context.Context, plan Plan) (*Result, error)
}

// Plan is everything the build needs from the recipe.
type Plan struct {
	Variant      string             `json:"variant" yaml:"variant"`
	SourceDir    string             `json:"sourceDir" yaml:"sourceDir"`
	BuildDir     string             `json:"buildDir" yaml:"buildDir"`
	InstallDir   string             `json:"installDir" yaml:"installDir"`
	BuildType    string             `json:"buildType" yaml:"buildType"`
	Generator    string             `json:"generator,omitempty" yaml:"generator,omitempty"`
	Parameters   params.Map         `json:"parameters" yaml:"parameters"`
	Requirements []requirement.Edge `json:"requirements" yaml:"requirements"`
	// Env is appended to the process environment of every step.
	Env []string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Result reports a finished build.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Variant          string        `json:"variant" yaml:"variant"`
	BuildType        string        `json:"buildType" yaml:"buildType"`
	InstallDir       string        `json:"installDir" yaml:"installDir"`
	RequirementsFile string        `json:"requirementsFile,omitempty" yaml:"requirementsFile,omitempty"`
	Steps            []StepResult  `json:"steps" yaml:"steps"`
	Duration         time.Duration `json:"duration" yaml:"duration"`
}

// StepResult records one driver invocation.
type StepResult struct {
	Name     string        `json:"name" yaml:"name"`
	Args     []string      `json:"args" yaml:"args"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}
