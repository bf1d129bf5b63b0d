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

package testrunner

import (
	"fmt"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
)

// MissingExpectedArtifactError is returned when an executable the build
// should have produced is absent. It is never retried.
type MissingExpectedArtifactError struct {
	Path string
}

func (e *MissingExpectedArtifactError) Error() string {
	return fmt.Sprintf("expected test executable not found: %s", e.Path)
}

// ErrorCode implements errors.Coded.
func (e *MissingExpectedArtifactError) ErrorCode() errors.ErrorCode {
	return errors.ErrCodeMissingArtifact
}

// Details returns the structured context of the error.
func (e *MissingExpectedArtifactError) Details() map[string]any {
	return map[string]any{"path": e.Path}
}
