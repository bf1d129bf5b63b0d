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

package option

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
)

// UnknownOptionError is returned when an override names an option the recipe
// does not declare.
type UnknownOptionError struct {
	Name  string
	Known []string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q (declared: %s)", e.Name, strings.Join(e.Known, ", "))
}

// ErrorCode implements errors.Coded.
func (e *UnknownOptionError) ErrorCode() errors.ErrorCode {
	return errors.ErrCodeUnknownOption
}

// Details returns the structured context of the error.
func (e *UnknownOptionError) Details() map[string]any {
	return map[string]any{"option": e.Name, "declared": e.Known}
}

// InvalidOptionValueError is returned when an override value is outside the
// option's domain.
type InvalidOptionValueError struct {
	Name    string
	Value   string
	Allowed []string
}

func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("invalid value %q for option %q (allowed: %s)",
		e.Value, e.Name, strings.Join(e.Allowed, ", "))
}

// ErrorCode implements errors.Coded.
func (e *InvalidOptionValueError) ErrorCode() errors.ErrorCode {
	return errors.ErrCodeInvalidRequest
}

// Details returns the structured context of the error.
func (e *InvalidOptionValueError) Details() map[string]any {
	return map[string]any{"option": e.Name, "value": e.Value, "allowed": e.Allowed}
}
