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

package toolchain

import (
	"fmt"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
)

// StandardTooLowError reports a requested language standard older than the
// recipe minimum.
type StandardTooLowError struct {
	Required string
	Actual   string
}

func (e *StandardTooLowError) Error() string {
	return fmt.Sprintf("language standard %s is below the required minimum %s", e.Actual, e.Required)
}

// ErrorCode implements errors.Coded.
func (e *StandardTooLowError) ErrorCode() errors.ErrorCode {
	return errors.ErrCodeStandardTooLow
}

// Details returns the structured context of the error.
func (e *StandardTooLowError) Details() map[string]any {
	return map[string]any{"required": e.Required, "actual": e.Actual}
}

// IncompatibleToolchainError reports a compiler older than the minimum the
// recipe lists for its family.
type IncompatibleToolchainError struct {
	Family   Family
	Required string
	Actual   string
	Reason   string
}

func (e *IncompatibleToolchainError) Error() string {
	msg := fmt.Sprintf("%s %s is not supported, minimum version is %s", e.Family, e.Actual, e.Required)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// ErrorCode implements errors.Coded.
func (e *IncompatibleToolchainError) ErrorCode() errors.ErrorCode {
	return errors.ErrCodeIncompatibleToolchain
}

// Details returns the structured context of the error.
func (e *IncompatibleToolchainError) Details() map[string]any {
	d := map[string]any{"family": string(e.Family), "required": e.Required, "actual": e.Actual}
	if e.Reason != "" {
		d["reason"] = e.Reason
	}
	return d
}
