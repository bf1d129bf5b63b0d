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

package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeMethodNotAllowed indicates the HTTP method is not allowed for the resource.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeUnavailable indicates a service or resource is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// ErrCodeUnknownOption indicates an override names an option the recipe does not declare.
	ErrCodeUnknownOption ErrorCode = "UNKNOWN_OPTION"
	// ErrCodeStandardTooLow indicates the requested language standard is below the recipe minimum.
	ErrCodeStandardTooLow ErrorCode = "STANDARD_TOO_LOW"
	// ErrCodeIncompatibleToolchain indicates the compiler version is below the recipe minimum.
	ErrCodeIncompatibleToolchain ErrorCode = "INCOMPATIBLE_TOOLCHAIN"
	// ErrCodeMissingArtifact indicates an expected build artifact is absent.
	ErrCodeMissingArtifact ErrorCode = "MISSING_ARTIFACT"
	// ErrCodeBuildFailed indicates the external build driver reported a failure.
	ErrCodeBuildFailed ErrorCode = "BUILD_FAILED"
	// ErrCodeTestFailed indicates a consumer test executable exited unsuccessfully.
	ErrCodeTestFailed ErrorCode = "TEST_FAILED"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the classification of the error.
func (e *StructuredError) ErrorCode() ErrorCode {
	return e.Code
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// Coded is implemented by the typed recipe errors (unknown option, incompatible
// toolchain, ...) so callers can classify them without importing every package.
type Coded interface {
	error
	ErrorCode() ErrorCode
}

// CodeOf returns the code of the outermost classified error in err's chain,
// or ErrCodeInternal when nothing in the chain carries one.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var coded Coded
	if stderrors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ErrCodeInternal
}

// ContextOf returns the structured context of err merged over the details of
// any typed error in its chain. StructuredError context wins on key clashes.
func ContextOf(err error) map[string]any {
	var out map[string]any
	var detailed interface{ Details() map[string]any }
	if stderrors.As(err, &detailed) {
		if d := detailed.Details(); len(d) > 0 {
			out = maps.Clone(d)
		}
	}
	var se *StructuredError
	if stderrors.As(err, &se) && len(se.Context) > 0 {
		if out == nil {
			out = make(map[string]any, len(se.Context))
		}
		maps.Copy(out, se.Context)
	}
	return out
}
