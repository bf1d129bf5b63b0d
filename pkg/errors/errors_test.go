package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("exit status 1")
	err := WrapWithContext(ErrCodeBuildFailed, "cmake configure failed", cause, map[string]any{
		"build_dir": "/tmp/build",
	})

	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
	if err.Context["build_dir"] != "/tmp/build" {
		t.Errorf("expected build_dir in context")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeUnknownOption, "unknown option"),
			expected: "[UNKNOWN_OPTION] unknown option",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

type typedErr struct{}

func (typedErr) Error() string { return "typed" }
func (typedErr) ErrorCode() ErrorCode { return ErrCodeStandardTooLow }
func (typedErr) Details() map[string]any { return map[string]any{"required": "20"} }

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: ErrCodeInternal},
		{name: "structured", err: New(ErrCodeMissingArtifact, "missing"), want: ErrCodeMissingArtifact},
		{name: "typed wrapped", err: fmt.Errorf("validate: %w", typedErr{}), want: ErrCodeStandardTooLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextOf(t *testing.T) {
	if ctx := ContextOf(fmt.Errorf("wrap: %w", typedErr{})); ctx["required"] != "20" {
		t.Errorf("expected typed details, got %v", ctx)
	}
	se := NewWithContext(ErrCodeInvalidRequest, "bad", map[string]any{"k": "v"})
	if ctx := ContextOf(se); ctx["k"] != "v" {
		t.Errorf("expected structured context, got %v", ctx)
	}
	if ctx := ContextOf(errors.New("plain")); ctx != nil {
		t.Errorf("expected nil context, got %v", ctx)
	}
}

func TestContextOfMergesTypedDetails(t *testing.T) {
	err := WrapWithContext(ErrCodeInternal, "evaluate", typedErr{}, map[string]any{"variant": "sparrow"})
	ctx := ContextOf(err)
	if ctx["variant"] != "sparrow" {
		t.Errorf("missing structured context: %v", ctx)
	}
	if ctx["required"] != "20" {
		t.Errorf("missing typed details: %v", ctx)
	}

	clash := WrapWithContext(ErrCodeInternal, "evaluate", typedErr{}, map[string]any{"required": "23"})
	if got := ContextOf(clash)["required"]; got != "23" {
		t.Errorf("structured context should win, got %v", got)
	}
}
