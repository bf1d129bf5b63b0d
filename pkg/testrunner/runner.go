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
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
	"github.com/NVIDIA/sparrow-recipe/pkg/driver"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/header"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
)

// Executable names produced by the consumer test package.
const (
	PrimaryExecutable   = "example"
	CompanionExecutable = "json_reader_test"
)

// Request describes one consumer test run.
type Request struct {
	// BuildDir is the build directory of the test package.
	BuildDir string
	// BuildType selects the per-configuration subdirectory used by
	// multi-config generators.
	BuildType string
	// OS decides the executable suffix.
	OS option.OS
	// ExpectCompanion is set when the companion component was built.
	ExpectCompanion bool
	// Timeout bounds each executable. Zero means defaults.TestRunTimeout.
	Timeout time.Duration
	Env     []string
}

// ExpectCompanion reports whether set enables the companion component.
func ExpectCompanion(set *option.Set) bool {
	return set.Bool(option.ExportJSONReader)
}

// Report is the outcome of a test run.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Executables []Execution   `json:"executables" yaml:"executables"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// Execution records one executable run.
type Execution struct {
	Name     string        `json:"name" yaml:"name"`
	Path     string        `json:"path" yaml:"path"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Runner locates and runs the consumer test executables.
type Runner struct {
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
	Exec    driver.Runner
}

// New returns a Runner that streams test output to stderr.
func New(version string) *Runner {
	return &Runner{
		Version: version,
		Stdout:  os.Stderr,
		Stderr:  os.Stderr,
		Exec:    driver.ExecRunner,
	}
}

// ExecutableName returns name with the platform suffix for targetOS.
func ExecutableName(name string, targetOS option.OS) string {
	if targetOS == option.OSWindows {
		return name + ".exe"
	}
	return name
}

// Locate returns the paths of the executables to run. The primary executable
// is always required; the companion is required when ExpectCompanion is set
// and ignored otherwise.
func (r *Runner) Locate(req Request) ([]string, error) {
	if req.BuildDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "build directory is required")
	}

	names := []string{PrimaryExecutable}
	if req.ExpectCompanion {
		names = append(names, CompanionExecutable)
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		p, ok := find(req, ExecutableName(name, req.OS))
		if !ok {
			return nil, &MissingExpectedArtifactError{Path: p}
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// find checks BuildDir and then BuildDir/BuildType. The returned path on a
// miss is the primary location.
func find(req Request, file string) (string, bool) {
	primary := filepath.Join(req.BuildDir, file)
	candidates := []string{primary}
	if req.BuildType != "" {
		candidates = append(candidates, filepath.Join(req.BuildDir, req.BuildType, file))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return primary, false
}

// Run locates every expected executable before running any of them, then
// runs them in order. The first failure stops the run.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	paths, err := r.Locate(req)
	if err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaults.TestRunTimeout
	}
	run := r.Exec
	if run == nil {
		run = driver.ExecRunner
	}

	rep := &Report{}
	start := time.Now()
	for _, p := range paths {
		execStart := time.Now()
		if err := r.runOne(ctx, run, p, req, timeout); err != nil {
			return nil, err
		}
		rep.Executables = append(rep.Executables, Execution{
			Name:     filepath.Base(p),
			Path:     p,
			Duration: time.Since(execStart),
		})
		slog.Info("test executable passed", "path", p, "duration", time.Since(execStart))
	}
	rep.Duration = time.Since(start)
	rep.Init(header.KindTestReport, "", r.Version)
	return rep, nil
}

func (r *Runner) runOne(ctx context.Context, run driver.Runner, path string, req Request, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := driver.Command{Dir: filepath.Dir(path), Name: path, Env: req.Env}
	err := run(ctx, cmd, writerOrDiscard(r.Stdout), io.MultiWriter(writerOrDiscard(r.Stderr), &stderr))
	if err == nil {
		return nil
	}

	details := map[string]any{"path": path}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.WrapWithContext(errors.ErrCodeTimeout, "test executable timed out", ctxErr, details)
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		details["exitCode"] = exitErr.ExitCode()
	}
	if stderr.Len() > 0 {
		details["stderr"] = tail(stderr.String(), 512)
	}
	return errors.WrapWithContext(errors.ErrCodeTestFailed, "test executable failed", err, details)
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
