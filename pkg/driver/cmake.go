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
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/header"
)

// DefaultCMake is the binary used when CMakeDriver.Binary is empty.
const DefaultCMake = "cmake"

// Step names.
const (
	StepConfigure = "configure"
	StepBuild     = "build"
	StepInstall   = "install"
)

// Command is one process invocation.
type Command struct {
	Dir  string
	Name string
	Args []string
	Env  []string
}

// Runner executes a Command. Tests substitute it.
type Runner func(ctx context.Context, cmd Command, stdout, stderr io.Writer) error

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, c Command, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd.Run()
}

// CMakeDriver builds with cmake.
type CMakeDriver struct {
	Binary  string
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
	Run     Runner
}

// NewCMakeDriver returns a driver that streams tool output to stderr.
func NewCMakeDriver(version string) *CMakeDriver {
	return &CMakeDriver{
		Binary:  DefaultCMake,
		Version: version,
		Stdout:  os.Stderr,
		Stderr:  os.Stderr,
		Run:     ExecRunner,
	}
}

// Commands returns the configure, build and install invocations for plan.
func (d *CMakeDriver) Commands(plan Plan) []Command {
	bin := d.Binary
	if bin == "" {
		bin = DefaultCMake
	}

	configure := []string{
		"-S", plan.SourceDir,
		"-B", plan.BuildDir,
		"-DCMAKE_BUILD_TYPE=" + plan.BuildType,
		"-DCMAKE_INSTALL_PREFIX=" + plan.InstallDir,
	}
	if plan.Generator != "" {
		configure = append(configure, "-G", plan.Generator)
	}
	configure = append(configure, plan.Parameters.CacheArgs()...)

	return []Command{
		{Name: bin, Args: configure, Env: plan.Env},
		{Name: bin, Args: []string{"--build", plan.BuildDir, "--config", plan.BuildType, "--parallel"}, Env: plan.Env},
		{Name: bin, Args: []string{"--install", plan.BuildDir, "--config", plan.BuildType}, Env: plan.Env},
	}
}

// Build implements Driver.
func (d *CMakeDriver) Build(ctx context.Context, plan Plan) (*Result, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaults.BuildTimeout)
		defer cancel()
	}

	start := time.Now()
	reqFile, err := WriteRequirements(plan.BuildDir, plan.Requirements)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to write requirements", err)
	}

	run := d.Run
	if run == nil {
		run = ExecRunner
	}

	res := &Result{
		Variant:          plan.Variant,
		BuildType:        plan.BuildType,
		InstallDir:       plan.InstallDir,
		RequirementsFile: reqFile,
	}

	names := []string{StepConfigure, StepBuild, StepInstall}
	for i, cmd := range d.Commands(plan) {
		stepStart := time.Now()
		slog.Info("build step", "step", names[i], "command", cmd.Name, "args", cmd.Args)

		if err := run(ctx, cmd, d.stdout(), d.stderr()); err != nil {
			return nil, stepError(ctx, names[i], err)
		}
		res.Steps = append(res.Steps, StepResult{
			Name:     names[i],
			Args:     cmd.Args,
			Duration: time.Since(stepStart),
		})
	}

	res.Duration = time.Since(start)
	res.Init(header.KindBuildResult, "", d.Version)
	return res, nil
}

func (d *CMakeDriver) stdout() io.Writer {
	if d.Stdout == nil {
		return io.Discard
	}
	return d.Stdout
}

func (d *CMakeDriver) stderr() io.Writer {
	if d.Stderr == nil {
		return io.Discard
	}
	return d.Stderr
}

func validatePlan(plan Plan) error {
	for _, f := range []struct{ name, value string }{
		{"sourceDir", plan.SourceDir},
		{"buildDir", plan.BuildDir},
		{"installDir", plan.InstallDir},
		{"buildType", plan.BuildType},
	} {
		if f.value == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "incomplete build plan",
				map[string]any{"field": f.name})
		}
	}
	if _, err := os.Stat(filepath.Join(plan.SourceDir, "CMakeLists.txt")); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "source directory has no CMakeLists.txt", err,
			map[string]any{"sourceDir": plan.SourceDir})
	}
	return nil
}

func stepError(ctx context.Context, step string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.WrapWithContext(errors.ErrCodeTimeout, "build step canceled", ctxErr,
			map[string]any{"step": step})
	}
	details := map[string]any{"step": step}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		details["exitCode"] = exitErr.ExitCode()
	}
	return errors.WrapWithContext(errors.ErrCodeBuildFailed, "build step failed", err, details)
}
