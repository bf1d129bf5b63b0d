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
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/sparrow-recipe/pkg/driver"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/header"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
)

type recorder struct {
	ran  []string
	fail map[string]error
}

func (r *recorder) run(ctx context.Context, cmd driver.Command, _, _ io.Writer) error {
	r.ran = append(r.ran, filepath.Base(cmd.Name))
	if err := r.fail[filepath.Base(cmd.Name)]; err != nil {
		return err
	}
	return ctx.Err()
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
}

func newRunner(rec *recorder) *Runner {
	return &Runner{Version: "test", Exec: rec.run}
}

func TestRunPrimaryOnly(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, PrimaryExecutable))
	rec := &recorder{}

	rep, err := newRunner(rec).Run(context.Background(), Request{BuildDir: dir, OS: option.OSLinux})
	require.NoError(t, err)
	assert.Equal(t, []string{"example"}, rec.ran)
	assert.Equal(t, header.KindTestReport, rep.Kind)
	require.Len(t, rep.Executables, 1)
	assert.Equal(t, "example", rep.Executables[0].Name)
}

func TestRunWithCompanion(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, PrimaryExecutable))
	touch(t, filepath.Join(dir, CompanionExecutable))
	rec := &recorder{}

	rep, err := newRunner(rec).Run(context.Background(), Request{
		BuildDir:        dir,
		OS:              option.OSLinux,
		ExpectCompanion: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"example", "json_reader_test"}, rec.ran)
	assert.Len(t, rep.Executables, 2)
}

func TestRunCompanionPresentButNotExpected(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, PrimaryExecutable))
	touch(t, filepath.Join(dir, CompanionExecutable))
	rec := &recorder{}

	_, err := newRunner(rec).Run(context.Background(), Request{BuildDir: dir, OS: option.OSLinux})
	require.NoError(t, err)
	assert.Equal(t, []string{"example"}, rec.ran)
}

func TestRunMissingCompanionIsFatal(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, PrimaryExecutable))
	rec := &recorder{}

	_, err := newRunner(rec).Run(context.Background(), Request{
		BuildDir:        dir,
		OS:              option.OSLinux,
		ExpectCompanion: true,
	})
	require.Error(t, err)

	var missing *MissingExpectedArtifactError
	require.True(t, stderrors.As(err, &missing))
	assert.Equal(t, filepath.Join(dir, CompanionExecutable), missing.Path)
	assert.Equal(t, errors.ErrCodeMissingArtifact, errors.CodeOf(err))
	assert.Empty(t, rec.ran, "nothing runs when an expected executable is missing")
}

func TestRunMissingPrimary(t *testing.T) {
	rec := &recorder{}
	_, err := newRunner(rec).Run(context.Background(), Request{BuildDir: t.TempDir(), OS: option.OSLinux})
	assert.Equal(t, errors.ErrCodeMissingArtifact, errors.CodeOf(err))
}

func TestLocateWindowsSuffixAndConfigDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Release", "example.exe"))
	touch(t, filepath.Join(dir, "Release", "json_reader_test.exe"))

	paths, err := newRunner(&recorder{}).Locate(Request{
		BuildDir:        dir,
		BuildType:       "Release",
		OS:              option.OSWindows,
		ExpectCompanion: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "Release", "example.exe"),
		filepath.Join(dir, "Release", "json_reader_test.exe"),
	}, paths)
}

func TestLocateRequiresBuildDir(t *testing.T) {
	_, err := newRunner(&recorder{}).Locate(Request{})
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestRunFailureStopsRun(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, PrimaryExecutable))
	touch(t, filepath.Join(dir, CompanionExecutable))
	rec := &recorder{fail: map[string]error{"example": stderrors.New("exit status 1")}}

	_, err := newRunner(rec).Run(context.Background(), Request{
		BuildDir:        dir,
		OS:              option.OSLinux,
		ExpectCompanion: true,
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTestFailed, errors.CodeOf(err))
	assert.Equal(t, []string{"example"}, rec.ran)
}

func TestRunTimeout(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, PrimaryExecutable))
	r := &Runner{Exec: func(ctx context.Context, _ driver.Command, _, _ io.Writer) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	_, err := r.Run(context.Background(), Request{BuildDir: dir, OS: option.OSLinux, Timeout: 10 * time.Millisecond})
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestExpectCompanion(t *testing.T) {
	decls := option.Declarations{option.Bool(option.ExportJSONReader, false, "")}

	off, err := option.Resolve(decls, nil, option.OSLinux)
	require.NoError(t, err)
	assert.False(t, ExpectCompanion(off))

	on, err := option.Resolve(decls, map[string]string{option.ExportJSONReader: "True"}, option.OSLinux)
	require.NoError(t, err)
	assert.True(t, ExpectCompanion(on))
}
