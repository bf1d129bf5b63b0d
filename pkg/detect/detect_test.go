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


package detect

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/sparrow-recipe/pkg/driver"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/toolchain"
)

func TestParseBanner(t *testing.T) {
	tests := []struct {
		name   string
		banner string
		want   toolchain.Identity
		ok     bool
	}{
		{
			name:   "gcc",
			banner: "g++ (Ubuntu 11.4.0-1ubuntu1~22.04) 11.4.0\nCopyright (C) 2021 Free Software Foundation, Inc.",
			want:   toolchain.Identity{Family: toolchain.GCC, Version: "11.4"},
			ok:     true,
		},
		{
			name:   "versioned gcc binary",
			banner: "g++-13 (GCC) 13.2.1 20231205",
			want:   toolchain.Identity{Family: toolchain.GCC, Version: "13.2"},
			ok:     true,
		},
		{
			name:   "clang",
			banner: "Ubuntu clang version 18.1.3 (1ubuntu1)\nTarget: x86_64-pc-linux-gnu",
			want:   toolchain.Identity{Family: toolchain.Clang, Version: "18"},
			ok:     true,
		},
		{
			name:   "apple clang",
			banner: "Apple clang version 16.0.0 (clang-1600.0.26.3)\nTarget: arm64-apple-darwin24.1.0",
			want:   toolchain.Identity{Family: toolchain.AppleClang, Version: "16"},
			ok:     true,
		},
		{
			name:   "msvc",
			banner: "Microsoft (R) C/C++ Optimizing Compiler Version 19.40.33811 for x64",
			want:   toolchain.Identity{Family: toolchain.MSVC, Version: "194"},
			ok:     true,
		},
		{
			name:   "unknown",
			banner: "tcc version 0.9.27",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBanner(tt.banner)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func fakeExec(banners map[string]string, probed *[]string) driver.Runner {
	return func(_ context.Context, c driver.Command, stdout, _ io.Writer) error {
		*probed = append(*probed, c.Name)
		b, ok := banners[c.Name]
		if !ok {
			return fmt.Errorf("exec: %q: executable file not found in $PATH", c.Name)
		}
		_, err := io.WriteString(stdout, b)
		return err
	}
}

func TestDetect(t *testing.T) {
	var probed []string
	d := &Detector{
		GOOS: "linux",
		Exec: fakeExec(map[string]string{"clang++": "clang version 19.1.0"}, &probed),
	}

	p, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Linux", p.Settings.OS)
	assert.Equal(t, "clang", p.Settings.Compiler)
	assert.Equal(t, "19", p.Settings.CompilerVersion)
	assert.Equal(t, "Release", p.Settings.BuildType)
	assert.Equal(t, []string{"c++", "g++", "clang++"}, probed)

	id, err := p.Toolchain()
	require.NoError(t, err)
	assert.Equal(t, toolchain.Clang, id.Family)
}

func TestDetectExplicitCompiler(t *testing.T) {
	var probed []string
	d := &Detector{
		GOOS:     "darwin",
		Compiler: "/opt/llvm/bin/clang++",
		Exec: fakeExec(map[string]string{
			"/opt/llvm/bin/clang++": "clang version 18.1.8",
			"c++":                   "Apple clang version 16.0.0",
		}, &probed),
	}

	p, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Macos", p.Settings.OS)
	assert.Equal(t, "18", p.Settings.CompilerVersion)
	assert.Equal(t, []string{"/opt/llvm/bin/clang++"}, probed)
}

func TestDetectWindowsProbesCLFirst(t *testing.T) {
	var probed []string
	d := &Detector{
		GOOS: "windows",
		Exec: func(_ context.Context, c driver.Command, _, stderr io.Writer) error {
			probed = append(probed, c.Name)
			assert.Empty(t, c.Args)
			_, _ = io.WriteString(stderr, "Microsoft (R) C/C++ Optimizing Compiler Version 19.42.34435 for x64\nusage: cl [ option... ] filename...")
			return fmt.Errorf("exit status 2")
		},
	}

	p, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Windows", p.Settings.OS)
	assert.Equal(t, "msvc", p.Settings.Compiler)
	assert.Equal(t, "194", p.Settings.CompilerVersion)
	assert.Equal(t, []string{"cl"}, probed)
}

func TestDetectFailures(t *testing.T) {
	var probed []string

	_, err := (&Detector{GOOS: "plan9", Exec: fakeExec(nil, &probed)}).Detect(context.Background())
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.Empty(t, probed)

	_, err = (&Detector{GOOS: "linux", Exec: fakeExec(nil, &probed)}).Detect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.Equal(t, []string{"c++", "g++", "clang++"}, errors.ContextOf(err)["probes"])
	assert.Len(t, probed, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&Detector{GOOS: "linux", Exec: fakeExec(nil, &probed)}).Detect(ctx)
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}
