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
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"runtime"
	"strconv"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
	"github.com/NVIDIA/sparrow-recipe/pkg/driver"
	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
	"github.com/NVIDIA/sparrow-recipe/pkg/profile"
	"github.com/NVIDIA/sparrow-recipe/pkg/toolchain"
)

var (
	reAppleClang = regexp.MustCompile(`Apple (?:LLVM|clang) version (\d+)\.`)
	reClang      = regexp.MustCompile(`clang version (\d+)\.`)
	reMSVC       = regexp.MustCompile(`Compiler Version (\d+)\.(\d+)`)
	reGCC        = regexp.MustCompile(`(?m)^(?:g\+\+|gcc|c\+\+)\S*\s+\(.*\)\s+(\d+)\.(\d+)`)
)

// Detector builds a profile describing the machine it runs on.
type Detector struct {
	// GOOS is the host operating system in runtime.GOOS spelling.
	GOOS string
	// Compiler, when set, is the only binary probed.
	Compiler string
	// Exec runs the probes.
	Exec driver.Runner
}

// New returns a Detector for the current host.
func New() *Detector {
	return &Detector{GOOS: runtime.GOOS, Exec: driver.ExecRunner}
}

// Probes returns the compiler binaries tried, in order.
func (d *Detector) Probes() []string {
	if d.Compiler != "" {
		return []string{d.Compiler}
	}
	if d.GOOS == "windows" {
		return []string{"cl", "clang++", "g++"}
	}
	return []string{"c++", "g++", "clang++"}
}

// Detect reports the host OS and the first compiler that answers a probe.
func (d *Detector) Detect(ctx context.Context) (*profile.Profile, error) {
	hostOS, err := option.ParseOS(d.GOOS)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, "unsupported host operating system", err)
	}

	for _, bin := range d.Probes() {
		id, ok := d.probe(ctx, bin)
		if !ok {
			continue
		}
		slog.Debug("compiler detected", "binary", bin, "toolchain", id.String())
		return &profile.Profile{Settings: profile.Settings{
			OS:              string(hostOS),
			Compiler:        string(id.Family),
			CompilerVersion: id.Version,
			BuildType:       profile.DefaultBuildType,
		}}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "compiler detection canceled", err)
	}
	return nil, errors.NewWithContext(errors.ErrCodeNotFound, "no supported C++ compiler found",
		map[string]any{"probes": d.Probes()})
}

func (d *Detector) probe(ctx context.Context, bin string) (toolchain.Identity, bool) {
	ctx, cancel := context.WithTimeout(ctx, defaults.DetectProbeTimeout)
	defer cancel()

	var args []string
	if bin != "cl" {
		args = []string{"--version"}
	}

	// cl prints its banner on stderr and exits non-zero without inputs
	var out bytes.Buffer
	err := d.Exec(ctx, driver.Command{Name: bin, Args: args}, &out, &out)
	id, ok := ParseBanner(out.String())
	if !ok {
		slog.Debug("compiler probe failed", "binary", bin, "error", err)
	}
	return id, ok
}

// ParseBanner identifies a compiler from its version banner.
func ParseBanner(banner string) (toolchain.Identity, bool) {
	if m := reAppleClang.FindStringSubmatch(banner); m != nil {
		return toolchain.Identity{Family: toolchain.AppleClang, Version: m[1]}, true
	}
	if m := reClang.FindStringSubmatch(banner); m != nil {
		return toolchain.Identity{Family: toolchain.Clang, Version: m[1]}, true
	}
	if m := reMSVC.FindStringSubmatch(banner); m != nil {
		// 19.40 is toolset 194
		minor, _ := strconv.Atoi(m[2])
		return toolchain.Identity{Family: toolchain.MSVC, Version: m[1] + strconv.Itoa(minor/10)}, true
	}
	if m := reGCC.FindStringSubmatch(banner); m != nil {
		return toolchain.Identity{Family: toolchain.GCC, Version: m[1] + "." + m[2]}, true
	}
	return toolchain.Identity{}, false
}
