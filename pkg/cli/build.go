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

package cli

import (
	"context"
	"path/filepath"
	"slices"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sparrow-recipe/pkg/defaults"
	"github.com/NVIDIA/sparrow-recipe/pkg/driver"
	"github.com/NVIDIA/sparrow-recipe/pkg/installer"
	"github.com/NVIDIA/sparrow-recipe/pkg/oci"
	"github.com/NVIDIA/sparrow-recipe/pkg/testrunner"
)

// newDriver is replaced in tests.
var newDriver = func(cmd *cli.Command) driver.Driver {
	d := driver.NewCMakeDriver(version)
	if bin := cmd.String("cmake"); bin != "" {
		d.Binary = bin
	}
	return d
}

// newTestRunner is replaced in tests.
var newTestRunner = func() *testrunner.Runner {
	return testrunner.New(version)
}

func sourceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "source",
		Aliases:  []string{"s"},
		Required: true,
		Usage:    "sparrow source checkout (contains CMakeLists.txt, LICENSE and include/)",
	}
}

func buildDirFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "build-dir",
		Aliases:  []string{"b"},
		Required: required,
		Usage:    "cmake build directory (default: <source>/build)",
	}
}

func installDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "install-dir",
		Usage: "cmake install prefix (default: <build-dir>/install)",
	}
}

func buildDirs(cmd *cli.Command) (buildDir, installDir string) {
	buildDir = cmd.String("build-dir")
	if buildDir == "" {
		buildDir = filepath.Join(cmd.String("source"), "build")
	}
	installDir = cmd.String("install-dir")
	if installDir == "" {
		installDir = filepath.Join(buildDir, "install")
	}
	return buildDir, installDir
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Resolve the recipe and configure, build and install with cmake",
		Description: `Evaluate the recipe for the host, write the dependency declaration next to
the build tree and run cmake configure, build and install with the generated
cache parameters.

Examples:
  sparrowctl build --source ./sparrow --compiler gcc --compiler-version 13.2
  sparrowctl build -s ./sparrow --profile ci/msvc.yaml --generator Ninja`,
		Flags: slices.Concat(hostFlags(), []cli.Flag{
			sourceFlag(),
			buildDirFlag(false),
			installDirFlag(),
			&cli.StringFlag{
				Name:    "generator",
				Aliases: []string{"G"},
				Usage:   "cmake generator",
			},
			&cli.StringFlag{
				Name:    "cmake",
				Usage:   "cmake binary",
				Value:   driver.DefaultCMake,
				Sources: cli.EnvVars(envPrefix + "CMAKE"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Bound for the whole build",
				Value: defaults.BuildTimeout,
			},
			outputFlag(),
			formatFlag(),
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			h, err := loadHost(ctx, cmd, true)
			if err != nil {
				return err
			}
			e, err := newEngine()
			if err != nil {
				return err
			}
			ev, err := e.Evaluate(ctx, h.request())
			if err != nil {
				return err
			}

			buildDir, installDir := buildDirs(cmd)
			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			res, err := newDriver(cmd).Build(ctx, driver.Plan{
				Variant:      ev.Variant,
				SourceDir:    cmd.String("source"),
				BuildDir:     buildDir,
				InstallDir:   installDir,
				BuildType:    h.buildType,
				Generator:    cmd.String("generator"),
				Parameters:   ev.Parameters,
				Requirements: ev.Requirements,
			})
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}

func installCmd() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Assemble the package tree of a finished build",
		Description: `Copy the license, headers and compiled libraries into the package tree and
write components.yaml and checksums.txt. With --push the finished tree is
published as an OCI artifact.

Examples:
  sparrowctl install -s ./sparrow --dest ./pkg --package-version 1.4.0
  sparrowctl install -s ./sparrow --dest ./pkg --push oci://ghcr.io/nvidia/sparrow:1.4.0`,
		Flags: slices.Concat(hostFlags(), []cli.Flag{
			sourceFlag(),
			buildDirFlag(false),
			installDirFlag(),
			packageVersionFlag(),
			&cli.StringFlag{
				Name:     "dest",
				Aliases:  []string{"d"},
				Required: true,
				Usage:    "Package tree destination",
			},
			&cli.StringFlag{
				Name:    "push",
				Usage:   "Publish the package tree to an OCI registry (oci://registry/repository[:tag]; tag defaults to the package version)",
				Sources: cli.EnvVars(envPrefix + "PUSH"),
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip registry TLS certificate verification",
			},
			outputFlag(),
			formatFlag(),
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			h, err := loadHost(ctx, cmd, false)
			if err != nil {
				return err
			}
			e, err := newEngine()
			if err != nil {
				return err
			}
			m, err := e.Declare(ctx, h.declareRequest(cmd.String("package-version")))
			if err != nil {
				return err
			}
			v, err := e.Store().Get(m.Variant)
			if err != nil {
				return err
			}

			var publish *oci.Reference
			if target := cmd.String("push"); target != "" {
				if publish, err = oci.ParseOutputTarget(target); err != nil {
					return err
				}
			}

			_, installDir := buildDirs(cmd)
			res, err := installer.New(installer.WithVersion(version)).Install(ctx, installer.Request{
				Layout:      v.Spec.Layout,
				Manifest:    m,
				SourceDir:   cmd.String("source"),
				ArtifactDir: installDir,
				DestDir:     cmd.String("dest"),
				Publish:     publish,
				Annotations: map[string]string{
					ociv1.AnnotationSource:      v.Metadata.Homepage,
					ociv1.AnnotationLicenses:    v.Metadata.License,
					ociv1.AnnotationDescription: v.Metadata.Description,
				},
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
			})
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}

func testCmd() *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "Run the consumer test package executables",
		Description: `Run "example" and, when export_json_reader is enabled, "json_reader_test"
from the test package build directory. A companion executable that should have
been built but is missing fails the command.

Examples:
  sparrowctl test --build-dir ./test_package/build
  sparrowctl test -b ./test_package/build -o export_json_reader=True`,
		Flags: slices.Concat(hostFlags(), []cli.Flag{
			buildDirFlag(true),
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Bound for each test executable",
				Value: defaults.TestRunTimeout,
			},
			outputFlag(),
			formatFlag(),
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			h, err := loadHost(ctx, cmd, false)
			if err != nil {
				return err
			}
			e, err := newEngine()
			if err != nil {
				return err
			}
			_, set, err := e.Options(h.variant, h.overrides, h.os)
			if err != nil {
				return err
			}

			rep, err := newTestRunner().Run(ctx, testrunner.Request{
				BuildDir:        cmd.String("build-dir"),
				BuildType:       h.buildType,
				OS:              h.os,
				ExpectCompanion: testrunner.ExpectCompanion(set),
				Timeout:         cmd.Duration("timeout"),
			})
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, rep)
		},
	}
}
