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
	"slices"

	"github.com/urfave/cli/v3"
)

func variantsCmd() *cli.Command {
	return &cli.Command{
		Name:  "variants",
		Usage: "List recipe variants with their options and compiler minimums",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEngine()
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, e.List())
		},
	}
}

func optionsCmd() *cli.Command {
	return &cli.Command{
		Name:  "options",
		Usage: "Show the resolved option state of a variant",
		Description: `Apply overrides to the declared option defaults and prune options that
do not apply to the target OS (fPIC on Windows or with shared=True).

Examples:
  sparrowctl options --os Windows
  sparrowctl options -o shared=True -o export_json_reader=True`,
		Flags: slices.Concat(hostFlags(), []cli.Flag{outputFlag(), formatFlag()}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			h, err := loadHost(ctx, cmd, false)
			if err != nil {
				return err
			}
			e, err := newEngine()
			if err != nil {
				return err
			}
			st, err := e.State(h.variant, h.overrides, h.os)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, st)
		},
	}
}

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Validate the toolchain and resolve requirements and build parameters",
		Description: `Evaluate the recipe for a host: resolve options, check the compiler and
language standard against the variant minimums, list the required packages and
generate the cmake cache parameters.

Examples:
  sparrowctl resolve --compiler gcc --compiler-version 13.2 --cppstd 20
  sparrowctl resolve --profile ci/linux-clang18.yaml -o build_tests=True
  sparrowctl resolve --profile cm://ci/macos --format json --output cm://ci/sparrow-plan`,
		Flags: slices.Concat(hostFlags(), []cli.Flag{outputFlag(), formatFlag()}),
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
			return writeOutput(ctx, cmd, ev)
		},
	}
}

func componentsCmd() *cli.Command {
	return &cli.Command{
		Name:  "components",
		Usage: "Declare the installable components of a build",
		Description: `List the components a build provides, with their artifacts, link
requirements and cmake/pkg-config names. Debug builds of 1.3.0 and later carry
the "d" artifact suffix.

Examples:
  sparrowctl components --build-type Debug --package-version 1.4.0
  sparrowctl components -o export_json_reader=True`,
		Flags: slices.Concat(hostFlags(), []cli.Flag{packageVersionFlag(), outputFlag(), formatFlag()}),
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
			return writeOutput(ctx, cmd, m)
		},
	}
}
