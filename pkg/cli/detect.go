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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sparrow-recipe/pkg/detect"
)

var newDetector = detect.New

func detectCmd() *cli.Command {
	return &cli.Command{
		Name:  "detect",
		Usage: "Write a profile describing this machine",
		Description: `Probe the local compiler and operating system and print a profile that can
be passed back with --profile.

Examples:
  sparrowctl detect --output ~/.sparrow/default.yaml
  CXX=clang++-18 sparrowctl detect --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "cxx",
				Usage:   "Compiler binary to probe instead of the platform defaults",
				Sources: cli.EnvVars(envPrefix+"CXX", "CXX"),
			},
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d := newDetector()
			if cxx := cmd.String("cxx"); cxx != "" {
				d.Compiler = cxx
			}
			p, err := d.Detect(ctx)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, p)
		},
	}
}
