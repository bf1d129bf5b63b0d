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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/logging"
)

const (
	name           = "sparrowctl"
	versionDefault = "dev"
	envPrefix      = "SPARROW_"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "interrupted")
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps recipe rejections to 2 and everything else to 1.
func exitCode(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrCodeInvalidRequest, errors.ErrCodeUnknownOption,
		errors.ErrCodeStandardTooLow, errors.ErrCodeIncompatibleToolchain:
		return 2
	default:
		return 1
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "sparrow recipe engine",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Resolve, build, install and test the sparrow library for a host toolchain.

The recipe decides which options apply, whether the compiler is new enough,
which third-party packages are required, which build parameters are passed to
cmake and which components the installed package provides.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars(envPrefix+"LOG_LEVEL", logging.EnvLogLevel),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
			)
			return ctx, nil
		},
		Commands: []*cli.Command{
			detectCmd(),
			variantsCmd(),
			optionsCmd(),
			resolveCmd(),
			componentsCmd(),
			buildCmd(),
			installCmd(),
			testCmd(),
		},
	}
}
