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
	"runtime"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/k8s/client"
	"github.com/NVIDIA/sparrow-recipe/pkg/option"
	"github.com/NVIDIA/sparrow-recipe/pkg/profile"
	"github.com/NVIDIA/sparrow-recipe/pkg/recipe"
	"github.com/NVIDIA/sparrow-recipe/pkg/serializer"
	"github.com/NVIDIA/sparrow-recipe/pkg/toolchain"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name: "output",
		Usage: `Output destination (default: stdout).
	Supports: file paths or ConfigMap URIs (cm://namespace/name).`,
		Sources: cli.EnvVars(envPrefix + "OUTPUT"),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Sources: cli.EnvVars(envPrefix + "FORMAT"),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig used for cm:// profiles and outputs (default: $KUBECONFIG or ~/.kube/config)",
	}
}

func variantFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "variant",
		Value:   recipe.DefaultVariant,
		Usage:   "Recipe variant",
		Sources: cli.EnvVars(envPrefix + "VARIANT"),
	}
}

func optionFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "option",
		Aliases: []string{"o"},
		Usage:   "Option override as name=value (repeatable, e.g. -o shared=True -o sparrow/*:build_tests=True)",
	}
}

func profileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage: `Host profile with settings and options.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
		Sources: cli.EnvVars(envPrefix + "PROFILE"),
	}
}

func osFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "os",
		Usage: fmt.Sprintf("Target OS (supported values: %s; default: this host)", strings.Join(option.SupportedOSes(), ", ")),
	}
}

func compilerFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "compiler",
		Usage:   fmt.Sprintf("Compiler family (supported values: %s)", strings.Join(toolchain.SupportedFamilies(), ", ")),
		Sources: cli.EnvVars(envPrefix + "COMPILER"),
	}
}

func compilerVersionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "compiler-version",
		Usage:   "Compiler version (e.g. 13.2)",
		Sources: cli.EnvVars(envPrefix + "COMPILER_VERSION"),
	}
}

func cppstdFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "cppstd",
		Usage: "Requested C++ standard (e.g. 20, gnu23)",
	}
}

func buildTypeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "build-type",
		Usage: "Build type (default: profile value or Release)",
	}
}

func packageVersionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "package-version",
		Usage: "Version of the sparrow package being built (e.g. 1.4.0)",
	}
}

// hostFlags are shared by every command that evaluates the recipe.
func hostFlags() []cli.Flag {
	return []cli.Flag{
		variantFlag(),
		optionFlag(),
		profileFlag(),
		osFlag(),
		compilerFlag(),
		compilerVersionFlag(),
		cppstdFlag(),
		buildTypeFlag(),
		kubeconfigFlag(),
	}
}

// host is the merged view of profile and flags.
type host struct {
	variant   string
	os        option.OS
	toolchain toolchain.Identity
	buildType string
	overrides map[string]string
}

// loadHost reads --profile, lets flags override its settings and parses the
// result. The toolchain is only required when withToolchain is set.
func loadHost(ctx context.Context, cmd *cli.Command, withToolchain bool) (*host, error) {
	p := &profile.Profile{}
	if src := cmd.String("profile"); src != "" {
		var err error
		p, err = profile.Read(ctx, src, serializer.WithKubeconfig(cmd.String("kubeconfig")))
		if err != nil {
			return nil, err
		}
	}
	p.Apply(profile.Settings{
		OS:              cmd.String("os"),
		Compiler:        cmd.String("compiler"),
		CompilerVersion: cmd.String("compiler-version"),
		Cppstd:          cmd.String("cppstd"),
		BuildType:       cmd.String("build-type"),
	})
	if p.Settings.OS == "" {
		p.Settings.OS = runtime.GOOS
	}

	overrides, err := option.ParseOverrides(cmd.StringSlice("option"), recipe.PackageName)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid option override", err)
	}

	h := &host{
		variant:   cmd.String("variant"),
		buildType: p.BuildType(),
		overrides: p.Overrides(overrides),
	}
	if h.os, err = p.TargetOS(); err != nil {
		return nil, err
	}
	if withToolchain {
		if h.toolchain, err = p.Toolchain(); err != nil {
			return nil, err
		}
	}

	slog.Debug("host resolved",
		"variant", h.variant,
		"os", h.os,
		"toolchain", h.toolchain.String(),
		"buildType", h.buildType,
		"overrides", len(h.overrides),
	)
	return h, nil
}

func (h *host) request() recipe.Request {
	return recipe.Request{
		Variant:   h.variant,
		Options:   h.overrides,
		OS:        h.os,
		Toolchain: h.toolchain,
	}
}

func (h *host) declareRequest(packageVersion string) recipe.DeclareRequest {
	return recipe.DeclareRequest{
		Variant:        h.variant,
		Options:        h.overrides,
		OS:             h.os,
		BuildType:      h.buildType,
		PackageVersion: packageVersion,
	}
}

func newEngine() (*recipe.Engine, error) {
	return recipe.NewEngine(recipe.WithVersion(version))
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// writeOutput serializes doc to --output in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, doc any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	if cm, ok := ser.(*serializer.ConfigMapWriter); ok && cmd.String("kubeconfig") != "" {
		c, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
		if err != nil {
			return err
		}
		cm.WithClient(c)
	}
	defer func() {
		if err := serializer.Close(ser); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, doc)
}
