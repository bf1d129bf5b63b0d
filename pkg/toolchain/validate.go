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

package toolchain

import (
	"log/slog"

	"github.com/NVIDIA/sparrow-recipe/pkg/errors"
	"github.com/NVIDIA/sparrow-recipe/pkg/version"
)

// Validate checks identity against the recipe minimums. The standard check
// runs first; it only applies when identity.Standard is set.
func Validate(identity Identity, minStandard string, table VersionTable) error {
	if identity.Standard != "" && minStandard != "" {
		cmp, err := CompareStandards(identity.Standard, minStandard)
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid language standard", err,
				map[string]any{"standard": identity.Standard})
		}
		if cmp < 0 {
			return &StandardTooLowError{Required: minStandard, Actual: identity.Standard}
		}
	}

	required, ok := table.Minimum(identity.Family)
	if !ok {
		slog.Debug("compiler family not listed, skipping version check",
			"family", identity.Family, "version", identity.Version)
		return nil
	}

	minimum, err := version.Parse(required)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "invalid minimum version in table", err,
			map[string]any{"family": string(identity.Family), "minimum": required})
	}
	actual, err := version.Parse(identity.Version)
	if err != nil {
		return &IncompatibleToolchainError{
			Family:   identity.Family,
			Required: required,
			Actual:   identity.Version,
			Reason:   "unparsable compiler version",
		}
	}
	if actual.LessThan(minimum) {
		return &IncompatibleToolchainError{Family: identity.Family, Required: required, Actual: identity.Version}
	}
	return nil
}
