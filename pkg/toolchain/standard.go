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
	"fmt"
	"strings"
)

// standardRank orders language standard years. The two-digit years wrap, so
// they cannot be compared numerically.
var standardRank = map[string]int{
	"98": 0,
	"03": 1,
	"11": 2,
	"14": 3,
	"17": 4,
	"20": 5,
	"23": 6,
	"26": 7,
}

// NormalizeStandard strips the "gnu" extension prefix and a "c++" spelling
// ("gnu20" and "c++20" both become "20").
func NormalizeStandard(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "gnu")
	s = strings.TrimPrefix(s, "c++")
	return s
}

// CompareStandards returns -1, 0 or 1 ordering a and b by publication.
func CompareStandards(a, b string) (int, error) {
	ra, err := rank(a)
	if err != nil {
		return 0, err
	}
	rb, err := rank(b)
	if err != nil {
		return 0, err
	}
	switch {
	case ra < rb:
		return -1, nil
	case ra > rb:
		return 1, nil
	}
	return 0, nil
}

func rank(s string) (int, error) {
	r, ok := standardRank[NormalizeStandard(s)]
	if !ok {
		return 0, fmt.Errorf("unknown language standard %q", s)
	}
	return r, nil
}

// ParseStandard normalizes s and checks it names a known standard.
func ParseStandard(s string) (string, error) {
	if _, err := rank(s); err != nil {
		return "", err
	}
	return NormalizeStandard(s), nil
}
