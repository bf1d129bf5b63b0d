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

package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{in: "13"},
		{in: "11.2"},
		{in: "194"},
		{in: "1.3.0"},
		{in: "v1.3.0"},
		{in: "", wantErr: ErrEmptyVersion},
		{in: "   ", wantErr: ErrEmptyVersion},
		{in: "abc", wantErr: ErrInvalidVersion},
		{in: "1..2", wantErr: ErrInvalidVersion},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse(tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.False(t, v.IsZero())
			assert.Equal(t, tt.in, v.String())
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "12", b: "12", want: 0},
		{a: "12", b: "12.0.0", want: 0},
		{a: "11.4", b: "12", want: -1},
		{a: "11.2", b: "11.2", want: 0},
		{a: "11.1", b: "11.2", want: -1},
		{a: "193", b: "194", want: -1},
		{a: "1.3.0", b: "1.2.9", want: 1},
		{a: "1.10.0", b: "1.9.0", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.a).Compare(MustParse(tt.b)))
		})
	}
}

func TestZeroVersionOrdering(t *testing.T) {
	var zero Version
	assert.True(t, zero.IsZero())
	assert.Equal(t, 0, zero.Compare(Version{}))
	assert.True(t, zero.LessThan(MustParse("0.0.1")))
	assert.True(t, MustParse("1").AtLeast(zero))
}

func TestRange(t *testing.T) {
	r, err := ParseRange("[>=3.28.1 <4.2.0]")
	require.NoError(t, err)
	assert.Equal(t, "[>=3.28.1 <4.2.0]", r.String())

	assert.True(t, r.Contains(MustParse("3.28.1")))
	assert.True(t, r.Contains(MustParse("4.1.2")))
	assert.False(t, r.Contains(MustParse("3.27.9")))
	assert.False(t, r.Contains(MustParse("4.2.0")))
	assert.False(t, r.Contains(Version{}))
}

func TestParseRangeErrors(t *testing.T) {
	for _, in := range []string{"", "[]", "[>=banana]"} {
		_, err := ParseRange(in)
		assert.ErrorIs(t, err, ErrInvalidRange, in)
	}
}

func TestIsRange(t *testing.T) {
	assert.True(t, IsRange("[>=3.28.1 <4.2.0]"))
	assert.False(t, IsRange("3.0.4"))
}

func TestTextRoundTrip(t *testing.T) {
	var v Version
	require.NoError(t, v.UnmarshalText([]byte("1.3.0")))
	b, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", string(b))

	require.NoError(t, v.UnmarshalText(nil))
	assert.True(t, v.IsZero())

	assert.Error(t, v.UnmarshalText([]byte("x.y")))
}
