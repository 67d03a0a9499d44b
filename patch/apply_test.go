// Copyright 2025 Florian Zenker (flo@znkr.io)
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

package patch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"znkr.io/textpatch/patch"
)

func TestApplyEmpty(t *testing.T) {
	got, results := patch.Apply(nil, "Hello world.")
	assert.Equal(t, "Hello world.", got)
	assert.Empty(t, results)
}

func TestApply(t *testing.T) {
	patches := patch.Make(makeText1, makeText2)

	tests := []struct {
		name        string
		text        string
		want        string
		wantResults []bool
	}{
		{
			name:        "exact-match",
			text:        "The quick brown fox jumps over the lazy dog.",
			want:        "That quick brown fox jumped over a lazy dog.",
			wantResults: []bool{true, true},
		},
		{
			name:        "partial-match",
			text:        "The quick red rabbit jumps over the tired tiger.",
			want:        "That quick red rabbit jumped over a tired tiger.",
			wantResults: []bool{true, true},
		},
		{
			name:        "failed-match",
			text:        "I am the very model of a modern major general.",
			want:        "I am the very model of a modern major general.",
			wantResults: []bool{false, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, results := patch.Apply(patches, tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantResults, results)
		})
	}
}

func TestApplyBigDelete(t *testing.T) {
	digits70 := strings.Repeat("1234567890", 7)
	patches := patch.Make("x"+digits70+"y", "xabcy")
	diverged := "x12345678901234567890---------------++++++++++---------------12345678901234567890y"

	// The monster delete anchors both endpoints, but the content between them diverged
	// beyond the delete threshold: the deletion fails while the insertion applies.
	got, results := patch.Apply(patches, diverged)
	assert.Equal(t, "xabc"+diverged[1:len(diverged)-1]+"y", got)
	assert.Equal(t, []bool{false, true}, results)

	// A looser threshold lets the deletion through.
	got, results = patch.Apply(patches, diverged, patch.DeleteThreshold(0.6))
	assert.Equal(t, "xabcy", got)
	assert.Equal(t, []bool{true, true}, results)

	// Small change: close enough content applies under the default threshold.
	got, results = patch.Apply(patches, "x123456789012345678901234567890-----++++++++++-----123456789012345678901234567890y")
	assert.Equal(t, "xabcy", got)
	assert.Equal(t, []bool{true, true}, results)
}

func TestApplyCompensatesForFailedHunk(t *testing.T) {
	patches := patch.Make(
		"abcdefghijklmnopqrstuvwxyz--------------------1234567890",
		"abcXXXXXXXXXXdefghijklmnopqrstuvwxyz--------------------1234567YYYYYYYYYY890",
	)
	got, results := patch.Apply(patches, "ABCDEFGHIJKLMNOPQRSTUVWXYZ--------------------1234567890")
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ--------------------1234567YYYYYYYYYY890", got)
	assert.Equal(t, []bool{false, true}, results)
}

func TestApplyEdges(t *testing.T) {
	// Edge exact match.
	patches := patch.Make("", "test")
	got, results := patch.Apply(patches, "")
	assert.Equal(t, "test", got)
	assert.Equal(t, []bool{true}, results)

	// Near edge exact match.
	patches = patch.Make("XY", "XtestY")
	got, results = patch.Apply(patches, "XY")
	assert.Equal(t, "XtestY", got)
	assert.Equal(t, []bool{true}, results)

	// Edge partial match.
	patches = patch.Make("y", "y123")
	got, results = patch.Apply(patches, "x")
	assert.Equal(t, "x123", got)
	assert.Equal(t, []bool{true}, results)
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	patches := patch.Make("", "test")
	before := patch.ToText(patches)
	patch.Apply(patches, "")
	assert.Equal(t, before, patch.ToText(patches))

	patches = patch.Make("The quick brown fox jumps over the lazy dog.", "Woof")
	before = patch.ToText(patches)
	patch.Apply(patches, "The quick brown fox jumps over the lazy dog.")
	assert.Equal(t, before, patch.ToText(patches))
}

func TestAddPadding(t *testing.T) {
	tests := []struct {
		name         string
		text1, text2 string
		before       string
		after        string
	}{
		{
			name:   "edges-full",
			text1:  "XXXXYYYY",
			text2:  "XXXXtestYYYY",
			before: "@@ -1,8 +1,12 @@\n XXXX\n+test\n YYYY\n",
			after:  "@@ -5,8 +5,12 @@\n XXXX\n+test\n YYYY\n",
		},
		{
			name:   "edges-partial",
			text1:  "XY",
			text2:  "XtestY",
			before: "@@ -1,2 +1,6 @@\n X\n+test\n Y\n",
			after:  "@@ -2,8 +2,12 @@\n %02%03%04X\n+test\n Y%01%02%03\n",
		},
		{
			name:   "edges-none",
			text1:  "",
			text2:  "test",
			before: "@@ -0,0 +1,4 @@\n+test\n",
			after:  "@@ -1,8 +1,12 @@\n %01%02%03%04\n+test\n %01%02%03%04\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches := patch.Make(tt.text1, tt.text2)
			require.Equal(t, tt.before, patch.ToText(patches))
			padding := patch.AddPadding(patches)
			assert.Equal(t, "\x01\x02\x03\x04", padding)
			assert.Equal(t, tt.after, patch.ToText(patches))
		})
	}
}

func TestSplitMax(t *testing.T) {
	patches := patch.Make(
		"abcdefghijklmnopqrstuvwxyz01234567890",
		"XabXcdXefXghXijXklXmnXopXqrXstXuvXwxXyzX01X23X45X67X89X0",
	)
	split := patch.SplitMax(patches)

	// Splitting must not leave any hunk beyond the matcher's pattern limit...
	for _, p := range split {
		assert.LessOrEqual(t, p.Length1, 32)
	}
	assert.Greater(t, len(split), len(patches))

	// ...and must preserve the meaning of the hunks.
	got, results := patch.Apply(split, "abcdefghijklmnopqrstuvwxyz01234567890")
	assert.Equal(t, "XabXcdXefXghXijXklXmnXopXqrXstXuvXwxXyzX01X23X45X67X89X0", got)
	for _, ok := range results {
		assert.True(t, ok)
	}
}

func TestSplitMaxMonsterDelete(t *testing.T) {
	// A deletion dominating the hunk behind a leading equality passes through as a single
	// oversized chunk.
	digits70 := strings.Repeat("1234567890", 7)
	patches := patch.Make("x"+digits70+"y", "xabcy")
	split := patch.SplitMax(patches)
	oversized := 0
	for _, p := range split {
		if p.Length1 > 32 {
			oversized++
		}
	}
	assert.Equal(t, 1, oversized)
}

func TestSplitMaxNoOp(t *testing.T) {
	patches := patch.Make("abcdef", "abcdefx")
	split := patch.SplitMax(patches)
	assert.Equal(t, patch.ToText(patches), patch.ToText(split))
}
