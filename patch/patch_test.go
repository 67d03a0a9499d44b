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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"znkr.io/textpatch/diff"
	"znkr.io/textpatch/patch"
)

func TestPatchString(t *testing.T) {
	p := patch.Patch{
		Diffs: []diff.Edit{
			{Op: diff.Equal, Text: "jump"},
			{Op: diff.Delete, Text: "s"},
			{Op: diff.Insert, Text: "ed"},
			{Op: diff.Equal, Text: " over "},
			{Op: diff.Delete, Text: "the"},
			{Op: diff.Insert, Text: "a"},
			{Op: diff.Equal, Text: "\nlaz"},
		},
		Start1:  20,
		Start2:  21,
		Length1: 18,
		Length2: 17,
	}
	want := "@@ -21,18 +22,17 @@\n jump\n-s\n+ed\n  over \n-the\n+a\n %0Alaz\n"
	assert.Equal(t, want, p.String())
}

func TestPatchStringUnanchored(t *testing.T) {
	p := patch.Patch{
		Diffs:  []diff.Edit{{Op: diff.Insert, Text: "x"}},
		Start1: patch.Unanchored,
		Start2: patch.Unanchored,
	}
	assert.Panics(t, func() { _ = p.String() })
}

func TestFromText(t *testing.T) {
	tests := []struct {
		text string
	}{
		{"@@ -21,18 +22,17 @@\n jump\n-s\n+ed\n  over \n-the\n+a\n %0Alaz\n"},
		{"@@ -1 +1 @@\n-a\n+b\n"},
		{"@@ -1,3 +0,0 @@\n-abc\n"},
		{"@@ -0,0 +1,3 @@\n+abc\n"},
	}
	for _, tt := range tests {
		patches, err := patch.FromText(tt.text)
		require.NoError(t, err)
		require.Len(t, patches, 1)
		// Round trip: parsing and re-serializing must reproduce the text.
		assert.Equal(t, tt.text, patches[0].String())
	}
}

func TestFromTextCoordinates(t *testing.T) {
	patches, err := patch.FromText("@@ -1 +1 @@\n-a\n+b\n")
	require.NoError(t, err)
	require.Len(t, patches, 1)
	p := patches[0]
	assert.Equal(t, 0, p.Start1)
	assert.Equal(t, 1, p.Length1)
	assert.Equal(t, 0, p.Start2)
	assert.Equal(t, 1, p.Length2)
	assert.Equal(t, []diff.Edit{
		{Op: diff.Delete, Text: "a"},
		{Op: diff.Insert, Text: "b"},
	}, p.Diffs)
}

func TestFromTextErrors(t *testing.T) {
	_, err := patch.FromText("Bad\nPatch\n")
	assert.ErrorIs(t, err, patch.ErrInvalidPatchText)

	_, err = patch.FromText("@@ -1 +1 @@\n*a\n")
	assert.ErrorIs(t, err, patch.ErrInvalidPatchText)

	_, err = patch.FromText("@@ -1 +1 @@\n-%zz\n")
	assert.ErrorIs(t, err, diff.ErrInvalidEscape)
}

func TestFromTextEmpty(t *testing.T) {
	patches, err := patch.FromText("")
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestToText(t *testing.T) {
	tests := []string{
		"@@ -21,18 +22,17 @@\n jump\n-s\n+ed\n  over \n-the\n+a\n  laz\n",
		"@@ -1,9 +1,9 @@\n-f\n+F\n oo+fooba\n@@ -7,9 +7,9 @@\n obar\n-,\n+.\n  tes\n",
	}
	for _, text := range tests {
		patches, err := patch.FromText(text)
		require.NoError(t, err)
		assert.Equal(t, text, patch.ToText(patches))
	}
	// An empty hunk list serializes to the empty string.
	assert.Equal(t, "", patch.ToText(nil))
}

func TestAddContext(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		text  string
		want  string
	}{
		{
			name:  "unique-context",
			patch: "@@ -21,4 +21,10 @@\n-jump\n+somersault\n",
			text:  "The quick brown fox jumps over the lazy dog.",
			want:  "@@ -17,12 +17,18 @@\n fox \n-jump\n+somersault\n s ov\n",
		},
		{
			name:  "not-enough-trailing-context",
			patch: "@@ -21,4 +21,10 @@\n-jump\n+somersault\n",
			text:  "The quick brown fox jumps.",
			want:  "@@ -17,10 +17,16 @@\n fox \n-jump\n+somersault\n s.\n",
		},
		{
			name:  "not-enough-leading-context",
			patch: "@@ -3 +3,2 @@\n-e\n+at\n",
			text:  "The quick brown fox jumps.",
			want:  "@@ -1,7 +1,8 @@\n Th\n-e\n+at\n  qui\n",
		},
		{
			name:  "ambiguity",
			patch: "@@ -3 +3,2 @@\n-e\n+at\n",
			text:  "The quick brown fox jumps.  The quick brown fox crashes.",
			want:  "@@ -1,27 +1,28 @@\n Th\n-e\n+at\n  quick brown fox jumps. \n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches, err := patch.FromText(tt.patch)
			require.NoError(t, err)
			require.Len(t, patches, 1)
			require.NoError(t, patch.AddContext(&patches[0], tt.text))
			assert.Equal(t, tt.want, patches[0].String())
		})
	}
}

func TestAddContextUnanchored(t *testing.T) {
	p := patch.Patch{
		Diffs:  []diff.Edit{{Op: diff.Insert, Text: "x"}},
		Start1: patch.Unanchored,
		Start2: patch.Unanchored,
	}
	assert.ErrorIs(t, patch.AddContext(&p, "some text"), patch.ErrUnanchored)
}

const (
	makeText1 = "The quick brown fox jumps over the lazy dog."
	makeText2 = "That quick brown fox jumped over a lazy dog."
)

func TestMake(t *testing.T) {
	// The second hunk must be "-21,17 +21,18", not "-22,17 +21,18", due to rolling context.
	expected21 := "@@ -1,8 +1,7 @@\n Th\n-at\n+e\n  qui\n@@ -21,17 +21,18 @@\n jump\n-ed\n+s\n  over \n-a\n+the\n  laz\n"
	patches := patch.Make(makeText2, makeText1)
	assert.Equal(t, expected21, patch.ToText(patches))

	expected12 := "@@ -1,11 +1,12 @@\n Th\n-e\n+at\n  quick b\n@@ -22,18 +22,17 @@\n jump\n-s\n+ed\n  over \n-the\n+a\n  laz\n"
	patches = patch.Make(makeText1, makeText2)
	assert.Equal(t, expected12, patch.ToText(patches))

	// The same hunks are produced from a precomputed edit script.
	edits := diff.Diff(makeText1, makeText2, diff.Linewise(false))
	patches = patch.MakeFromDiff(edits)
	assert.Equal(t, expected12, patch.ToText(patches))

	patches = patch.MakeFromTextDiff(makeText1, edits)
	assert.Equal(t, expected12, patch.ToText(patches))

	patches = patch.MakeFromTexts(makeText1, makeText2, edits)
	assert.Equal(t, expected12, patch.ToText(patches))
}

func TestMakeCharacterEncoding(t *testing.T) {
	patches := patch.Make("`1234567890-=[]\\;',./", "~!@#$%^&*()_+{}|:\"<>?")
	want := "@@ -1,21 +1,21 @@\n-%601234567890-=%5B%5D%5C;',./\n+~!@#$%25%5E&*()_+%7B%7D%7C:%22%3C%3E?\n"
	assert.Equal(t, want, patch.ToText(patches))
}

func TestMakeCharacterDecoding(t *testing.T) {
	patches, err := patch.FromText("@@ -1,21 +1,21 @@\n-%601234567890-=%5B%5D%5C;',./\n+~!@#$%25%5E&*()_+%7B%7D%7C:%22%3C%3E?\n")
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Equal(t, "`1234567890-=[]\\;',./", diff.Text1(patches[0].Diffs))
	assert.Equal(t, "~!@#$%^&*()_+{}|:\"<>?", diff.Text2(patches[0].Diffs))
}

func TestMakeEmpty(t *testing.T) {
	assert.Empty(t, patch.Make("", ""))
	assert.Empty(t, patch.MakeFromDiff(nil))
}

func TestDeepCopy(t *testing.T) {
	patches := patch.Make(makeText1, makeText2)
	copied := patch.DeepCopy(patches)
	require.Equal(t, patches, copied)

	// Mutating the copy must not leak into the original.
	copied[0].Diffs[0] = diff.Edit{Op: diff.Insert, Text: "XXX"}
	copied[0].Start1 = 99
	assert.NotEqual(t, patches[0].Diffs[0], copied[0].Diffs[0])
	assert.NotEqual(t, patches[0].Start1, copied[0].Start1)
}
