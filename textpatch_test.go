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

package textpatch_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/textpatch"
	"znkr.io/textpatch/diff"
)

func TestRoundTrip(t *testing.T) {
	// Compare, patch, serialize, parse, apply: the full pipeline recreates text2 from text1.
	text1 := "The quick brown fox jumps over the lazy dog.\nIt barked.\n"
	text2 := "The quick brown cat jumps over the lazy dog.\nIt miaowed twice.\n"

	edits := textpatch.Compare(text1, text2, diff.Timeout(0))
	if got := diff.Text2(edits); got != text2 {
		t.Fatalf("Compare does not reconstruct text2: %q", got)
	}

	patches := textpatch.Make(text1, text2)
	serialized := textpatch.ToText(patches)
	parsed, err := textpatch.FromText(serialized)
	if err != nil {
		t.Fatalf("FromText(%q) failed: %v", serialized, err)
	}
	if diff := cmp.Diff(patches, parsed); diff != "" {
		t.Errorf("patch round trip is different [-want,+got]:\n%s", diff)
	}

	got, applied := textpatch.Apply(parsed, text1)
	if got != text2 {
		t.Errorf("Apply = %q, want %q", got, text2)
	}
	for i, ok := range applied {
		if !ok {
			t.Errorf("hunk %d did not apply", i)
		}
	}
}

func TestLocate(t *testing.T) {
	loc, err := textpatch.Locate("abcdefghijk", "fgh", 5)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if loc != 5 {
		t.Errorf("Locate = %d, want 5", loc)
	}
}
