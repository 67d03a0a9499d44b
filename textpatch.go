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

package textpatch

import (
	"znkr.io/textpatch/diff"
	"znkr.io/textpatch/match"
	"znkr.io/textpatch/patch"
)

// Core types, re-exported so that simple uses of the library need only one import.
type (
	// Op describes an edit operation.
	Op = diff.Op
	// Edit is a single edit of a diff: an operation plus the text segment it applies to.
	Edit = diff.Edit
	// Patch is a localized edit script with absolute coordinates and rolling context.
	Patch = patch.Patch
	// Option configures the engines; constructors live in the engine packages.
	Option = diff.Option
)

const (
	Equal  = diff.Equal
	Delete = diff.Delete
	Insert = diff.Insert
)

// Compare returns the edit script that transforms text1 into text2.
//
// The following options are supported: [diff.Timeout], [diff.EditCost], [diff.Linewise].
func Compare(text1, text2 string, opts ...Option) []Edit {
	return diff.Diff(text1, text2, opts...)
}

// Locate finds the instance of pattern in text closest to loc with the best score, returning
// its rune offset or -1 if no acceptable match exists.
//
// The following options are supported: [match.Threshold], [match.Distance], [match.MaxBits].
func Locate(text, pattern string, loc int, opts ...Option) (int, error) {
	return match.Find(text, pattern, loc, opts...)
}

// Make computes the list of hunks that turns text1 into text2.
//
// All patch, diff, and match options are supported.
func Make(text1, text2 string, opts ...Option) []Patch {
	return patch.Make(text1, text2, opts...)
}

// Apply replays a list of hunks against text, tolerating local divergence. It returns the
// patched text and a vector recording, per hunk attempted, whether it applied.
//
// All patch, diff, and match options are supported.
func Apply(patches []Patch, text string, opts ...Option) (string, []bool) {
	return patch.Apply(patches, text, opts...)
}

// ToText serializes a list of hunks into the textual patch format.
func ToText(patches []Patch) string {
	return patch.ToText(patches)
}

// FromText parses the textual patch format back into a list of hunks.
func FromText(text string) ([]Patch, error) {
	return patch.FromText(text)
}
