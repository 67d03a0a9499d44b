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

// Package diff computes edit scripts between two Unicode strings.
//
// The main function is [Diff], which returns the sequence of deletions, insertions, and
// equalities that rewrites one string into the other. The raw script produced by the bisection
// search is reshaped by several cleanup passes ([CleanupMerge], [CleanupSemantic],
// [CleanupSemanticLossless], [CleanupEfficiency]) into a form useful to humans and to
// downstream patching.
//
// One Unicode scalar value (rune) is one atom: all offsets and counts in this package,
// including the delta format of [ToDelta] and [FromDelta], are rune counts rather than byte
// offsets.
//
// By default the search is bounded by a deadline and may return a valid but non-minimal
// script for very large inputs; use [Timeout] with a zero duration together with
// Linewise(false) to always search for a minimal script.
package diff

import (
	"slices"
	"time"

	"znkr.io/textpatch/internal/config"
	"znkr.io/textpatch/internal/runeutil"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int8

const (
	Equal  Op = iota // The segment is common to both texts
	Delete           // A deletion of a segment from text1
	Insert           // An insertion of a segment from text2
)

// Edit describes a single edit of a diff: an operation plus the text segment it applies to.
// An edit script is an ordered []Edit.
//
// In a well-formed script the concatenation of all segments with op != Insert is text1 and
// the concatenation of all segments with op != Delete is text2. After [CleanupMerge] no
// segment is empty, no two adjacent edits share an op, and a deletion always precedes an
// adjacent insertion.
type Edit struct {
	Op   Op
	Text string
}

// Diff compares text1 and text2 and returns the edit script that transforms text1 into text2.
//
// Identical inputs return a single equality (or an empty script when both are empty). The
// result is always run through [CleanupMerge] and is therefore canonical.
//
// The following options are supported: [Timeout], [EditCost], [Linewise].
//
// Important: The output is not guaranteed to be stable and may change with minor version
// upgrades. DO NOT rely on the output being stable.
func Diff(text1, text2 string, opts ...Option) []Edit {
	cfg := config.FromOptions(opts, config.DiffFlags)
	var deadline time.Time
	if cfg.Timeout > 0 {
		deadline = time.Now().Add(cfg.Timeout)
	}
	return diffMain([]rune(text1), []rune(text2), cfg.Linewise, deadline, cfg)
}

func diffMain(r1, r2 []rune, linewise bool, deadline time.Time, cfg config.Config) []Edit {
	if slices.Equal(r1, r2) {
		if len(r1) > 0 {
			return []Edit{{Equal, string(r1)}}
		}
		return nil
	}

	// Strip common prefix and suffix (speedup); compute works on the middle block.
	n := commonPrefix(r1, r2)
	prefix := r1[:n]
	r1, r2 = r1[n:], r2[n:]

	n = commonSuffix(r1, r2)
	suffix := r1[len(r1)-n:]
	r1, r2 = r1[:len(r1)-n], r2[:len(r2)-n]

	edits := compute(r1, r2, linewise, deadline, cfg)

	if len(prefix) > 0 {
		edits = slices.Insert(edits, 0, Edit{Equal, string(prefix)})
	}
	if len(suffix) > 0 {
		edits = append(edits, Edit{Equal, string(suffix)})
	}
	return CleanupMerge(edits)
}

// compute finds the differences between two texts that have no common prefix or suffix.
func compute(r1, r2 []rune, linewise bool, deadline time.Time, cfg config.Config) []Edit {
	if len(r1) == 0 {
		return []Edit{{Insert, string(r2)}}
	}
	if len(r2) == 0 {
		return []Edit{{Delete, string(r1)}}
	}

	long, short := r1, r2
	op := Delete
	if len(r1) < len(r2) {
		long, short = r2, r1
		op = Insert
	}
	if i := runeutil.Index(long, short, 0); i != -1 {
		// Shorter text is inside the longer text (speedup).
		return []Edit{
			{op, string(long[:i])},
			{Equal, string(short)},
			{op, string(long[i+len(short):])},
		}
	}

	if len(short) == 1 {
		// Single character string. After the substring speedup above, the character can't be
		// an equality.
		return []Edit{{Delete, string(r1)}, {Insert, string(r2)}}
	}

	if cfg.Timeout > 0 {
		// With unlimited time the half-match shortcut is skipped: it can yield non-minimal
		// diffs.
		if hm, ok := halfMatch(r1, r2); ok {
			// Diff the two surrounding pairs separately and stitch with the common middle.
			a := diffMain(hm.prefix1, hm.prefix2, linewise, deadline, cfg)
			b := diffMain(hm.suffix1, hm.suffix2, linewise, deadline, cfg)
			a = append(a, Edit{Equal, string(hm.common)})
			return append(a, b...)
		}
	}

	if linewise && len(r1) > 100 && len(r2) > 100 {
		return lineMode(r1, r2, deadline, cfg)
	}
	return bisect(r1, r2, deadline, cfg)
}

// lineMode runs a quick line-level diff on both texts, then re-diffs the replaced blocks
// character by character for greater accuracy. This speedup can produce non-minimal diffs.
func lineMode(r1, r2 []rune, deadline time.Time, cfg config.Config) []Edit {
	e1, e2, lines := linesToRunes(r1, r2)
	edits := diffMain(e1, e2, false, deadline, cfg)
	edits = charsToLinesEdits(edits, lines)
	// Eliminate freak matches (e.g. blank lines).
	edits = CleanupSemantic(edits)

	// Re-diff any replacement blocks character by character.
	var out []Edit
	var textDelete, textInsert []rune
	countDelete, countInsert := 0, 0
	flush := func() {
		if countDelete >= 1 && countInsert >= 1 {
			out = append(out, diffMain(textDelete, textInsert, false, deadline, cfg)...)
		} else {
			if len(textDelete) > 0 {
				out = append(out, Edit{Delete, string(textDelete)})
			}
			if len(textInsert) > 0 {
				out = append(out, Edit{Insert, string(textInsert)})
			}
		}
		countDelete, countInsert = 0, 0
		textDelete, textInsert = nil, nil
	}
	for _, e := range edits {
		switch e.Op {
		case Delete:
			countDelete++
			textDelete = append(textDelete, []rune(e.Text)...)
		case Insert:
			countInsert++
			textInsert = append(textInsert, []rune(e.Text)...)
		case Equal:
			flush()
			out = append(out, e)
		}
	}
	flush()
	return out
}
