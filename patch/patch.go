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

// Package patch builds, serializes, splits, pads, and fuzzily applies patches.
//
// A [Patch] is a hunk: a localized edit script with absolute coordinates into the pre- and
// post-text plus rolling context. [Make] turns two texts (or a precomputed edit script) into
// a list of hunks, [Apply] replays them against a possibly-diverged text, anchoring each hunk
// with the fuzzy matcher and tolerating local drift, and [ToText]/[FromText] serialize hunk
// lists in a unidiff-like format.
//
// As in the rest of the module, one rune is one atom and all coordinates are rune counts.
package patch

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"znkr.io/textpatch/diff"
	"znkr.io/textpatch/internal/config"
	"znkr.io/textpatch/internal/percent"
)

// Patch represents one hunk.
//
// Start1 and Start2 are the rune offsets of the hunk in the pre- and post-text; Length1 and
// Length2 are the number of runes the hunk consumes from the pre-text and produces into the
// post-text. A hunk fresh out of construction that has not been anchored yet carries the
// [Unanchored] sentinel in both starts; such a hunk cannot be serialized.
type Patch struct {
	Diffs   []diff.Edit
	Start1  int
	Start2  int
	Length1 int
	Length2 int
}

// Unanchored is the sentinel for the starts of a hunk whose coordinates have not been
// assigned yet.
const Unanchored = -1

// ErrUnanchored is returned when an operation requires a hunk with assigned coordinates.
var ErrUnanchored = errors.New("patch is not anchored")

// ErrInvalidPatchText is returned by [FromText] for input that does not parse.
var ErrInvalidPatchText = errors.New("invalid patch text")

// String formats a hunk in the textual patch format: a "@@ -s1,l1 +s2,l2 @@" header with
// 1-based coordinates followed by percent-encoded body lines. The output always ends in a
// newline.
//
// String panics on an unanchored hunk; anchor it via [Make] or parse it via [FromText] first.
func (p Patch) String() string {
	if p.Start1 < 0 || p.Start2 < 0 {
		panic("patch: cannot serialize an unanchored hunk")
	}
	coords := func(start, length int) string {
		switch length {
		case 0:
			return strconv.Itoa(start) + ",0"
		case 1:
			return strconv.Itoa(start + 1)
		default:
			return strconv.Itoa(start+1) + "," + strconv.Itoa(length)
		}
	}
	var sb strings.Builder
	sb.WriteString("@@ -")
	sb.WriteString(coords(p.Start1, p.Length1))
	sb.WriteString(" +")
	sb.WriteString(coords(p.Start2, p.Length2))
	sb.WriteString(" @@\n")
	// Escape the body of the patch with %xx notation.
	for _, e := range p.Diffs {
		switch e.Op {
		case diff.Insert:
			sb.WriteByte('+')
		case diff.Delete:
			sb.WriteByte('-')
		case diff.Equal:
			sb.WriteByte(' ')
		}
		sb.WriteString(percent.Escape(e.Text))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ToText serializes a list of hunks. An empty list serializes to the empty string; any
// non-empty serialization ends in a newline.
func ToText(patches []Patch) string {
	var sb strings.Builder
	for _, p := range patches {
		sb.WriteString(p.String())
	}
	return sb.String()
}

var patchHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@$`)

// FromText parses the textual representation of hunks produced by [ToText].
func FromText(text string) ([]Patch, error) {
	if text == "" {
		return nil, nil
	}
	var patches []Patch
	lines := strings.Split(text, "\n")
	i := 0
	for i < len(lines) {
		m := patchHeader.FindStringSubmatch(lines[i])
		if m == nil {
			return nil, fmt.Errorf("%w: bad header %q", ErrInvalidPatchText, lines[i])
		}
		var p Patch
		p.Start1, p.Length1 = parseCoords(m[1], m[2])
		p.Start2, p.Length2 = parseCoords(m[3], m[4])
		i++

		for i < len(lines) {
			if lines[i] == "" {
				// Blank line? Whatever.
				i++
				continue
			}
			sign, body := lines[i][0], lines[i][1:]
			if sign == '@' {
				// Start of the next hunk.
				break
			}
			decoded, err := percent.Unescape(body)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", diff.ErrInvalidEscape, body)
			}
			switch sign {
			case '-':
				p.Diffs = append(p.Diffs, diff.Edit{Op: diff.Delete, Text: decoded})
			case '+':
				p.Diffs = append(p.Diffs, diff.Edit{Op: diff.Insert, Text: decoded})
			case ' ':
				p.Diffs = append(p.Diffs, diff.Edit{Op: diff.Equal, Text: decoded})
			default:
				return nil, fmt.Errorf("%w: unknown line start %q in %q", ErrInvalidPatchText, string(sign), lines[i])
			}
			i++
		}
		patches = append(patches, p)
	}
	return patches, nil
}

// parseCoords reverses the header encoding: a missing length means length 1 with the start
// converted from 1-based, a zero length leaves the start unchanged.
func parseCoords(startStr, lengthStr string) (start, length int) {
	start, _ = strconv.Atoi(startStr) // the header regexp guarantees digits
	switch lengthStr {
	case "":
		return start - 1, 1
	case "0":
		return start, 0
	default:
		length, _ = strconv.Atoi(lengthStr)
		return start - 1, length
	}
}

// DeepCopy returns a copy of patches that shares no mutable state with the original.
func DeepCopy(patches []Patch) []Patch {
	out := make([]Patch, len(patches))
	for i, p := range patches {
		p.Diffs = slices.Clone(p.Diffs)
		out[i] = p
	}
	return out
}

// Make computes the list of hunks that turns text1 into text2. The edit script is computed
// via [diff.Diff]; when it has more than two edits it is reshaped with the semantic and
// efficiency cleanups before hunks are cut.
//
// All patch, diff, and match options are supported.
func Make(text1, text2 string, opts ...Option) []Patch {
	cfg := config.FromOptions(opts, config.PatchFlags)
	edits := diff.Diff(text1, text2, diffOptions(cfg)...)
	if len(edits) > 2 {
		edits = diff.CleanupSemantic(edits)
		edits = diff.CleanupEfficiency(edits, diff.EditCost(cfg.EditCost))
	}
	return makePatches([]rune(text1), edits, cfg)
}

// MakeFromDiff cuts hunks from a precomputed edit script; the pre-text is reconstructed from
// the script itself.
//
// All patch, diff, and match options are supported.
func MakeFromDiff(edits []diff.Edit, opts ...Option) []Patch {
	cfg := config.FromOptions(opts, config.PatchFlags)
	return makePatches([]rune(diff.Text1(edits)), edits, cfg)
}

// MakeFromTextDiff cuts hunks from a precomputed edit script over text1.
//
// All patch, diff, and match options are supported.
func MakeFromTextDiff(text1 string, edits []diff.Edit, opts ...Option) []Patch {
	cfg := config.FromOptions(opts, config.PatchFlags)
	return makePatches([]rune(text1), edits, cfg)
}

// MakeFromTexts cuts hunks from a precomputed edit script over text1. text2 is ignored: the
// script already encodes it. This entry point exists for callers that hold all three around.
//
// All patch, diff, and match options are supported.
func MakeFromTexts(text1, text2 string, edits []diff.Edit, opts ...Option) []Patch {
	_ = text2
	cfg := config.FromOptions(opts, config.PatchFlags)
	return makePatches([]rune(text1), edits, cfg)
}

// makePatches walks the edit script left to right and cuts it into hunks: a run of edits
// separated by less than 2*margin runes of equality shares a hunk, a longer equality closes
// the hunk. The rolling prepatch text tracks the result of applying all closed hunks, so
// that the context attached to later hunks reflects what an applier will see.
func makePatches(text1 []rune, edits []diff.Edit, cfg config.Config) []Patch {
	if len(edits) == 0 {
		return nil
	}
	var patches []Patch
	p := Patch{Start1: Unanchored, Start2: Unanchored}
	charCount1, charCount2 := 0, 0
	prepatch := slices.Clone(text1)
	postpatch := slices.Clone(text1)
	for i, e := range edits {
		text := []rune(e.Text)
		if len(p.Diffs) == 0 && e.Op != diff.Equal {
			// A new hunk starts here.
			p.Start1 = charCount1
			p.Start2 = charCount2
		}
		switch e.Op {
		case diff.Insert:
			p.Diffs = append(p.Diffs, e)
			p.Length2 += len(text)
			postpatch = slices.Insert(postpatch, charCount2, text...)
		case diff.Delete:
			p.Diffs = append(p.Diffs, e)
			p.Length1 += len(text)
			postpatch = slices.Delete(postpatch, charCount2, charCount2+len(text))
		case diff.Equal:
			if len(text) <= 2*cfg.Margin && len(p.Diffs) != 0 && i != len(edits)-1 {
				// Small equality inside a hunk.
				p.Diffs = append(p.Diffs, e)
				p.Length1 += len(text)
				p.Length2 += len(text)
			}
			if len(text) >= 2*cfg.Margin && len(p.Diffs) != 0 {
				// Time for a new hunk.
				addContext(&p, prepatch, cfg)
				patches = append(patches, p)
				p = Patch{Start1: Unanchored, Start2: Unanchored}
				// Unlike unidiff, these hunks have rolling context: update the prepatch text
				// and position to reflect the application of the hunk just closed.
				prepatch = slices.Clone(postpatch)
				charCount1 = charCount2
			}
		}
		if e.Op != diff.Insert {
			charCount1 += len(text)
		}
		if e.Op != diff.Delete {
			charCount2 += len(text)
		}
	}
	// Pick up the leftover hunk if not empty.
	if len(p.Diffs) != 0 {
		addContext(&p, prepatch, cfg)
		patches = append(patches, p)
	}
	return patches
}

// diffOptions translates the combined patch configuration back into diff options.
func diffOptions(cfg config.Config) []diff.Option {
	return []diff.Option{
		diff.Timeout(cfg.Timeout),
		diff.EditCost(cfg.EditCost),
		diff.Linewise(cfg.Linewise),
	}
}
