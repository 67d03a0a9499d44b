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

package diff

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"znkr.io/textpatch/internal/config"
)

// CleanupMerge canonicalizes an edit script: runs of same-op edits are coalesced, common
// prefixes and suffixes of delete/insert pairs are factored out into the surrounding
// equalities, empty edits are dropped, and single edits flanked by equalities are shifted
// sideways to eliminate splits. The result has no empty edits, no two adjacent edits with
// the same op, and deletions ordered before adjacent insertions.
//
// The input is left unmodified.
func CleanupMerge(edits []Edit) []Edit {
	if len(edits) == 0 {
		return nil
	}
	out := make([]Edit, 0, len(edits))
	var del, ins []rune

	appendEqual := func(text []rune) {
		if len(text) == 0 {
			return
		}
		if n := len(out); n > 0 && out[n-1].Op == Equal {
			out[n-1].Text += string(text)
		} else {
			out = append(out, Edit{Equal, string(text)})
		}
	}
	flush := func() {
		var suffix []rune
		if len(del) > 0 && len(ins) > 0 {
			// Factor out any common prefix into the preceding equality and any common suffix
			// into the following one.
			if n := commonPrefix(ins, del); n > 0 {
				appendEqual(ins[:n])
				ins, del = ins[n:], del[n:]
			}
			if n := commonSuffix(ins, del); n > 0 {
				suffix = ins[len(ins)-n:]
				ins, del = ins[:len(ins)-n], del[:len(del)-n]
			}
		}
		if len(del) > 0 {
			out = append(out, Edit{Delete, string(del)})
		}
		if len(ins) > 0 {
			out = append(out, Edit{Insert, string(ins)})
		}
		del, ins = nil, nil
		appendEqual(suffix)
	}

	for _, e := range edits {
		switch e.Op {
		case Delete:
			del = append(del, []rune(e.Text)...)
		case Insert:
			ins = append(ins, []rune(e.Text)...)
		case Equal:
			if e.Text == "" {
				// Empty equalities vanish; the surrounding edits keep accumulating.
				continue
			}
			flush()
			appendEqual([]rune(e.Text))
		}
	}
	flush()

	// Second pass: a single edit surrounded by equalities can eliminate a split by shifting
	// sideways, e.g. A<ins>BA</ins>C becomes <ins>AB</ins>AC.
	changed := false
	for i := 1; i < len(out)-1; i++ {
		if out[i-1].Op != Equal || out[i+1].Op != Equal {
			continue
		}
		prev, cur, next := out[i-1], out[i], out[i+1]
		if strings.HasSuffix(cur.Text, prev.Text) {
			// Shift the edit over the previous equality.
			out[i].Text = prev.Text + cur.Text[:len(cur.Text)-len(prev.Text)]
			out[i+1].Text = prev.Text + next.Text
			out = slices.Delete(out, i-1, i)
			changed = true
		} else if strings.HasPrefix(cur.Text, next.Text) {
			// Shift the edit over the next equality.
			out[i-1].Text = prev.Text + next.Text
			out[i].Text = cur.Text[len(next.Text):] + next.Text
			out = slices.Delete(out, i+1, i+2)
			changed = true
		}
	}
	if changed {
		// The shifts may have created new merge opportunities.
		return CleanupMerge(out)
	}
	return out
}

// CleanupSemantic rewrites an edit script to eliminate semantically trivial equalities: short
// stretches of coincidentally common text between two edits are folded into the edits, and
// overlaps between adjacent deletions and insertions are extracted into equalities.
//
// The input is left unmodified.
func CleanupSemantic(edits []Edit) []Edit {
	out := slices.Clone(edits)
	changed := false
	var equalities []int // indexes of candidate equalities in out
	lastEquality := ""
	// Number of runes inserted and deleted on either side of the candidate equality.
	var insLen1, delLen1, insLen2, delLen2 int
	for i := 0; i < len(out); i++ {
		if out[i].Op == Equal {
			equalities = append(equalities, i)
			insLen1, delLen1 = insLen2, delLen2
			insLen2, delLen2 = 0, 0
			lastEquality = out[i].Text
			continue
		}
		if out[i].Op == Insert {
			insLen2 += utf8.RuneCountInString(out[i].Text)
		} else {
			delLen2 += utf8.RuneCountInString(out[i].Text)
		}
		// An equality is eliminated when it is no longer than the larger edit on each of its
		// sides.
		eqLen := utf8.RuneCountInString(lastEquality)
		if lastEquality != "" && eqLen <= max(insLen1, delLen1) && eqLen <= max(insLen2, delLen2) {
			eq := equalities[len(equalities)-1]
			// Duplicate record: turn the equality into a delete plus insert.
			out = slices.Insert(out, eq, Edit{Delete, lastEquality})
			out[eq+1].Op = Insert
			// Throw away the equality we just deleted and the previous one: it needs to be
			// reevaluated.
			equalities = equalities[:len(equalities)-1]
			if len(equalities) > 0 {
				equalities = equalities[:len(equalities)-1]
			}
			if len(equalities) > 0 {
				i = equalities[len(equalities)-1]
			} else {
				i = -1
			}
			insLen1, delLen1, insLen2, delLen2 = 0, 0, 0, 0
			lastEquality = ""
			changed = true
		}
	}
	if changed {
		out = CleanupMerge(out)
	}
	out = CleanupSemanticLossless(out)

	// Find overlaps between deletions and insertions, e.g. <del>abcxxx</del><ins>xxxdef</ins>
	// becomes <del>abc</del>xxx<ins>def</ins>, but only if the overlap is at least half as long
	// as the edit ahead or behind it.
	for i := 1; i < len(out); i++ {
		if out[i-1].Op != Delete || out[i].Op != Insert {
			continue
		}
		deletion := []rune(out[i-1].Text)
		insertion := []rune(out[i].Text)
		overlap1 := commonOverlap(deletion, insertion)
		overlap2 := commonOverlap(insertion, deletion)
		if overlap1 >= overlap2 {
			if overlap1*2 >= len(deletion) || overlap1*2 >= len(insertion) {
				out = slices.Insert(out, i, Edit{Equal, string(insertion[:overlap1])})
				out[i-1].Text = string(deletion[:len(deletion)-overlap1])
				out[i+1].Text = string(insertion[overlap1:])
				i++
			}
		} else {
			if overlap2*2 >= len(deletion) || overlap2*2 >= len(insertion) {
				// Reversed overlap: the end of the insertion matches the start of the
				// deletion.
				out = slices.Insert(out, i, Edit{Equal, string(deletion[:overlap2])})
				out[i-1] = Edit{Insert, string(insertion[:len(insertion)-overlap2])}
				out[i+1] = Edit{Delete, string(deletion[overlap2:])}
				i++
			}
		}
		i++
	}
	return out
}

// CleanupSemanticLossless shifts single edits that are flanked by equalities on both sides
// towards the nearest logical boundary (a blank line, a line break, the end of a sentence, a
// word boundary) without changing the texts the script encodes.
//
// The input is left unmodified.
func CleanupSemanticLossless(edits []Edit) []Edit {
	out := slices.Clone(edits)
	for i := 1; i < len(out)-1; i++ {
		if out[i-1].Op != Equal || out[i+1].Op != Equal {
			continue
		}
		// The edit is flanked by equalities on both sides; find the range over which it can
		// slide without changing the reconstruction.
		equality1 := []rune(out[i-1].Text)
		edit := []rune(out[i].Text)
		equality2 := []rune(out[i+1].Text)

		// First, shift the edit as far left as possible.
		if n := commonSuffix(equality1, edit); n > 0 {
			common := slices.Clone(edit[len(edit)-n:])
			equality1 = equality1[:len(equality1)-n]
			edit = append(slices.Clone(common), edit[:len(edit)-n]...)
			equality2 = append(common, equality2...)
		}

		// Second, step rune by rune to the right, looking for the best boundary fit.
		bestEquality1 := slices.Clone(equality1)
		bestEdit := slices.Clone(edit)
		bestEquality2 := slices.Clone(equality2)
		bestScore := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)
		for len(edit) > 0 && len(equality2) > 0 && edit[0] == equality2[0] {
			equality1 = append(equality1, edit[0])
			edit = append(edit[1:], equality2[0])
			equality2 = equality2[1:]
			score := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)
			// The >= favors trailing rather than leading whitespace on edits.
			if score >= bestScore {
				bestScore = score
				bestEquality1 = slices.Clone(equality1)
				bestEdit = slices.Clone(edit)
				bestEquality2 = slices.Clone(equality2)
			}
		}

		if out[i-1].Text == string(bestEquality1) {
			continue // no improvement found
		}
		if len(bestEquality1) > 0 {
			out[i-1].Text = string(bestEquality1)
		} else {
			out = slices.Delete(out, i-1, i)
			i--
		}
		out[i].Text = string(bestEdit)
		if len(bestEquality2) > 0 {
			out[i+1].Text = string(bestEquality2)
		} else {
			out = slices.Delete(out, i+1, i+2)
			i--
		}
	}
	return out
}

// boundaryScore rates the quality of the split between one and two: 6 is best (an edge), 0 is
// worst (a split inside a word).
func boundaryScore(one, two []rune) int {
	if len(one) == 0 || len(two) == 0 {
		return 6 // edges are the best
	}
	char1 := one[len(one)-1]
	char2 := two[0]
	nonAlphaNumeric1 := !unicode.IsLetter(char1) && !unicode.IsNumber(char1)
	nonAlphaNumeric2 := !unicode.IsLetter(char2) && !unicode.IsNumber(char2)
	whitespace1 := nonAlphaNumeric1 && unicode.IsSpace(char1)
	whitespace2 := nonAlphaNumeric2 && unicode.IsSpace(char2)
	lineBreak1 := whitespace1 && (char1 == '\r' || char1 == '\n')
	lineBreak2 := whitespace2 && (char2 == '\r' || char2 == '\n')
	blankLine1 := lineBreak1 && hasBlankLineSuffix(one)
	blankLine2 := lineBreak2 && hasBlankLinePrefix(two)

	switch {
	case blankLine1 || blankLine2:
		return 5
	case lineBreak1 || lineBreak2:
		return 4
	case nonAlphaNumeric1 && !whitespace1 && whitespace2:
		// End of sentence.
		return 3
	case whitespace1 || whitespace2:
		return 2
	case nonAlphaNumeric1 || nonAlphaNumeric2:
		return 1
	}
	return 0
}

// hasBlankLineSuffix reports whether r ends in a blank line, i.e. matches \n\r?\n$.
func hasBlankLineSuffix(r []rune) bool {
	n := len(r)
	if n >= 2 && r[n-1] == '\n' && r[n-2] == '\n' {
		return true
	}
	return n >= 3 && r[n-1] == '\n' && r[n-2] == '\r' && r[n-3] == '\n'
}

// hasBlankLinePrefix reports whether r starts with a blank line, i.e. matches ^\r?\n\r?\n.
func hasBlankLinePrefix(r []rune) bool {
	i := 0
	if i < len(r) && r[i] == '\r' {
		i++
	}
	if i >= len(r) || r[i] != '\n' {
		return false
	}
	i++
	if i < len(r) && r[i] == '\r' {
		i++
	}
	return i < len(r) && r[i] == '\n'
}

// CleanupEfficiency rewrites an edit script to reduce the number of edits for machine
// processing: an equality shorter than the edit cost that is flanked by edits of both kinds,
// or by three of the four surrounding edit flavors when shorter than half the edit cost, is
// cheaper to fold into its neighbors than to keep.
//
// The following options are supported: [Timeout], [EditCost], [Linewise]; only [EditCost] is
// consulted. The input is left unmodified.
func CleanupEfficiency(edits []Edit, opts ...Option) []Edit {
	cfg := config.FromOptions(opts, config.DiffFlags)
	return cleanupEfficiency(edits, cfg.EditCost)
}

func cleanupEfficiency(edits []Edit, editCost int) []Edit {
	out := slices.Clone(edits)
	changed := false
	var equalities []int // indexes of candidate equalities in out
	lastEquality := ""
	// Is there an insertion or deletion before and after the candidate equality?
	var preIns, preDel, postIns, postDel bool
	for i := 0; i < len(out); i++ {
		if out[i].Op == Equal {
			if utf8.RuneCountInString(out[i].Text) < editCost && (postIns || postDel) {
				// Candidate found.
				equalities = append(equalities, i)
				preIns, preDel = postIns, postDel
				lastEquality = out[i].Text
			} else {
				// Not a candidate; purge previous candidates.
				equalities = equalities[:0]
				lastEquality = ""
			}
			postIns, postDel = false, false
			continue
		}
		if out[i].Op == Delete {
			postDel = true
		} else {
			postIns = true
		}
		// Five flavors to be split:
		//   <ins>A</ins><del>B</del>XY<ins>C</ins><del>D</del>
		//   <ins>A</ins>X<ins>C</ins><del>D</del>
		//   <ins>A</ins><del>B</del>X<ins>C</ins>
		//   <ins>A</del>X<ins>C</ins><del>D</del>
		//   <ins>A</ins><del>B</del>X<del>C</del>
		sides := 0
		for _, b := range [...]bool{preIns, preDel, postIns, postDel} {
			if b {
				sides++
			}
		}
		if lastEquality != "" && ((preIns && preDel && postIns && postDel) ||
			(float64(utf8.RuneCountInString(lastEquality)) < float64(editCost)/2 && sides == 3)) {
			eq := equalities[len(equalities)-1]
			out = slices.Insert(out, eq, Edit{Delete, lastEquality})
			out[eq+1].Op = Insert
			equalities = equalities[:len(equalities)-1]
			lastEquality = ""
			if preIns && preDel {
				// No changes made which could affect previous entry, keep going.
				postIns, postDel = true, true
				equalities = equalities[:0]
			} else {
				// Throw away the previous equality: it needs to be reevaluated.
				if len(equalities) > 0 {
					equalities = equalities[:len(equalities)-1]
				}
				if len(equalities) > 0 {
					i = equalities[len(equalities)-1]
				} else {
					i = -1
				}
				postIns, postDel = false, false
			}
			changed = true
		}
	}
	if changed {
		out = CleanupMerge(out)
	}
	return out
}
