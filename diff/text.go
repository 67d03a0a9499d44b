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
	"unicode/utf8"

	"znkr.io/textpatch/internal/runeutil"
)

// Text1 reconstructs the source text from an edit script.
func Text1(edits []Edit) string {
	var sb strings.Builder
	for _, e := range edits {
		if e.Op != Insert {
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// Text2 reconstructs the destination text from an edit script.
func Text2(edits []Edit) string {
	var sb strings.Builder
	for _, e := range edits {
		if e.Op != Delete {
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// XIndex maps a rune offset in the source text to the corresponding offset in the destination
// text. An offset inside a deletion maps to where the deletion began in the destination.
func XIndex(edits []Edit, loc int) int {
	chars1, chars2 := 0, 0
	lastChars1, lastChars2 := 0, 0
	for _, e := range edits {
		n := utf8.RuneCountInString(e.Text)
		if e.Op != Insert {
			chars1 += n
		}
		if e.Op != Delete {
			chars2 += n
		}
		if chars1 > loc {
			// Overshot the location.
			if e.Op == Delete {
				// The location was deleted.
				return lastChars2
			}
			break
		}
		lastChars1, lastChars2 = chars1, chars2
	}
	return lastChars2 + (loc - lastChars1)
}

// Levenshtein computes the edit distance of a script in runes, counting a delete-then-insert
// pair as max(|del|, |ins|) substitutions.
func Levenshtein(edits []Edit) int {
	lev, insertions, deletions := 0, 0, 0
	for _, e := range edits {
		n := utf8.RuneCountInString(e.Text)
		switch e.Op {
		case Insert:
			insertions += n
		case Delete:
			deletions += n
		case Equal:
			// A deletion and an insertion is one substitution.
			lev += max(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	return lev + max(insertions, deletions)
}

// PrettyHTML renders an edit script as HTML with insertions and deletions highlighted.
func PrettyHTML(edits []Edit) string {
	var sb strings.Builder
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\n", "&para;<br>")
	for _, e := range edits {
		text := r.Replace(e.Text)
		switch e.Op {
		case Insert:
			sb.WriteString("<ins style=\"background:#e6ffe6;\">")
			sb.WriteString(text)
			sb.WriteString("</ins>")
		case Delete:
			sb.WriteString("<del style=\"background:#ffe6e6;\">")
			sb.WriteString(text)
			sb.WriteString("</del>")
		case Equal:
			sb.WriteString("<span>")
			sb.WriteString(text)
			sb.WriteString("</span>")
		}
	}
	return sb.String()
}

// CommonPrefix returns the number of runes common to the start of both texts.
func CommonPrefix(text1, text2 string) int {
	return commonPrefix([]rune(text1), []rune(text2))
}

// CommonSuffix returns the number of runes common to the end of both texts.
func CommonSuffix(text1, text2 string) int {
	return commonSuffix([]rune(text1), []rune(text2))
}

// CommonOverlap returns the number of runes common to the end of text1 and the start of
// text2.
func CommonOverlap(text1, text2 string) int {
	return commonOverlap([]rune(text1), []rune(text2))
}

func commonPrefix(r1, r2 []rune) int {
	n := min(len(r1), len(r2))
	for i := 0; i < n; i++ {
		if r1[i] != r2[i] {
			return i
		}
	}
	return n
}

func commonSuffix(r1, r2 []rune) int {
	n := min(len(r1), len(r2))
	for i := 1; i <= n; i++ {
		if r1[len(r1)-i] != r2[len(r2)-i] {
			return i - 1
		}
	}
	return n
}

func commonOverlap(r1, r2 []rune) int {
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}
	// Truncate the longer side.
	if len(r1) > len(r2) {
		r1 = r1[len(r1)-len(r2):]
	} else if len(r1) < len(r2) {
		r2 = r2[:len(r1)]
	}
	n := len(r1)
	// Quick check for the worst case.
	if slices.Equal(r1, r2) {
		return n
	}

	// Start by looking for a single character match and increase length until no match is
	// found.
	best, length := 0, 1
	for {
		pattern := r1[n-length:]
		found := runeutil.Index(r2, pattern, 0)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 || slices.Equal(r1[n-length:], r2[:length]) {
			best = length
			length++
		}
	}
}

// A HalfMatch describes a substring at least half the length of the longer input that both
// inputs share, plus the text surrounding it on each side.
type HalfMatch struct {
	Prefix1, Suffix1 string // text1 before and after the common middle
	Prefix2, Suffix2 string // text2 before and after the common middle
	Common           string
}

// FindHalfMatch reports whether the two texts share a substring at least half the length of
// the longer text and returns the split. [Diff] uses this as a divide-and-conquer shortcut
// when running under a deadline; the shortcut can yield non-minimal diffs.
func FindHalfMatch(text1, text2 string) (HalfMatch, bool) {
	hm, ok := halfMatch([]rune(text1), []rune(text2))
	if !ok {
		return HalfMatch{}, false
	}
	return HalfMatch{
		Prefix1: string(hm.prefix1),
		Suffix1: string(hm.suffix1),
		Prefix2: string(hm.prefix2),
		Suffix2: string(hm.suffix2),
		Common:  string(hm.common),
	}, true
}

type halves struct {
	prefix1, suffix1 []rune
	prefix2, suffix2 []rune
	common           []rune
}

func halfMatch(r1, r2 []rune) (halves, bool) {
	// The same > comparison decides the unswap below, so ties stay consistent.
	long, short := r2, r1
	if len(r1) > len(r2) {
		long, short = r1, r2
	}
	if len(long) < 4 || len(short)*2 < len(long) {
		return halves{}, false // pointless
	}

	// First check if the second quarter is the seed for a half-match, then check again based
	// on the third quarter.
	hm1, ok1 := halfMatchI(long, short, (len(long)+3)/4)
	hm2, ok2 := halfMatchI(long, short, (len(long)+1)/2)

	var hm halves
	switch {
	case !ok1 && !ok2:
		return halves{}, false
	case !ok2:
		hm = hm1
	case !ok1:
		hm = hm2
	case len(hm1.common) > len(hm2.common):
		hm = hm1
	default:
		hm = hm2
	}

	if len(r1) > len(r2) {
		return hm, true
	}
	// The inputs were swapped for the search; swap the parts back.
	return halves{
		prefix1: hm.prefix2,
		suffix1: hm.suffix2,
		prefix2: hm.prefix1,
		suffix2: hm.suffix1,
		common:  hm.common,
	}, true
}

// halfMatchI checks whether a substring of short starting near long[i] covers at least half
// of long.
func halfMatchI(long, short []rune, i int) (halves, bool) {
	// Start with a quarter-length substring at position i as a seed.
	seed := long[i : i+len(long)/4]
	bestLen := 0
	var best halves
	for j := runeutil.Index(short, seed, 0); j != -1; j = runeutil.Index(short, seed, j+1) {
		prefixLength := commonPrefix(long[i:], short[j:])
		suffixLength := commonSuffix(long[:i], short[:j])
		if bestLen < suffixLength+prefixLength {
			bestLen = suffixLength + prefixLength
			best = halves{
				prefix1: long[:i-suffixLength],
				suffix1: long[i+prefixLength:],
				prefix2: short[:j-suffixLength],
				suffix2: short[j+prefixLength:],
				common:  short[j-suffixLength : j+prefixLength],
			}
		}
	}
	if bestLen*2 >= len(long) {
		return best, true
	}
	return halves{}, false
}
