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

package patch

import (
	"slices"
	"unicode/utf8"

	"znkr.io/textpatch/diff"
	"znkr.io/textpatch/internal/config"
	"znkr.io/textpatch/internal/runeutil"
	"znkr.io/textpatch/match"
)

// Apply replays a list of hunks against text, tolerating local divergence: each hunk is
// anchored with the fuzzy matcher near its expected location, drift between expected and
// actual locations carries over to subsequent hunks, and a hunk that anchors against
// modified content is spliced in through an index translation rather than verbatim.
//
// It returns the patched text and a vector recording, per hunk attempted, whether it
// applied. Oversized hunks are split before application, so the vector can be longer than
// the input list. The input hunks are never modified.
//
// All patch, diff, and match options are supported.
func Apply(patches []Patch, text string, opts ...Option) (string, []bool) {
	cfg := config.FromOptions(opts, config.PatchFlags)
	if len(patches) == 0 {
		return text, []bool{}
	}

	// Deep copy so that no changes are made to the caller's hunks.
	patches = DeepCopy(patches)

	nullPadding := addPadding(patches, cfg)
	r := make([]rune, 0, utf8.RuneCountInString(text)+2*len(nullPadding))
	r = append(r, nullPadding...)
	r = append(r, []rune(text)...)
	r = append(r, nullPadding...)
	patches = splitMax(patches, cfg)

	results := make([]bool, len(patches))
	// delta tracks the offset between the expected and actual location of the previous hunk.
	// If there are hunks expected at positions 10 and 20 and the first was found at 12, delta
	// is 2 and the second hunk is looked for near 22.
	delta := 0
	for x, p := range patches {
		expectedLoc := p.Start2 + delta
		text1 := []rune(diff.Text1(p.Diffs))
		startLoc := -1
		endLoc := -1
		if len(text1) > cfg.MaxBits {
			// splitMax only lets an oversized pattern through for a monster delete. Anchor
			// the two endpoints separately.
			startLoc = findNear(r, text1[:cfg.MaxBits], expectedLoc, cfg)
			if startLoc != -1 {
				endLoc = findNear(r, text1[len(text1)-cfg.MaxBits:], expectedLoc+len(text1)-cfg.MaxBits, cfg)
				if endLoc == -1 || startLoc >= endLoc {
					// Can't find a valid trailing context. Drop this hunk.
					startLoc = -1
				}
			}
		} else {
			startLoc = findNear(r, text1, expectedLoc, cfg)
		}
		if startLoc == -1 {
			// No match found. Subtract the delta for this failed hunk from subsequent hunks.
			results[x] = false
			delta -= p.Length2 - p.Length1
			continue
		}
		results[x] = true
		delta = startLoc - expectedLoc
		var text2 []rune
		if endLoc == -1 {
			text2 = r[startLoc:min(startLoc+len(text1), len(r))]
		} else {
			text2 = r[startLoc:min(endLoc+cfg.MaxBits, len(r))]
		}
		if slices.Equal(text1, text2) {
			// Perfect match: just shove the replacement text in.
			r = slices.Concat(r[:startLoc], []rune(diff.Text2(p.Diffs)), r[startLoc+len(text1):])
			continue
		}
		// Imperfect match: run a diff between the hunk's expectation and the actual content
		// to get a framework of equivalent indices.
		edits := diff.Diff(string(text1), string(text2), diff.Timeout(cfg.Timeout), diff.EditCost(cfg.EditCost), diff.Linewise(false))
		if len(text1) > cfg.MaxBits &&
			float64(diff.Levenshtein(edits))/float64(len(text1)) > cfg.DeleteThreshold {
			// The end points match but the content is unacceptably bad.
			results[x] = false
			continue
		}
		edits = diff.CleanupSemanticLossless(edits)
		index1 := 0
		for _, e := range p.Diffs {
			n := utf8.RuneCountInString(e.Text)
			if e.Op != diff.Equal {
				index2 := diff.XIndex(edits, index1)
				switch e.Op {
				case diff.Insert:
					r = slices.Insert(r, startLoc+index2, []rune(e.Text)...)
				case diff.Delete:
					r = slices.Delete(r, startLoc+index2, startLoc+diff.XIndex(edits, index1+n))
				}
			}
			if e.Op != diff.Delete {
				index1 += n
			}
		}
	}
	// Strip the padding off.
	r = r[len(nullPadding) : len(r)-len(nullPadding)]
	return string(r), results
}

// findNear anchors pattern in text near loc via the fuzzy matcher. Pattern lengths are
// bounded by the callers, so the matcher cannot fail with an error here.
func findNear(text, pattern []rune, loc int, cfg config.Config) int {
	found, _ := match.Find(string(text), string(pattern), loc,
		match.Threshold(cfg.Threshold), match.Distance(cfg.Distance), match.MaxBits(cfg.MaxBits))
	return found
}

// AddContext grows the hunk's pattern with surrounding text until the pattern is locally
// unique, capped so that it still fits the fuzzy matcher together with its margins, and
// attaches the grown prefix and suffix as equalities. Returns [ErrUnanchored] if the hunk
// has no coordinates yet.
//
// AddContext is called by the make functions for every hunk they cut; it is exported for
// callers assembling hunks by hand.
func AddContext(p *Patch, text string, opts ...Option) error {
	cfg := config.FromOptions(opts, config.PatchFlags)
	if p.Start1 < 0 || p.Start2 < 0 {
		return ErrUnanchored
	}
	addContext(p, []rune(text), cfg)
	return nil
}

func addContext(p *Patch, text []rune, cfg config.Config) {
	if len(text) == 0 {
		return
	}
	pattern := text[p.Start2 : p.Start2+p.Length1]
	padding := 0

	// Look for the first and last matches of pattern in text. If two different matches are
	// found, increase the pattern length.
	for runeutil.Index(text, pattern, 0) != runeutil.LastIndex(text, pattern, len(text)) &&
		len(pattern) < cfg.MaxBits-2*cfg.Margin {
		padding += cfg.Margin
		pattern = text[max(0, p.Start2-padding):min(len(text), p.Start2+p.Length1+padding)]
	}
	// Add one chunk for good luck.
	padding += cfg.Margin

	// Add the prefix.
	prefix := text[max(0, p.Start2-padding):p.Start2]
	if len(prefix) > 0 {
		p.Diffs = slices.Insert(p.Diffs, 0, diff.Edit{Op: diff.Equal, Text: string(prefix)})
	}
	// Add the suffix.
	suffix := text[p.Start2+p.Length1 : min(len(text), p.Start2+p.Length1+padding)]
	if len(suffix) > 0 {
		p.Diffs = append(p.Diffs, diff.Edit{Op: diff.Equal, Text: string(suffix)})
	}

	// Roll back the start points and extend the lengths.
	p.Start1 -= len(prefix)
	p.Start2 -= len(prefix)
	p.Length1 += len(prefix) + len(suffix)
	p.Length2 += len(prefix) + len(suffix)
}

// AddPadding bookends the hunk list with margin runes of padding on both edges so that hunks
// at the very start or end of a text have context to anchor against, shifting all hunk
// coordinates accordingly. It returns the padding string, which [Apply] also attaches to
// both ends of the text before matching.
//
// All patch, diff, and match options are supported.
func AddPadding(patches []Patch, opts ...Option) string {
	cfg := config.FromOptions(opts, config.PatchFlags)
	return string(addPadding(patches, cfg))
}

func addPadding(patches []Patch, cfg config.Config) []rune {
	paddingLength := cfg.Margin
	padding := make([]rune, paddingLength)
	for i := range padding {
		// Code points 1..margin; code point zero is deliberately avoided.
		padding[i] = rune(i + 1)
	}

	// Bump all the hunks forward.
	for i := range patches {
		patches[i].Start1 += paddingLength
		patches[i].Start2 += paddingLength
	}

	// Add some padding on the start of the first hunk.
	p := &patches[0]
	if len(p.Diffs) == 0 || p.Diffs[0].Op != diff.Equal {
		// Add a padding equality.
		p.Diffs = slices.Insert(p.Diffs, 0, diff.Edit{Op: diff.Equal, Text: string(padding)})
		p.Start1 -= paddingLength // should be 0
		p.Start2 -= paddingLength // should be 0
		p.Length1 += paddingLength
		p.Length2 += paddingLength
	} else if first := []rune(p.Diffs[0].Text); paddingLength > len(first) {
		// Grow the first equality.
		extra := paddingLength - len(first)
		p.Diffs[0].Text = string(padding[len(first):]) + p.Diffs[0].Text
		p.Start1 -= extra
		p.Start2 -= extra
		p.Length1 += extra
		p.Length2 += extra
	}

	// Add some padding on the end of the last hunk.
	p = &patches[len(patches)-1]
	if n := len(p.Diffs); n == 0 || p.Diffs[n-1].Op != diff.Equal {
		// Add a padding equality.
		p.Diffs = append(p.Diffs, diff.Edit{Op: diff.Equal, Text: string(padding)})
		p.Length1 += paddingLength
		p.Length2 += paddingLength
	} else if last := []rune(p.Diffs[n-1].Text); paddingLength > len(last) {
		// Grow the last equality.
		extra := paddingLength - len(last)
		p.Diffs[n-1].Text += string(padding[:extra])
		p.Length1 += extra
		p.Length2 += extra
	}
	return padding
}

// SplitMax decomposes every hunk whose pre-text span exceeds the fuzzy matcher's pattern
// limit into a run of smaller hunks with margin-sized rolling context. A deletion that
// dwarfs the limit behind a leading equality passes through as a single chunk: its two
// endpoints are anchored separately during apply.
//
// The input hunks are never modified; the split list is returned.
//
// All patch, diff, and match options are supported.
func SplitMax(patches []Patch, opts ...Option) []Patch {
	cfg := config.FromOptions(opts, config.PatchFlags)
	return splitMax(DeepCopy(patches), cfg)
}

func splitMax(patches []Patch, cfg config.Config) []Patch {
	patchSize := cfg.MaxBits
	margin := cfg.Margin
	for x := 0; x < len(patches); x++ {
		if patches[x].Length1 <= patchSize {
			continue
		}
		big := patches[x]
		// Remove the big old hunk.
		patches = slices.Delete(patches, x, x+1)
		x--
		start1, start2 := big.Start1, big.Start2
		var precontext []rune
		for len(big.Diffs) != 0 {
			// Create one of several smaller hunks.
			var p Patch
			empty := true
			p.Start1 = start1 - len(precontext)
			p.Start2 = start2 - len(precontext)
			if len(precontext) != 0 {
				p.Length1 = len(precontext)
				p.Length2 = len(precontext)
				p.Diffs = append(p.Diffs, diff.Edit{Op: diff.Equal, Text: string(precontext)})
			}
			for len(big.Diffs) != 0 && p.Length1 < patchSize-margin {
				op := big.Diffs[0].Op
				text := []rune(big.Diffs[0].Text)
				switch {
				case op == diff.Insert:
					// Insertions are harmless.
					p.Length2 += len(text)
					start2 += len(text)
					p.Diffs = append(p.Diffs, big.Diffs[0])
					big.Diffs = big.Diffs[1:]
					empty = false
				case op == diff.Delete && len(p.Diffs) == 1 && p.Diffs[0].Op == diff.Equal && len(text) > 2*patchSize:
					// This is a large deletion. Let it pass in one chunk.
					p.Length1 += len(text)
					start1 += len(text)
					empty = false
					p.Diffs = append(p.Diffs, diff.Edit{Op: op, Text: string(text)})
					big.Diffs = big.Diffs[1:]
				default:
					// Deletion or equality. Only take as much as we can stomach.
					text = text[:min(len(text), patchSize-p.Length1-margin)]
					p.Length1 += len(text)
					start1 += len(text)
					if op == diff.Equal {
						p.Length2 += len(text)
						start2 += len(text)
					} else {
						empty = false
					}
					p.Diffs = append(p.Diffs, diff.Edit{Op: op, Text: string(text)})
					if rest := []rune(big.Diffs[0].Text); len(text) == len(rest) {
						big.Diffs = big.Diffs[1:]
					} else {
						big.Diffs[0].Text = string(rest[len(text):])
					}
				}
			}
			// Compute the head context for the next hunk.
			precontext = []rune(diff.Text2(p.Diffs))
			if len(precontext) > margin {
				precontext = precontext[len(precontext)-margin:]
			}
			// Append the tail context for this hunk.
			postcontext := []rune(diff.Text1(big.Diffs))
			if len(postcontext) > margin {
				postcontext = postcontext[:margin]
			}
			if len(postcontext) != 0 {
				p.Length1 += len(postcontext)
				p.Length2 += len(postcontext)
				if n := len(p.Diffs); n != 0 && p.Diffs[n-1].Op == diff.Equal {
					p.Diffs[n-1].Text += string(postcontext)
				} else {
					p.Diffs = append(p.Diffs, diff.Edit{Op: diff.Equal, Text: string(postcontext)})
				}
			}
			if !empty {
				x++
				patches = slices.Insert(patches, x, p)
			}
		}
	}
	return patches
}
