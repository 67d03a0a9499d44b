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
)

// Line-mode encoding assigns each distinct line a code point and diffs the encoded texts,
// which reduces the problem size by orders of magnitude for typical documents.
//
// Slot 0 of the dictionary is reserved blank so that no line is ever encoded as code point
// zero, and the surrogate halves are skipped so that the encoded text remains a valid string.
// The dictionary is capped: text1 may introduce at most maxLines1 distinct lines and text2 at
// most maxLines2, after which the remainder of the text is swallowed as a single oversize
// line.
const (
	maxLines1 = 40000
	maxLines2 = 65535

	surrogateMin  = 0xD800
	surrogateSize = 0x800
)

// lineIndexToRune maps a dictionary index to its code point, skipping the surrogate block.
func lineIndexToRune(i int) rune {
	if i >= surrogateMin {
		return rune(i + surrogateSize)
	}
	return rune(i)
}

// lineRuneToIndex is the inverse of lineIndexToRune.
func lineRuneToIndex(r rune) int {
	if int(r) >= surrogateMin+surrogateSize {
		return int(r) - surrogateSize
	}
	return int(r)
}

// LinesToChars encodes the lines of both texts: each distinct line becomes one code point of
// the returned encoded strings. The returned dictionary maps code points back to lines via
// [CharsToLines]; its first entry is always the empty string.
func LinesToChars(text1, text2 string) (chars1, chars2 string, lines []string) {
	e1, e2, lines := linesToRunes([]rune(text1), []rune(text2))
	return string(e1), string(e2), lines
}

// CharsToLines rehydrates the text of an encoded edit script from code points back to lines.
func CharsToLines(edits []Edit, lines []string) []Edit {
	return charsToLinesEdits(slices.Clone(edits), lines)
}

func linesToRunes(r1, r2 []rune) (e1, e2 []rune, lines []string) {
	// Slot 0 stays blank: no line may be encoded as code point zero.
	lines = []string{""}
	lineHash := make(map[string]int)

	e1 = linesMunge(r1, &lines, lineHash, maxLines1)
	e2 = linesMunge(r2, &lines, lineHash, maxLines2)
	return e1, e2, lines
}

// linesMunge encodes text one line per code point, growing the shared dictionary as it goes.
func linesMunge(text []rune, lines *[]string, lineHash map[string]int, maxLines int) []rune {
	encoded := make([]rune, 0, 64)
	lineStart := 0
	for lineStart < len(text) {
		lineEnd := slices.Index(text[lineStart:], '\n')
		if lineEnd == -1 {
			lineEnd = len(text) - 1
		} else {
			lineEnd += lineStart
		}
		line := string(text[lineStart : lineEnd+1])
		if id, ok := lineHash[line]; ok {
			encoded = append(encoded, lineIndexToRune(id))
		} else {
			if len(*lines) == maxLines {
				// The dictionary is full; the remainder of the text becomes one line.
				line = string(text[lineStart:])
				lineEnd = len(text) - 1
			}
			*lines = append(*lines, line)
			lineHash[line] = len(*lines) - 1
			encoded = append(encoded, lineIndexToRune(len(*lines)-1))
		}
		lineStart = lineEnd + 1
	}
	return encoded
}

func charsToLinesEdits(edits []Edit, lines []string) []Edit {
	for i := range edits {
		var sb strings.Builder
		for _, r := range edits[i].Text {
			sb.WriteString(lines[lineRuneToIndex(r)])
		}
		edits[i].Text = sb.String()
	}
	return edits
}
