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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"znkr.io/textpatch/internal/percent"
)

var (
	// ErrInvalidDelta is returned when a delta does not parse or does not cover its source
	// text exactly.
	ErrInvalidDelta = errors.New("invalid delta")

	// ErrInvalidEscape is returned when a percent-escape sequence is malformed.
	ErrInvalidEscape = errors.New("invalid escape")
)

// ToDelta compresses an edit script into a delta string: tab-separated tokens where "=N"
// keeps N runes, "-N" deletes N runes, and "+TEXT" inserts the percent-encoded TEXT. Together
// with the source text the delta fully determines the script; see [FromDelta].
func ToDelta(edits []Edit) string {
	var sb strings.Builder
	for i, e := range edits {
		if i > 0 {
			sb.WriteByte('\t')
		}
		switch e.Op {
		case Insert:
			sb.WriteByte('+')
			sb.WriteString(percent.Escape(e.Text))
		case Delete:
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(utf8.RuneCountInString(e.Text)))
		case Equal:
			sb.WriteByte('=')
			sb.WriteString(strconv.Itoa(utf8.RuneCountInString(e.Text)))
		}
	}
	return sb.String()
}

// FromDelta recreates an edit script from the source text and a delta produced by [ToDelta].
// The "="/"-" counts must cover text1 exactly; violations are reported as [ErrInvalidDelta],
// malformed percent escapes as [ErrInvalidEscape].
func FromDelta(text1, delta string) ([]Edit, error) {
	runes := []rune(text1)
	var edits []Edit
	pointer := 0
	for _, token := range strings.Split(delta, "\t") {
		if token == "" {
			// Blank tokens are ok (from a trailing \t).
			continue
		}
		// Each token begins with a one character parameter which specifies the operation of
		// this token.
		param := token[1:]
		switch token[0] {
		case '+':
			text, err := percent.Unescape(param)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidEscape, param)
			}
			edits = append(edits, Edit{Insert, text})
		case '-', '=':
			n, err := strconv.Atoi(param)
			if err != nil {
				return nil, fmt.Errorf("%w: bad length %q", ErrInvalidDelta, param)
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: negative length %d", ErrInvalidDelta, n)
			}
			if pointer+n > len(runes) {
				return nil, fmt.Errorf("%w: length %d overruns text1 (%d runes)", ErrInvalidDelta, pointer+n, len(runes))
			}
			text := string(runes[pointer : pointer+n])
			pointer += n
			if token[0] == '=' {
				edits = append(edits, Edit{Equal, text})
			} else {
				edits = append(edits, Edit{Delete, text})
			}
		default:
			return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidDelta, string(token[0]))
		}
	}
	if pointer != len(runes) {
		return nil, fmt.Errorf("%w: covered %d of %d runes of text1", ErrInvalidDelta, pointer, len(runes))
	}
	return edits, nil
}
