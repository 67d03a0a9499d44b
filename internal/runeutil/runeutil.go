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

// Package runeutil provides substring searches over rune slices.
//
// The engines in this module work in rune space so that every offset is a character count;
// the strings package would hand back byte offsets.
package runeutil

import "slices"

// Index returns the index of the first occurrence of sep in s at or after from, or -1 if sep
// is not present. A negative from is treated as 0. An empty sep matches at from when from is
// at most len(s).
func Index(s, sep []rune, from int) int {
	from = max(from, 0)
	for i := from; i+len(sep) <= len(s); i++ {
		if slices.Equal(s[i:i+len(sep)], sep) {
			return i
		}
	}
	return -1
}

// LastIndex returns the index of the last occurrence of sep in s that starts at or before
// from, or -1 if there is none. An empty sep matches at min(from, len(s)).
func LastIndex(s, sep []rune, from int) int {
	from = min(from, len(s)-len(sep))
	for i := from; i >= 0; i-- {
		if slices.Equal(s[i:i+len(sep)], sep) {
			return i
		}
	}
	return -1
}
