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

package runeutil

import "testing"

func TestIndex(t *testing.T) {
	tests := []struct {
		s, sep string
		from   int
		want   int
	}{
		{"abcabc", "abc", 0, 0},
		{"abcabc", "abc", 1, 3},
		{"abcabc", "abc", 4, -1},
		{"abcabc", "d", 0, -1},
		{"abcabc", "", 2, 2},
		{"", "a", 0, -1},
		{"abcabc", "abc", -5, 0},
		{"aڀbڀc", "ڀc", 0, 3},
	}
	for _, tt := range tests {
		if got := Index([]rune(tt.s), []rune(tt.sep), tt.from); got != tt.want {
			t.Errorf("Index(%q, %q, %d) = %d, want %d", tt.s, tt.sep, tt.from, got, tt.want)
		}
	}
}

func TestLastIndex(t *testing.T) {
	tests := []struct {
		s, sep string
		from   int
		want   int
	}{
		{"abcabc", "abc", 6, 3},
		{"abcabc", "abc", 2, 0},
		{"abcabc", "d", 6, -1},
		{"abcabc", "", 100, 6},
		{"", "a", 0, -1},
		{"aڀbڀc", "ڀ", 5, 3},
	}
	for _, tt := range tests {
		if got := LastIndex([]rune(tt.s), []rune(tt.sep), tt.from); got != tt.want {
			t.Errorf("LastIndex(%q, %q, %d) = %d, want %d", tt.s, tt.sep, tt.from, got, tt.want)
		}
	}
}
