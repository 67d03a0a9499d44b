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
	"time"

	"znkr.io/textpatch/internal/config"
)

// Bisect finds the middle of an optimal edit path between the two texts using the
// bidirectional variant of Myers' O(ND) algorithm, splits the problem there, and recurses.
//
// The deadline is checked once per d-level; a zero deadline means unlimited time. When the
// deadline expires mid-search the coarse script [{Delete, text1}, {Insert, text2}] is
// returned, which is still valid, just not minimal.
//
// Most callers want [Diff], which adds prefix/suffix stripping, further speedups, and the
// cleanup passes on top of the raw bisection.
//
// References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266
// (1986). https://doi.org/10.1007/BF01840446
func Bisect(text1, text2 string, deadline time.Time) []Edit {
	cfg := config.Default
	if deadline.IsZero() {
		cfg.Timeout = 0
	}
	return bisect([]rune(text1), []rune(text2), deadline, cfg)
}

func bisect(r1, r2 []rune, deadline time.Time, cfg config.Config) []Edit {
	n1, n2 := len(r1), len(r2)
	maxD := (n1 + n2 + 1) / 2
	vOffset := maxD
	vLength := 2*maxD + 2
	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := n1 - n2
	// If the total number of characters is odd, the front path will collide with the reverse
	// path.
	front := delta%2 != 0
	// Offsets for the start and end of the k loops. Once a path has run off an edge of the
	// edit grid there is no point walking its diagonal again.
	k1start, k1end := 0, 0
	k2start, k2end := 0, 0
	for d := 0; d < maxD; d++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		// Walk the front path one step.
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < n1 && y1 < n2 && r1[x1] == r2[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > n1:
				// Ran off the right of the graph.
				k1end += 2
			case y1 > n2:
				// Ran off the bottom of the graph.
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// Mirror x2 onto the top-left coordinate system.
					x2 := n1 - v2[k2Offset]
					if x1 >= x2 {
						// Overlap detected.
						return bisectSplit(r1, r2, x1, y1, deadline, cfg)
					}
				}
			}
		}

		// Walk the reverse path one step.
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < n1 && y2 < n2 && r1[n1-x2-1] == r2[n2-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > n1:
				// Ran off the left of the graph.
				k2end += 2
			case y2 > n2:
				// Ran off the top of the graph.
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					// Mirror x2 onto the top-left coordinate system.
					x2 = n1 - x2
					if x1 >= x2 {
						// Overlap detected.
						return bisectSplit(r1, r2, x1, y1, deadline, cfg)
					}
				}
			}
		}
	}
	// Diff took too long and hit the deadline, or the number of edits equals the number of
	// characters: no commonality at all.
	return []Edit{{Delete, string(r1)}, {Insert, string(r2)}}
}

// bisectSplit splits the problem at (x, y) and diffs both halves separately.
func bisectSplit(r1, r2 []rune, x, y int, deadline time.Time, cfg config.Config) []Edit {
	a := diffMain(r1[:x], r2[:y], false, deadline, cfg)
	b := diffMain(r1[x:], r2[y:], false, deadline, cfg)
	return append(a, b...)
}
