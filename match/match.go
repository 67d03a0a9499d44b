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

// Package match locates a pattern in a haystack near an expected offset, tolerating errors.
//
// The search is the Bitap (shift-or) bit-parallel algorithm: candidate locations are scored
// by a blend of edit distance and distance from the expected location, and the best location
// whose score stays under [Threshold] wins. Because one mask word tracks the whole pattern,
// the pattern length is bounded by [MaxBits].
//
// As in the rest of the module, one rune is one atom and all offsets are rune counts.
package match

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"znkr.io/textpatch/internal/config"
	"znkr.io/textpatch/internal/runeutil"
)

// ErrPatternTooLong is returned when the pattern has more runes than [MaxBits] permits.
var ErrPatternTooLong = errors.New("pattern too long")

// Find locates the instance of pattern in text closest to loc with the best score, returning
// its rune offset or -1 if no acceptable match exists. loc is clamped to [0, len(text)].
//
// The following options are supported: [Threshold], [Distance], [MaxBits].
func Find(text, pattern string, loc int, opts ...Option) (int, error) {
	cfg := config.FromOptions(opts, config.MatchFlags)
	return find([]rune(text), []rune(pattern), loc, cfg)
}

func find(text, pattern []rune, loc int, cfg config.Config) (int, error) {
	loc = max(0, min(loc, len(text)))
	switch {
	case slices.Equal(text, pattern):
		// Shortcut: pattern is the whole text.
		return 0, nil
	case len(text) == 0:
		// Nothing to match against.
		return -1, nil
	case loc+len(pattern) <= len(text) && slices.Equal(text[loc:loc+len(pattern)], pattern):
		// Perfect match at the perfect spot. (Includes the case of an empty pattern.)
		return loc, nil
	}
	// Do a fuzzy compare.
	return bitap(text, pattern, loc, cfg)
}

// Bitap locates the best instance of pattern in text near loc using the Bitap algorithm,
// returning its rune offset or -1 if no match scores under the threshold.
//
// The following options are supported: [Threshold], [Distance], [MaxBits].
func Bitap(text, pattern string, loc int, opts ...Option) (int, error) {
	cfg := config.FromOptions(opts, config.MatchFlags)
	return bitap([]rune(text), []rune(pattern), loc, cfg)
}

func bitap(text, pattern []rune, loc int, cfg config.Config) (int, error) {
	if len(pattern) > cfg.MaxBits {
		return -1, fmt.Errorf("%w: %d runes exceeds the limit of %d", ErrPatternTooLong, len(pattern), cfg.MaxBits)
	}
	if len(pattern) == 0 {
		// An empty pattern matches wherever it is expected.
		return max(0, min(loc, len(text))), nil
	}

	s := alphabet(pattern)

	// Highest score beyond which we give up.
	scoreThreshold := cfg.Threshold
	// Is there a nearby exact match? (speedup)
	if best := runeutil.Index(text, pattern, loc); best != -1 {
		scoreThreshold = min(bitapScore(0, best, loc, len(pattern), cfg), scoreThreshold)
		// What about in the other direction? (speedup)
		if best = runeutil.LastIndex(text, pattern, loc+len(pattern)); best != -1 {
			scoreThreshold = min(bitapScore(0, best, loc, len(pattern), cfg), scoreThreshold)
		}
	}

	matchMask := uint64(1) << (len(pattern) - 1)
	bestLoc := -1
	binMax := len(pattern) + len(text)
	var lastRD []uint64
	for d := 0; d < len(pattern); d++ {
		// Scan for the best match; each iteration allows for one more error. Run a binary
		// search to determine how far from loc we can stray at this error level.
		binMin, binMid := 0, binMax
		for binMin < binMid {
			if bitapScore(d, loc+binMid, loc, len(pattern), cfg) <= scoreThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		// Use the result from this iteration as the maximum for the next.
		binMax = binMid
		start := max(1, loc-binMid+1)
		finish := min(loc+binMid, len(text)) + len(pattern)

		rd := make([]uint64, finish+2)
		rd[finish+1] = uint64(1)<<d - 1
		for j := finish; j >= start; j-- {
			var charMatch uint64
			if j-1 < len(text) {
				charMatch = s[text[j-1]]
			}
			if d == 0 {
				// First pass: exact match.
				rd[j] = (rd[j+1]<<1 | 1) & charMatch
			} else {
				// Subsequent passes: fuzzy match.
				rd[j] = (rd[j+1]<<1|1)&charMatch | ((lastRD[j+1] | lastRD[j]) << 1) | 1 | lastRD[j+1]
			}
			if rd[j]&matchMask != 0 {
				score := bitapScore(d, j-1, loc, len(pattern), cfg)
				// This match will almost certainly be better than any existing match, but
				// check anyway.
				if score <= scoreThreshold {
					scoreThreshold = score
					bestLoc = j - 1
					if bestLoc > loc {
						// When passing loc, don't exceed our current distance from loc.
						start = max(1, 2*loc-bestLoc)
					} else {
						// Already passed loc; downhill from here on in.
						break
					}
				}
			}
		}
		if bitapScore(d+1, loc, loc, len(pattern), cfg) > scoreThreshold {
			// No hope for a better match at greater error levels.
			break
		}
		lastRD = rd
	}
	return bestLoc, nil
}

// bitapScore rates a candidate match ending at x with e errors: the error rate blended with
// the drift from the expected location.
func bitapScore(e, x, loc, patternLen int, cfg config.Config) float64 {
	accuracy := float64(e) / float64(patternLen)
	proximity := math.Abs(float64(loc - x))
	if cfg.Distance == 0 {
		// Dodge a divide by zero: only exact-location matches are acceptable.
		if proximity == 0 {
			return accuracy
		}
		return 1.0
	}
	return accuracy + proximity/float64(cfg.Distance)
}

// Alphabet computes the per-rune bitmasks for a pattern: bit 1<<(len(pattern)-1-i) is set in
// the mask of pattern[i].
func Alphabet(pattern string) map[rune]uint64 {
	return alphabet([]rune(pattern))
}

func alphabet(pattern []rune) map[rune]uint64 {
	s := make(map[rune]uint64, len(pattern))
	for i, r := range pattern {
		s[r] |= 1 << (len(pattern) - i - 1)
	}
	return s
}
