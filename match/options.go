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

package match

import "znkr.io/textpatch/internal/config"

// Option configures the behavior of the match functions.
type Option = config.Option

// Threshold sets the score at which no match is declared: 0.0 demands perfection, 1.0 accepts
// nearly anything. The default is 0.5.
func Threshold(t float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Threshold = min(1, max(0, t))
		return config.Threshold
	}
}

// Distance determines how much a match's distance from the expected location contributes to
// its score: a match this many runes away adds 1.0. Zero demands matches at the exact
// expected location; large values accept matches found far away. The default is 1000.
func Distance(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Distance = max(0, n)
		return config.Distance
	}
}

// MaxBits bounds the pattern length in runes, limited by the bit width of the mask words used
// by the search. The default is 32, the maximum 64.
func MaxBits(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxBits = min(64, max(1, n))
		return config.MaxBits
	}
}
