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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// the option constructors in the diff, match, and patch packages.
package config

import "time"

// Config collects all configurable parameters for the diff, match, and patch engines.
type Config struct {
	// Timeout bounds the time spent computing a diff. Zero or negative means unlimited. When the
	// deadline expires mid-search the result is still a valid edit script, just non-minimal.
	Timeout time.Duration

	// EditCost is the cost of an empty edit operation in terms of edit characters. Used by the
	// efficiency cleanup to decide when a short equality is cheaper to fold into its neighbors.
	EditCost int

	// Linewise enables the line-mode speedup for long inputs: diff lines first, then re-diff
	// replaced blocks character by character.
	Linewise bool

	// Threshold is the match score at which no match is declared (0.0 = perfection, 1.0 = very
	// loose).
	Threshold float64

	// Distance determines how much a match's distance from the expected location contributes to
	// its score. A match this many characters away adds 1.0. Zero demands matches at the exact
	// expected location.
	Distance int

	// MaxBits is the upper bound for the length of a fuzzy-match pattern, limited by the bit
	// width of the mask words. At most 64.
	MaxBits int

	// DeleteThreshold is the maximum tolerated edit-distance fraction at which a large-deletion
	// hunk still applies against diverged content.
	DeleteThreshold float64

	// Margin is the chunk size for patch context.
	Margin int
}

// Default is the default configuration.
var Default = Config{
	Timeout:         time.Second,
	EditCost:        4,
	Linewise:        true,
	Threshold:       0.5,
	Distance:        1000,
	MaxBits:         32,
	DeleteThreshold: 0.5,
	Margin:          4,
}

// Flag identifies a single config entry. It is used to detect options being passed to entry
// points that don't support them.
type Flag int

const (
	Timeout Flag = 1 << iota
	EditCost
	Linewise
	Threshold
	Distance
	MaxBits
	DeleteThreshold
	Margin
)

// DiffFlags are the flags accepted by the diff entry points.
const DiffFlags = Timeout | EditCost | Linewise

// MatchFlags are the flags accepted by the match entry points.
const MatchFlags = Threshold | Distance | MaxBits

// PatchFlags are the flags accepted by the patch entry points. Patch drives both other engines,
// so it accepts their options as well.
const PatchFlags = DiffFlags | MatchFlags | DeleteThreshold | Margin

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Timeout:
		return "diff.Timeout"
	case EditCost:
		return "diff.EditCost"
	case Linewise:
		return "diff.Linewise"
	case Threshold:
		return "match.Threshold"
	case Distance:
		return "match.Distance"
	case MaxBits:
		return "match.MaxBits"
	case DeleteThreshold:
		return "patch.DeleteThreshold"
	case Margin:
		return "patch.Margin"
	default:
		panic("never reached")
	}
}
