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

// Option configures the behavior of the comparison functions.
type Option = config.Option

// Timeout bounds the time spent computing a diff. Zero or a negative duration means
// unlimited. The default is one second.
//
// A diff that hits its deadline is still a valid edit script, just not a minimal one.
// Conversely, an unlimited timeout disables the half-match shortcut, which can produce
// non-minimal diffs. The line-mode speedup is controlled by [Linewise] instead, so tests that
// assert exact scripts should set both Timeout(0) and Linewise(false).
func Timeout(d time.Duration) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Timeout = d
		return config.Timeout
	}
}

// EditCost sets the cost of an empty edit operation in terms of edit characters for
// [CleanupEfficiency]. The default is 4.
func EditCost(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.EditCost = max(0, n)
		return config.EditCost
	}
}

// Linewise enables or disables the line-mode speedup for inputs longer than 100 runes: diff
// lines first, then re-diff the replaced blocks character by character. Enabled by default;
// disabling trades speed for slightly better diffs.
func Linewise(enabled bool) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Linewise = enabled
		return config.Linewise
	}
}
