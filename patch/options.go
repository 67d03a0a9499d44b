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

import "znkr.io/textpatch/internal/config"

// Option configures the behavior of the patch functions. The patch engine drives the diff
// and match engines, so their options (diff.Timeout, diff.EditCost, diff.Linewise,
// match.Threshold, match.Distance, match.MaxBits) are accepted everywhere options are.
type Option = config.Option

// Margin sets the number of context runes kept around each hunk. The default is 4.
func Margin(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Margin = max(1, n)
		return config.Margin
	}
}

// DeleteThreshold sets how closely the content of a large deletion has to match the actual
// content when applying against diverged text: 0.0 demands perfection, 1.0 deletes almost
// anything. The endpoints of the deletion are still held to match.Threshold. The default
// is 0.5.
func DeleteThreshold(t float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DeleteThreshold = min(1, max(0, t))
		return config.DeleteThreshold
	}
}
