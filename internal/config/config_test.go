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

package config_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"znkr.io/textpatch/diff"
	"znkr.io/textpatch/internal/config"
	"znkr.io/textpatch/match"
	"znkr.io/textpatch/patch"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []config.Option
		allowed config.Flag
		want    config.Config
	}{
		{
			name:    "default",
			opts:    nil,
			allowed: config.PatchFlags,
			want:    config.Default,
		},
		{
			name: "timeout",
			opts: []config.Option{
				diff.Timeout(0),
			},
			allowed: config.DiffFlags,
			want: func() config.Config {
				cfg := config.Default
				cfg.Timeout = 0
				return cfg
			}(),
		},
		{
			name: "diff-options",
			opts: []config.Option{
				diff.Timeout(5 * time.Second),
				diff.EditCost(6),
				diff.Linewise(false),
			},
			allowed: config.DiffFlags,
			want: func() config.Config {
				cfg := config.Default
				cfg.Timeout = 5 * time.Second
				cfg.EditCost = 6
				cfg.Linewise = false
				return cfg
			}(),
		},
		{
			name: "match-options",
			opts: []config.Option{
				match.Threshold(0.8),
				match.Distance(100),
				match.MaxBits(64),
			},
			allowed: config.MatchFlags,
			want: func() config.Config {
				cfg := config.Default
				cfg.Threshold = 0.8
				cfg.Distance = 100
				cfg.MaxBits = 64
				return cfg
			}(),
		},
		{
			name: "override",
			opts: []config.Option{
				match.Distance(100),
				match.Distance(10),
			},
			allowed: config.MatchFlags,
			want: func() config.Config {
				cfg := config.Default
				cfg.Distance = 10
				return cfg
			}(),
		},
		{
			name: "everything",
			opts: []config.Option{
				diff.Timeout(time.Minute),
				diff.EditCost(5),
				diff.Linewise(false),
				match.Threshold(0.4),
				match.Distance(500),
				match.MaxBits(32),
				patch.Margin(6),
				patch.DeleteThreshold(0.6),
			},
			allowed: config.PatchFlags,
			want: config.Config{
				Timeout:         time.Minute,
				EditCost:        5,
				Linewise:        false,
				Threshold:       0.4,
				Distance:        500,
				MaxBits:         32,
				DeleteThreshold: 0.6,
				Margin:          6,
			},
		},
		{
			name: "clamped",
			opts: []config.Option{
				match.Threshold(1.5),
				match.MaxBits(1000),
				patch.Margin(-1),
			},
			allowed: config.PatchFlags,
			want: func() config.Config {
				cfg := config.Default
				cfg.Threshold = 1
				cfg.MaxBits = 64
				cfg.Margin = 1
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, tt.allowed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) results are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsDisallowed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("FromOptions with a disallowed option did not panic")
		}
	}()
	config.FromOptions([]config.Option{match.Threshold(0.4)}, config.DiffFlags)
}
