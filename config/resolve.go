// Copyright 2026 Google Inc.
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

package config

import "github.com/soumya92/sensors/chipname"

// ChipConfig is the configuration that applies to a single chip: the
// statements of every chip block with a pattern matching the chip.
// Blocks appearing later in the configuration take precedence.
type ChipConfig struct {
	// most recent first.
	blocks []*ChipBlock
}

// ForChip returns the configuration for the given chip.
func (c *Config) ForChip(name chipname.ChipName) *ChipConfig {
	cc := &ChipConfig{}
	if c == nil {
		return cc
	}
	for i := len(c.Chips) - 1; i >= 0; i-- {
		for _, pattern := range c.Chips[i].Patterns {
			if name.Matches(pattern) {
				cc.blocks = append(cc.blocks, c.Chips[i])
				break
			}
		}
	}
	return cc
}

// Empty returns true if no chip block applies.
func (cc *ChipConfig) Empty() bool {
	return len(cc.blocks) == 0
}

// Label returns the configured label for a feature.
func (cc *ChipConfig) Label(feature string) (string, bool) {
	for _, b := range cc.blocks {
		for i := len(b.Labels) - 1; i >= 0; i-- {
			if b.Labels[i].Feature == feature {
				return b.Labels[i].Text, true
			}
		}
	}
	return "", false
}

// Ignored returns true if the feature is ignored.
func (cc *ChipConfig) Ignored(feature string) bool {
	for _, b := range cc.blocks {
		for _, ig := range b.Ignores {
			if ig.Feature == feature {
				return true
			}
		}
	}
	return false
}

// Compute returns the compute statement for a feature.
func (cc *ChipConfig) Compute(feature string) (Compute, bool) {
	for _, b := range cc.blocks {
		for i := len(b.Computes) - 1; i >= 0; i-- {
			if b.Computes[i].Feature == feature {
				return b.Computes[i], true
			}
		}
	}
	return Compute{}, false
}

// Sets returns the set statements that apply to the chip, in the order
// they appear in the configuration. If a subfeature is set more than once
// only the statement taking precedence is returned.
func (cc *ChipConfig) Sets() []Set {
	seen := map[string]bool{}
	var rev []Set
	for _, b := range cc.blocks {
		for i := len(b.Sets) - 1; i >= 0; i-- {
			s := b.Sets[i]
			if seen[s.Subfeature] {
				continue
			}
			seen[s.Subfeature] = true
			rev = append(rev, s)
		}
	}
	sets := make([]Set, len(rev))
	for i, s := range rev {
		sets[len(rev)-1-i] = s
	}
	return sets
}
