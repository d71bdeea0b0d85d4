// Copyright 2025 Poiesic Systems
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

package canon

import (
	"slices"
	"strings"
	"sync"

	"github.com/poiesic/tagraph/core"
)

// NormalizeRaw returns the counting key of a raw tag string.
func NormalizeRaw(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type rawEntry struct {
	count int
	rank  int // lowest category rank the string was seen in
}

// Counter tallies raw tag strings. It is safe for concurrent use.
type Counter struct {
	mu      sync.Mutex
	entries map[string]*rawEntry
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{entries: make(map[string]*rawEntry)}
}

// Observe counts every raw tag of an item, one occurrence per value.
func (c *Counter) Observe(item *core.Item) {
	if item == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for rank, category := range core.Categories {
		for _, raw := range item.Values(category) {
			c.addLocked(NormalizeRaw(raw), rank, 1)
		}
	}
}

// Add counts n occurrences of raw seen under category.
func (c *Counter) Add(raw string, category core.Category, n int) {
	rank := category.Rank()
	if rank < 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.addLocked(NormalizeRaw(raw), rank, n)
}

func (c *Counter) addLocked(raw string, rank int, n int) {
	if raw == "" || n <= 0 {
		return
	}
	e, ok := c.entries[raw]
	if !ok {
		c.entries[raw] = &rawEntry{count: n, rank: rank}
		return
	}
	e.count += n
	e.rank = min(e.rank, rank)
}

// Merge adds every count held by other into c.
func (c *Counter) Merge(other *Counter) {
	if other == nil || other == c {
		return
	}

	other.mu.Lock()
	snapshot := make(map[string]rawEntry, len(other.entries))
	for raw, e := range other.entries {
		snapshot[raw] = *e
	}
	other.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	for raw, e := range snapshot {
		c.addLocked(raw, e.rank, e.count)
	}
}

// Count returns the number of occurrences of a raw string.
func (c *Counter) Count(raw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[NormalizeRaw(raw)]; ok {
		return e.count
	}
	return 0
}

// Len returns the number of distinct raw strings.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Raw returns the distinct raw strings in lexical order.
func (c *Counter) Raw() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	raws := make([]string, 0, len(c.entries))
	for raw := range c.entries {
		raws = append(raws, raw)
	}
	slices.Sort(raws)
	return raws
}

func (c *Counter) entry(raw string) rawEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.entries[raw]
}
