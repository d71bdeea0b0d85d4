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


package ingestion

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/tagraph/canon"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/graph"
)

// processor is an internal interface for one parallel pass over the corpus.
// Implementations must be safe to call from several workers at once.
type processor interface {
	// process handles one batch of items.
	process(ctx context.Context, items []*core.Item) error

	// name identifies the pass in logs.
	name() string
}

// countProcessor tallies raw tags into a shared counter.
type countProcessor struct {
	counter *canon.Counter
}

var _ processor = (*countProcessor)(nil)

func (c *countProcessor) process(_ context.Context, items []*core.Item) error {
	// Count locally, then merge once per batch to keep lock traffic low.
	local := canon.NewCounter()
	for _, item := range items {
		local.Observe(item)
	}
	c.counter.Merge(local)
	return nil
}

func (c *countProcessor) name() string { return "count" }

// linkProcessor adds the edges of each item to a shared graph builder.
type linkProcessor struct {
	builder    *graph.Builder
	vocab      *canon.Vocabulary
	linked     atomic.Int64
	unresolved atomic.Int64
}

var _ processor = (*linkProcessor)(nil)

func (l *linkProcessor) process(_ context.Context, items []*core.Item) error {
	for _, item := range items {
		linked, unresolved := l.builder.LinkItem(item, l.vocab)
		l.linked.Add(int64(linked))
		l.unresolved.Add(int64(unresolved))
	}
	return nil
}

func (l *linkProcessor) name() string { return "link" }
