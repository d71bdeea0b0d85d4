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

package graph

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/poiesic/tagraph/canon"
	"github.com/poiesic/tagraph/core"
)

// Builder accumulates nodes and edges. All methods are safe for concurrent use.
type Builder struct {
	mu        sync.Mutex
	items     []ItemNode
	itemIndex map[core.ItemID]int
	tags      []core.LemmaKey
	tagIndex  map[core.LemmaKey]int
	edges     []map[int]struct{} // per tag
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		itemIndex: make(map[core.ItemID]int),
		tagIndex:  make(map[core.LemmaKey]int),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddItem adds an item node and returns its index. Adding an existing item
// returns the existing index and keeps its original name.
func (b *Builder) AddItem(id core.ItemID, name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if node, ok := b.itemIndex[id]; ok {
		return node
	}
	node := len(b.items)
	b.items = append(b.items, ItemNode{ID: id, Name: name})
	b.itemIndex[id] = node
	return node
}

// AddTag adds a tag node. Adding an existing tag is a no-op.
func (b *Builder) AddTag(key core.LemmaKey) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.tagIndex[key]; ok {
		return
	}
	b.tagIndex[key] = len(b.tags)
	b.tags = append(b.tags, key)
	b.edges = append(b.edges, make(map[int]struct{}))
}

// Link joins an item to a tag. Linking twice is idempotent.
// It returns false, and changes nothing, when either node is unknown.
func (b *Builder) Link(id core.ItemID, key core.LemmaKey) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	node, ok := b.itemIndex[id]
	if !ok {
		b.logger.Debug("link to unknown item ignored", "item", id, "tag", key.String())
		return false
	}
	t, ok := b.tagIndex[key]
	if !ok {
		b.logger.Debug("link to unknown tag ignored", "item", id, "tag", key.String())
		return false
	}
	b.edges[t][node] = struct{}{}
	return true
}

// LinkItem links an item to the canonical tag of each of its raw tags.
// It returns the number of raw tags linked and the number left unresolved.
// A nil item links nothing.
func (b *Builder) LinkItem(item *core.Item, vocab *canon.Vocabulary) (linked, unresolved int) {
	if item == nil {
		return 0, 0
	}
	for _, category := range core.Categories {
		for _, raw := range item.Values(category) {
			if canon.NormalizeRaw(raw) == "" {
				continue
			}
			tag, ok := vocab.Lookup(raw)
			if !ok {
				unresolved++
				b.logger.Debug("raw tag has no canonical form", "item", item.ID, "category", category, "raw", raw)
				continue
			}
			if b.Link(item.ID, tag.Key) {
				linked++
			} else {
				unresolved++
			}
		}
	}
	return linked, unresolved
}

// Graph freezes the current state into a Graph.
// The Builder may keep being used; later changes do not affect the result.
func (b *Builder) Graph() *Graph {
	b.mu.Lock()
	defer b.mu.Unlock()

	g := &Graph{
		items:     slices.Clone(b.items),
		itemIndex: make(map[core.ItemID]int, len(b.items)),
		tags:      slices.Clone(b.tags),
		tagIndex:  make(map[core.LemmaKey]int, len(b.tags)),
		byTag:     make([]NodeSet, len(b.tags)),
		byItem:    make([][]int, len(b.items)),
	}
	for id, node := range b.itemIndex {
		g.itemIndex[id] = node
	}
	for key, t := range b.tagIndex {
		g.tagIndex[key] = t
	}

	for t, set := range b.edges {
		nodes := make(NodeSet, 0, len(set))
		for node := range set {
			nodes = append(nodes, node)
		}
		slices.Sort(nodes)
		g.byTag[t] = nodes
		g.edges += len(nodes)
		for _, node := range nodes {
			g.byItem[node] = append(g.byItem[node], t)
		}
	}
	return g
}

// Build constructs the graph of items against a vocabulary: one item node per
// item, one tag node per canonical tag, and one edge per resolvable raw tag.
// Nil items are skipped.
func Build(items []*core.Item, vocab *canon.Vocabulary, logger *slog.Logger) *Graph {
	b := NewBuilder(WithLogger(logger))
	for _, item := range items {
		if item == nil {
			continue
		}
		b.AddItem(item.ID, item.Name)
	}
	for _, tag := range vocab.Tags() {
		b.AddTag(tag.Key)
	}

	var linked, unresolved int
	for _, item := range items {
		l, u := b.LinkItem(item, vocab)
		linked += l
		unresolved += u
	}

	g := b.Graph()
	b.logger.Info("built tag graph",
		"items", g.NumItems(),
		"tags", g.NumTags(),
		"edges", g.NumEdges(),
		"linked", linked,
		"unresolved", unresolved)
	return g
}
