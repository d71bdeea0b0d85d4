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
	"github.com/poiesic/tagraph/core"
)

// ItemNode is an item vertex.
type ItemNode struct {
	ID   core.ItemID
	Name string
}

// Graph is a frozen bipartite item/tag graph. It is safe for concurrent reads.
type Graph struct {
	items     []ItemNode
	itemIndex map[core.ItemID]int
	tags      []core.LemmaKey
	tagIndex  map[core.LemmaKey]int
	// byTag[t] lists the item nodes adjacent to tag t.
	byTag []NodeSet
	// byItem[i] lists the tag nodes adjacent to item i.
	byItem [][]int
	edges  int
}

// NumItems returns the number of item nodes.
func (g *Graph) NumItems() int {
	return len(g.items)
}

// NumTags returns the number of tag nodes.
func (g *Graph) NumTags() int {
	return len(g.tags)
}

// NumEdges returns the number of distinct item/tag edges.
func (g *Graph) NumEdges() int {
	return g.edges
}

// Universe returns every item node.
func (g *Graph) Universe() NodeSet {
	all := make(NodeSet, len(g.items))
	for i := range all {
		all[i] = i
	}
	return all
}

// Neighbors returns the item nodes adjacent to a tag.
// The returned set is shared and must not be modified.
func (g *Graph) Neighbors(key core.LemmaKey) (NodeSet, bool) {
	t, ok := g.tagIndex[key]
	if !ok {
		return nil, false
	}
	return g.byTag[t], true
}

// HasTag reports whether the graph has a node for key.
func (g *Graph) HasTag(key core.LemmaKey) bool {
	_, ok := g.tagIndex[key]
	return ok
}

// Item returns the item node with the given index.
func (g *Graph) Item(node int) ItemNode {
	return g.items[node]
}

// Items returns the item nodes in insertion order.
func (g *Graph) Items() []ItemNode {
	return g.items
}

// Tags returns the tag nodes in insertion order.
func (g *Graph) Tags() []core.LemmaKey {
	return g.tags
}

// ItemIDs maps a node set to item identifiers, preserving set order.
// Returns nil for an empty set.
func (g *Graph) ItemIDs(set NodeSet) []core.ItemID {
	if len(set) == 0 {
		return nil
	}
	ids := make([]core.ItemID, len(set))
	for i, node := range set {
		ids[i] = g.items[node].ID
	}
	return ids
}

// Lookup returns the item node index of an item.
func (g *Graph) Lookup(id core.ItemID) (int, bool) {
	node, ok := g.itemIndex[id]
	return node, ok
}

// ItemTags returns the tags adjacent to an item in graph tag order.
func (g *Graph) ItemTags(id core.ItemID) []core.LemmaKey {
	node, ok := g.itemIndex[id]
	if !ok {
		return nil
	}
	keys := make([]core.LemmaKey, len(g.byItem[node]))
	for i, t := range g.byItem[node] {
		keys[i] = g.tags[t]
	}
	return keys
}

// HasEdge reports whether an item is linked to a tag.
func (g *Graph) HasEdge(id core.ItemID, key core.LemmaKey) bool {
	items, ok := g.Neighbors(key)
	if !ok {
		return false
	}
	node, ok := g.itemIndex[id]
	return ok && items.Contains(node)
}
