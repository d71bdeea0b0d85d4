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

// Package graph holds the bipartite item/tag graph.
//
// Item nodes are identified by core.ItemID and tag nodes by core.LemmaKey.
// Edges only join an item to a tag. A Builder accumulates nodes and edges
// (edges are idempotent) and freezes them into a read-only Graph whose
// adjacency lists are sorted NodeSets, so narrowing a candidate set is a
// linear merge.
package graph
