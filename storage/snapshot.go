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

package storage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/tagraph/canon"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/graph"
)

// Meta describes a stored snapshot.
type Meta struct {
	// Generation is assigned by the repository on save.
	Generation uint64
	MinCount   int
	Language   string
	BuiltAt    time.Time
	NumItems   int
	NumTags    int
	NumEdges   int
}

// ItemRecord is one item node and the keys of the tags it links to.
type ItemRecord struct {
	ID   core.ItemID
	Name string
	Tags []core.LemmaKey
}

// Snapshot is a persistable image of a vocabulary and graph.
type Snapshot struct {
	Meta  Meta
	Tags  []*core.CanonicalTag
	Items []*ItemRecord // graph node order
}

// NewSnapshot captures a built vocabulary and graph.
func NewSnapshot(vocab *canon.Vocabulary, g *graph.Graph, language string, builtAt time.Time) *Snapshot {
	s := &Snapshot{
		Meta: Meta{
			MinCount: vocab.MinCount(),
			Language: language,
			BuiltAt:  builtAt.UTC(),
			NumItems: g.NumItems(),
			NumTags:  g.NumTags(),
			NumEdges: g.NumEdges(),
		},
		Tags:  vocab.Tags(),
		Items: make([]*ItemRecord, 0, g.NumItems()),
	}
	for _, node := range g.Items() {
		s.Items = append(s.Items, &ItemRecord{
			ID:   node.ID,
			Name: node.Name,
			Tags: g.ItemTags(node.ID),
		})
	}
	return s
}

// Restore rebuilds the vocabulary and graph held by the snapshot.
func (s *Snapshot) Restore(logger *slog.Logger) (*canon.Vocabulary, *graph.Graph, error) {
	if s == nil {
		return nil, nil, ErrInvalidSnapshot
	}

	vocab := canon.NewVocabulary(s.Tags, s.Meta.MinCount)
	b := graph.NewBuilder(graph.WithLogger(logger))
	for _, item := range s.Items {
		b.AddItem(item.ID, item.Name)
	}
	for _, tag := range vocab.Tags() {
		b.AddTag(tag.Key)
	}
	for _, item := range s.Items {
		for _, key := range item.Tags {
			if !b.Link(item.ID, key) {
				return nil, nil, fmt.Errorf("%w: item %q links to unknown tag %s", ErrInvalidSnapshot, item.ID, key)
			}
		}
	}

	g := b.Graph()
	if g.NumEdges() != s.Meta.NumEdges || g.NumItems() != s.Meta.NumItems {
		return nil, nil, fmt.Errorf("%w: restored %d items and %d edges, expected %d and %d",
			ErrInvalidSnapshot, g.NumItems(), g.NumEdges(), s.Meta.NumItems, s.Meta.NumEdges)
	}
	return vocab, g, nil
}
