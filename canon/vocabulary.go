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
	"cmp"
	"slices"
	"strings"

	"github.com/poiesic/tagraph/core"
)

// Vocabulary is the set of canonical tags surviving the frequency floor.
// It is immutable; callers must not modify returned slices or tags.
type Vocabulary struct {
	minCount   int
	tags       []*core.CanonicalTag
	byKey      map[core.LemmaKey]*core.CanonicalTag
	byRaw      map[string]*core.CanonicalTag
	singleWord []string
}

// NewVocabulary indexes a set of canonical tags. It is used both by
// Canonicalize and when restoring a persisted vocabulary.
// Tags with an empty key are ignored; later duplicates of a key are ignored.
func NewVocabulary(tags []*core.CanonicalTag, minCount int) *Vocabulary {
	v := &Vocabulary{
		minCount: minCount,
		tags:     make([]*core.CanonicalTag, 0, len(tags)),
		byKey:    make(map[core.LemmaKey]*core.CanonicalTag, len(tags)),
		byRaw:    make(map[string]*core.CanonicalTag),
	}

	for _, tag := range tags {
		if tag == nil || tag.Key == "" {
			continue
		}
		if _, dup := v.byKey[tag.Key]; dup {
			continue
		}
		v.byKey[tag.Key] = tag
		v.tags = append(v.tags, tag)
		for raw := range tag.Variants {
			v.byRaw[raw] = tag
			if len(strings.Fields(raw)) == 1 {
				v.singleWord = append(v.singleWord, raw)
			}
		}
	}

	slices.SortFunc(v.tags, compareTags)
	slices.Sort(v.singleWord)
	return v
}

// compareTags orders tags by category rank, then by lemma key.
func compareTags(a, b *core.CanonicalTag) int {
	if c := cmp.Compare(a.Category.Rank(), b.Category.Rank()); c != 0 {
		return c
	}
	return cmp.Compare(a.Key, b.Key)
}

// Tags returns the canonical tags in iteration order.
func (v *Vocabulary) Tags() []*core.CanonicalTag {
	return v.tags
}

// Lookup returns the canonical tag a raw string collapses into.
func (v *Vocabulary) Lookup(raw string) (*core.CanonicalTag, bool) {
	tag, ok := v.byRaw[NormalizeRaw(raw)]
	return tag, ok
}

// ByKey returns the canonical tag with the given lemma key.
func (v *Vocabulary) ByKey(key core.LemmaKey) (*core.CanonicalTag, bool) {
	tag, ok := v.byKey[key]
	return tag, ok
}

// SingleWordTags returns the surviving raw strings that are a single
// whitespace token, in lexical order. A hyphenated tag such as "суп-пюре"
// counts as one word even though it lemmatizes to two.
func (v *Vocabulary) SingleWordTags() []string {
	return v.singleWord
}

// Len returns the number of canonical tags.
func (v *Vocabulary) Len() int {
	return len(v.tags)
}

// NumRaw returns the number of surviving raw strings.
func (v *Vocabulary) NumRaw() int {
	return len(v.byRaw)
}

// MinCount returns the frequency floor the vocabulary was built with.
func (v *Vocabulary) MinCount() int {
	return v.minCount
}
