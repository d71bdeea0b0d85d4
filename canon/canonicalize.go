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
	"log/slog"
	"regexp"

	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/lemma"
)

// parenthesized matches qualifiers such as "(свежий)" removed before lemmatization.
var parenthesized = regexp.MustCompile(`\([^)]*\)`)

// Canonicalize groups the counted raw strings by lemma tuple and applies the
// frequency floor to each group's aggregate count.
func Canonicalize(counter *Counter, lemmatizer *lemma.Lemmatizer, minCount int, logger *slog.Logger) (*Vocabulary, error) {
	if lemmatizer == nil {
		return nil, ErrLemmatizerRequired
	}
	if minCount < 0 {
		return nil, ErrInvalidMinCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	if counter == nil {
		counter = NewCounter()
	}

	groups := make(map[core.LemmaKey]*core.CanonicalTag)
	var order []core.LemmaKey
	empty := 0

	for _, raw := range counter.Raw() {
		e := counter.entry(raw)
		lemmas := lemmatizer.Lemmatize(parenthesized.ReplaceAllString(raw, " "))
		if len(lemmas) == 0 {
			// An empty tuple is a subset of every query and would match everything.
			logger.Debug("dropping raw tag without lemmas", "raw", raw, "count", e.count)
			empty++
			continue
		}

		key := core.NewLemmaKey(lemmas)
		category := core.Categories[e.rank]
		tag, ok := groups[key]
		if !ok {
			tag = &core.CanonicalTag{
				Key:      key,
				Category: category,
				Variants: make(map[string]int),
			}
			groups[key] = tag
			order = append(order, key)
		}
		tag.Count += e.count
		tag.Variants[raw] = e.count
		if category.Rank() < tag.Category.Rank() {
			tag.Category = category
		}
	}

	survivors := make([]*core.CanonicalTag, 0, len(order))
	for _, key := range order {
		tag := groups[key]
		if tag.Count < minCount {
			continue
		}
		survivors = append(survivors, tag)
	}

	vocab := NewVocabulary(survivors, minCount)
	logger.Info("canonicalized tags",
		"raw", counter.Len(),
		"groups", len(order),
		"survivors", vocab.Len(),
		"emptyDropped", empty,
		"minCount", minCount)
	return vocab, nil
}

// BuildVocabulary counts the raw tags of items and canonicalizes them.
func BuildVocabulary(items []*core.Item, lemmatizer *lemma.Lemmatizer, minCount int, logger *slog.Logger) (*Vocabulary, error) {
	counter := NewCounter()
	for _, item := range items {
		counter.Observe(item)
	}
	return Canonicalize(counter, lemmatizer, minCount, logger)
}
