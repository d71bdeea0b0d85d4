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

package fuzzy

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/tagraph/lemma"
)

var (
	// ErrLemmatizerRequired is returned when no lemmatizer is provided.
	ErrLemmatizerRequired = errors.New("lemmatizer required")

	// ErrInvalidSimilarity is returned for a floor outside [0, 1].
	ErrInvalidSimilarity = errors.New("min similarity must be within [0, 1]")
)

// Expander maps query tokens onto nearby single-word tags.
// It holds no mutable state and is safe for concurrent use.
type Expander struct {
	lemmatizer    *lemma.Lemmatizer
	scorer        Scorer
	minSimilarity float64
	logger        *slog.Logger
}

// Option configures an Expander.
type Option func(*Expander) error

// WithScorer sets the ranking backend.
// Default is NewJaroWinklerScorer().
func WithScorer(scorer Scorer) Option {
	return func(e *Expander) error {
		if scorer != nil {
			e.scorer = scorer
		}
		return nil
	}
}

// WithMinSimilarity sets the acceptance floor.
// Default is DefaultMinSimilarity.
func WithMinSimilarity(floor float64) Option {
	return func(e *Expander) error {
		if floor < 0 || floor > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidSimilarity, floor)
		}
		e.minSimilarity = floor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExpander creates an Expander that tokenizes with lemmatizer.
func NewExpander(lemmatizer *lemma.Lemmatizer, opts ...Option) (*Expander, error) {
	if lemmatizer == nil {
		return nil, ErrLemmatizerRequired
	}

	e := &Expander{
		lemmatizer:    lemmatizer,
		scorer:        NewJaroWinklerScorer(),
		minSimilarity: DefaultMinSimilarity,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// MinSimilarity returns the acceptance floor.
func (e *Expander) MinSimilarity() float64 {
	return e.minSimilarity
}

// Expand returns the single-word tags accepted for the tokens of query.
// Tokens that already are single-word tags are left to the resolver.
// The result follows token order and may contain duplicates.
func (e *Expander) Expand(query string, singleWord []string) []string {
	if len(singleWord) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(singleWord))
	for _, w := range singleWord {
		known[w] = struct{}{}
	}

	var accepted []string
	for _, token := range e.lemmatizer.Tokenize(query) {
		if _, ok := known[token]; ok {
			continue
		}
		candidate, ok := e.scorer.BestMatch(token, singleWord)
		if !ok {
			continue
		}
		similarity := Similarity(token, candidate)
		if similarity < e.minSimilarity {
			e.logger.Debug("fuzzy candidate rejected", "token", token, "candidate", candidate, "similarity", similarity)
			continue
		}
		e.logger.Debug("fuzzy candidate accepted", "token", token, "candidate", candidate, "similarity", similarity)
		accepted = append(accepted, candidate)
	}
	return accepted
}

// Enrich appends tags to query, separated by single spaces.
func Enrich(query string, tags []string) string {
	return strings.TrimSpace(query + " " + strings.Join(tags, " "))
}
