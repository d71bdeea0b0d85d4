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

package lemma

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// noise matches the characters removed before tokenization.
// Latin letters and digits are removed together with punctuation.
var noise = regexp.MustCompile("[A-Za-z0-9!#$%&'()*+,./:;<=>?@\\[\\]^_`{|}~—\"\\-]+")

// Lemmatizer turns text into an ordered lemma sequence.
// A Lemmatizer is immutable after construction and safe for concurrent use.
type Lemmatizer struct {
	morphology Morphology
	stopwords  map[string]struct{}
}

// Option configures a Lemmatizer.
type Option func(*Lemmatizer) error

// WithStopwords sets the tokens dropped before normalization.
// Default is no stopwords.
func WithStopwords(words []string) Option {
	return func(l *Lemmatizer) error {
		l.stopwords = make(map[string]struct{}, len(words))
		for _, w := range words {
			l.stopwords[strings.ToLower(w)] = struct{}{}
		}
		return nil
	}
}

// New creates a Lemmatizer around a Morphology backend.
func New(morphology Morphology, opts ...Option) (*Lemmatizer, error) {
	if morphology == nil {
		return nil, ErrMorphologyRequired
	}

	l := &Lemmatizer{
		morphology: morphology,
		stopwords:  map[string]struct{}{},
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// ForLanguage creates the Snowball pipeline for a language together with its
// built-in stopword list.
func ForLanguage(language string) (*Lemmatizer, error) {
	morph, err := NewSnowballMorphology(language)
	if err != nil {
		return nil, err
	}
	return New(morph, WithStopwords(Stopwords(language)))
}

// NewRussian creates the default Russian pipeline.
func NewRussian() *Lemmatizer {
	l, _ := ForLanguage("russian")
	return l
}

// Tokenize applies every pipeline step except the normal form mapping.
func (l *Lemmatizer) Tokenize(text string) []string {
	text = norm.NFC.String(text)
	text = noise.ReplaceAllString(text, " ")
	fields := strings.Fields(strings.ToLower(text))

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := l.stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Lemmatize returns the lemmas of text in order. Empty input gives an empty slice.
func (l *Lemmatizer) Lemmatize(text string) []string {
	tokens := l.Tokenize(text)
	for i, tok := range tokens {
		tokens[i] = l.morphology.NormalForm(tok)
	}
	return tokens
}

// IsStopword reports whether token is removed by the pipeline.
func (l *Lemmatizer) IsStopword(token string) bool {
	_, ok := l.stopwords[strings.ToLower(token)]
	return ok
}
