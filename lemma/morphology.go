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
	"fmt"
	"slices"

	"github.com/kljensen/snowball"
)

// Morphology maps a lowercase token to its normal form.
// Implementations must be deterministic and safe for concurrent use.
type Morphology interface {
	NormalForm(token string) string
}

// MorphologyFunc adapts an ordinary function to the Morphology interface.
type MorphologyFunc func(token string) string

var _ Morphology = MorphologyFunc(nil)

// NormalForm calls f(token).
func (f MorphologyFunc) NormalForm(token string) string {
	return f(token)
}

// DictionaryMorphology maps tokens through an explicit table.
// Tokens missing from the table are returned unchanged.
type DictionaryMorphology map[string]string

var _ Morphology = DictionaryMorphology(nil)

// NormalForm returns the table entry for token, or token itself.
func (d DictionaryMorphology) NormalForm(token string) string {
	if form, ok := d[token]; ok {
		return form
	}
	return token
}

// snowballLanguages are the languages accepted by snowball.Stem.
var snowballLanguages = []string{
	"english",
	"french",
	"hungarian",
	"norwegian",
	"russian",
	"spanish",
	"swedish",
}

// SnowballMorphology stems tokens with the Snowball algorithm.
type SnowballMorphology struct {
	language string
}

var _ Morphology = (*SnowballMorphology)(nil)

// NewSnowballMorphology creates a stemmer for language.
func NewSnowballMorphology(language string) (*SnowballMorphology, error) {
	if !slices.Contains(snowballLanguages, language) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return &SnowballMorphology{language: language}, nil
}

// Language returns the configured stemmer language.
func (s *SnowballMorphology) Language() string {
	return s.language
}

// NormalForm returns the stem of token. Stemming failures yield the token.
func (s *SnowballMorphology) NormalForm(token string) string {
	// Stopwords are filtered by the Lemmatizer, so stem everything here.
	stem, err := snowball.Stem(token, s.language, true)
	if err != nil || stem == "" {
		return token
	}
	return stem
}
