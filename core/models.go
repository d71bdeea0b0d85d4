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

//go:generate go run ../cmd/musgen

package core

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ItemID is the opaque identifier assigned to an item by the item source.
type ItemID string

// Category names one group of descriptive tags on an item.
type Category string

const (
	CategoryMainIngredient Category = "main_ingredient"
	// CategoryIngredient values are compound: only Ingredient.Name takes part in the graph.
	CategoryIngredient Category = "ingredient"
	CategoryDiet       Category = "diet"
	CategoryMeal       Category = "meal"
	CategoryOccasion   Category = "occasion"
	CategoryGeography  Category = "geography"
)

// Categories lists every category in its fixed processing order.
var Categories = []Category{
	CategoryMainIngredient,
	CategoryIngredient,
	CategoryDiet,
	CategoryMeal,
	CategoryOccasion,
	CategoryGeography,
}

// Rank returns the position of c in Categories, or -1 for unknown categories.
func (c Category) Rank() int {
	return slices.Index(Categories, c)
}

// ParseCategory converts a category name into a Category.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if c.Rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

// Ingredient is a compound tag value. Amount is display-only.
type Ingredient struct {
	Name   string
	Amount string
}

// Item is a catalog entry carrying categorized raw tags.
// Items are finalized by the item source and never mutated by the engine.
type Item struct {
	ID          ItemID
	Name        string
	Tags        map[Category][]string // every category except CategoryIngredient
	Ingredients []Ingredient
}

// Values returns the raw tag strings the item holds in a category.
// For CategoryIngredient only the primary ingredient names are returned.
func (it *Item) Values(category Category) []string {
	if category == CategoryIngredient {
		if len(it.Ingredients) == 0 {
			return nil
		}
		names := make([]string, len(it.Ingredients))
		for i, ing := range it.Ingredients {
			names[i] = ing.Name
		}
		return names
	}
	return it.Tags[category]
}

// lemmaSeparator joins lemmas inside a LemmaKey; it never occurs in tokens.
const lemmaSeparator = "\x1f"

// LemmaKey is the identity of a canonical tag: an ordered lemma tuple.
// It is comparable by value and usable as a map key.
type LemmaKey string

// NewLemmaKey builds a key from an ordered lemma sequence.
func NewLemmaKey(lemmas []string) LemmaKey {
	return LemmaKey(strings.Join(lemmas, lemmaSeparator))
}

// Lemmas returns the lemma tuple.
func (k LemmaKey) Lemmas() []string {
	if k == "" {
		return nil
	}
	return strings.Split(string(k), lemmaSeparator)
}

// Len returns the number of lemmas in the tuple.
func (k LemmaKey) Len() int {
	if k == "" {
		return 0
	}
	return strings.Count(string(k), lemmaSeparator) + 1
}

// String renders the tuple as "(a b c)".
func (k LemmaKey) String() string {
	return "(" + strings.Join(k.Lemmas(), " ") + ")"
}

// CanonicalTag is the identity-collapsed form of one or more raw tags.
type CanonicalTag struct {
	Key LemmaKey
	// Category is the lowest-ranked category any variant was seen in.
	Category Category
	// Count is the aggregate number of occurrences of all variants.
	Count int
	// Variants maps each raw surface form to its own occurrence count.
	Variants map[string]int
}

// ID returns the content-derived identifier of the tag.
func (t *CanonicalTag) ID() ID {
	return IDFromContent(string(t.Key))
}

// Lemmas returns the lemma tuple of the tag.
func (t *CanonicalTag) Lemmas() []string {
	return t.Key.Lemmas()
}

// VariantNames returns the raw surface forms in lexical order.
func (t *CanonicalTag) VariantNames() []string {
	names := make([]string, 0, len(t.Variants))
	for name := range t.Variants {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
