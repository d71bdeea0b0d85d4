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

package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/tagraph/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCorpus indicates a corpus file that cannot be decoded into items.
var ErrInvalidCorpus = errors.New("invalid corpus")

// ingredientRecord is the file form of core.Ingredient.
type ingredientRecord struct {
	Name   string `yaml:"name" json:"name"`
	Amount string `yaml:"amount,omitempty" json:"amount,omitempty"`
}

// itemRecord is the file form of core.Item. Tags are keyed by category name.
type itemRecord struct {
	ID          string              `yaml:"id" json:"id"`
	Name        string              `yaml:"name,omitempty" json:"name,omitempty"`
	Tags        map[string][]string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Ingredients []ingredientRecord  `yaml:"ingredients,omitempty" json:"ingredients,omitempty"`
}

// Load reads a corpus file. YAML and JSON are both accepted.
func Load(path string) ([]*core.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	items, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Decode reads a list of items from r.
// An empty document yields an empty corpus.
func Decode(r io.Reader) ([]*core.Item, error) {
	var records []itemRecord
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []*core.Item{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCorpus, err)
	}

	items := make([]*core.Item, 0, len(records))
	for i, rec := range records {
		item, err := rec.toItem()
		if err != nil {
			return nil, fmt.Errorf("%w: item %d (%q): %w", ErrInvalidCorpus, i, rec.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Save writes items to path as YAML.
func Save(path string, items []*core.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes items to w as YAML.
func Encode(w io.Writer, items []*core.Item) error {
	records := make([]itemRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		records = append(records, fromItem(item))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

func (rec itemRecord) toItem() (*core.Item, error) {
	item := &core.Item{
		ID:   core.ItemID(rec.ID),
		Name: rec.Name,
	}
	if len(rec.Tags) > 0 {
		item.Tags = make(map[core.Category][]string, len(rec.Tags))
	}
	for name, values := range rec.Tags {
		category, err := core.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if category == core.CategoryIngredient {
			return nil, core.ErrIngredientInTags
		}
		item.Tags[category] = append(item.Tags[category], values...)
	}
	for _, ing := range rec.Ingredients {
		item.Ingredients = append(item.Ingredients, core.Ingredient{Name: ing.Name, Amount: ing.Amount})
	}
	return item, nil
}

func fromItem(item *core.Item) itemRecord {
	rec := itemRecord{
		ID:   string(item.ID),
		Name: item.Name,
	}
	if len(item.Tags) > 0 {
		// yaml.v3 emits map keys sorted, so output is stable.
		rec.Tags = make(map[string][]string, len(item.Tags))
		for category, values := range item.Tags {
			rec.Tags[string(category)] = values
		}
	}
	for _, ing := range item.Ingredients {
		rec.Ingredients = append(rec.Ingredients, ingredientRecord{Name: ing.Name, Amount: ing.Amount})
	}
	return rec
}
