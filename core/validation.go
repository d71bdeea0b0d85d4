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

package core

import (
	"fmt"
	"strings"
)

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - ID must not be empty or blank
//   - every key in Tags must be a known category
//   - CategoryIngredient must not appear in Tags (use Ingredients)
//   - every Ingredient must have a non-blank Name
//
// NOT validated:
//   - Name (display only, may be empty)
//   - tag values (empty values are skipped during canonicalization)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if strings.TrimSpace(string(item.ID)) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyItemID)
	}

	for category := range item.Tags {
		if category == CategoryIngredient {
			return fmt.Errorf("%w: %w", ErrInvalidItem, ErrIngredientInTags)
		}
		if category.Rank() < 0 {
			return fmt.Errorf("%w: %w: %q", ErrInvalidItem, ErrUnknownCategory, category)
		}
	}

	for i, ing := range item.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: %w: ingredient %d", ErrInvalidItem, ErrEmptyIngredient, i)
		}
	}

	return nil
}

// MaxCollectionLength bounds the encoded length of tag variants and item tag lists.
const MaxCollectionLength = 1 << 16

// ValidateLength rejects decoded collection lengths above MaxCollectionLength
// before anything is allocated for them.
func ValidateLength(length int) error {
	if length < 0 || length > MaxCollectionLength {
		return fmt.Errorf("%w: %d > %d", ErrLengthExceeded, length, MaxCollectionLength)
	}
	return nil
}
