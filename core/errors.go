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

import "errors"

// Domain validation errors
var (
	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrEmptyItemID indicates the item ID is empty.
	ErrEmptyItemID = errors.New("item id cannot be empty")

	// ErrUnknownCategory indicates a tag category outside Categories.
	ErrUnknownCategory = errors.New("unknown tag category")

	// ErrIngredientInTags indicates ingredients were given as bare tags instead of Ingredients.
	ErrIngredientInTags = errors.New("ingredient category must use Ingredients")

	// ErrEmptyIngredient indicates an ingredient without a name.
	ErrEmptyIngredient = errors.New("ingredient name cannot be empty")
)

// Encoding errors
var (
	// ErrLengthExceeded indicates an encoded collection claims more elements than allowed.
	ErrLengthExceeded = errors.New("collection length exceeds limit")
)
