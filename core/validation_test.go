package core

import (
	"errors"
	"testing"
)

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *Item
		wantErr error
	}{
		{
			name: "valid item",
			item: &Item{
				ID:   "recipe_1",
				Name: "Сырники",
				Tags: map[Category][]string{
					CategoryMeal: {"завтрак"},
					CategoryDiet: {"вегетарианская"},
				},
				Ingredients: []Ingredient{{Name: "творог", Amount: "500 г"}},
			},
			wantErr: nil,
		},
		{
			name:    "valid item without tags",
			item:    &Item{ID: "recipe_2"},
			wantErr: nil,
		},
		{
			name:    "valid item with empty name",
			item:    &Item{ID: "recipe_3", Tags: map[Category][]string{CategoryMeal: nil}},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidItem,
		},
		{
			name:    "empty id",
			item:    &Item{Name: "Борщ"},
			wantErr: ErrEmptyItemID,
		},
		{
			name:    "blank id",
			item:    &Item{ID: "   "},
			wantErr: ErrEmptyItemID,
		},
		{
			name: "unknown category",
			item: &Item{
				ID:   "recipe_4",
				Tags: map[Category][]string{Category("cuisine"): {"русская"}},
			},
			wantErr: ErrUnknownCategory,
		},
		{
			name: "ingredient given as bare tags",
			item: &Item{
				ID:   "recipe_5",
				Tags: map[Category][]string{CategoryIngredient: {"мука"}},
			},
			wantErr: ErrIngredientInTags,
		},
		{
			name: "blank ingredient name",
			item: &Item{
				ID:          "recipe_6",
				Ingredients: []Ingredient{{Name: "мука", Amount: "200 г"}, {Name: "  ", Amount: "1 шт"}},
			},
			wantErr: ErrEmptyIngredient,
		},
		{
			name: "ingredient without amount",
			item: &Item{
				ID:          "recipe_7",
				Ingredients: []Ingredient{{Name: "соль"}},
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItem(tt.item)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateItem() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateItem() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateItem() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidItem) {
				t.Errorf("ValidateItem() error = %v, want wrapped %v", err, ErrInvalidItem)
			}
		})
	}
}
