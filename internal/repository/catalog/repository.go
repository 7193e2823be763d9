package catalog

import (
	"context"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
)

// Repository reads the combo catalog.
type Repository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	// ListCombos returns combos in a category, or every combo when categoryID is empty.
	ListCombos(ctx context.Context, categoryID string) ([]domain.Combo, error)
	GetCombo(ctx context.Context, id string) (*domain.Combo, error)
	ListAlternatives(ctx context.Context, ingredientID string) ([]domain.Ingredient, error)
}

// Writer persists catalog entries. Implemented by the Postgres repository for seeding and imports.
type Writer interface {
	UpsertCategory(ctx context.Context, c domain.Category) error
	UpsertIngredient(ctx context.Context, in domain.Ingredient) error
	UpsertCombo(ctx context.Context, c domain.Combo) error
	SetAlternatives(ctx context.Context, ingredientID string, alternativeIDs []string) error
}
