package catalog

import (
	"context"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/fullstackvinod/krishAlignUser/internal/fixtures"
)

type fixtureRepo struct {
	categories   []domain.Category
	combos       []domain.Combo
	byID         map[string]int
	alternatives map[string][]domain.Ingredient
}

// NewFixtures serves the catalog from loaded sample data. The data is read-only after construction.
func NewFixtures(data *fixtures.Data) Repository {
	r := &fixtureRepo{
		categories:   data.Categories,
		combos:       data.Combos,
		byID:         make(map[string]int, len(data.Combos)),
		alternatives: data.Alternatives,
	}
	for i, c := range data.Combos {
		r.byID[c.ID] = i
	}
	return r
}

func (r *fixtureRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *fixtureRepo) ListCombos(_ context.Context, categoryID string) ([]domain.Combo, error) {
	out := make([]domain.Combo, 0, len(r.combos))
	for _, c := range r.combos {
		if categoryID != "" && c.CategoryID != categoryID {
			continue
		}
		out = append(out, cloneCombo(c))
	}
	return out, nil
}

func (r *fixtureRepo) GetCombo(_ context.Context, id string) (*domain.Combo, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneCombo(r.combos[idx])
	return &c, nil
}

func (r *fixtureRepo) ListAlternatives(_ context.Context, ingredientID string) ([]domain.Ingredient, error) {
	alts := r.alternatives[ingredientID]
	out := make([]domain.Ingredient, len(alts))
	copy(out, alts)
	return out, nil
}

func cloneCombo(c domain.Combo) domain.Combo {
	out := c
	out.Ingredients = make([]domain.Ingredient, len(c.Ingredients))
	copy(out.Ingredients, c.Ingredients)
	return out
}
