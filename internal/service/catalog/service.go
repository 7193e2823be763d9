package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	catalogrepo "github.com/fullstackvinod/krishAlignUser/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) Combos(ctx context.Context, categoryID string) ([]domain.Combo, error) {
	return s.repo.ListCombos(ctx, strings.TrimSpace(categoryID))
}

func (s *Service) Combo(ctx context.Context, id string) (*domain.Combo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: combo id required", domain.ErrValidation)
	}
	return s.repo.GetCombo(ctx, id)
}

func (s *Service) Alternatives(ctx context.Context, ingredientID string) ([]domain.Ingredient, error) {
	ingredientID = strings.TrimSpace(ingredientID)
	if ingredientID == "" {
		return nil, fmt.Errorf("%w: ingredient id required", domain.ErrValidation)
	}
	return s.repo.ListAlternatives(ctx, ingredientID)
}

// Alternative returns the substitute alternativeID offered for ingredientID.
func (s *Service) Alternative(ctx context.Context, ingredientID, alternativeID string) (*domain.Ingredient, error) {
	alts, err := s.Alternatives(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	for _, alt := range alts {
		if alt.ID == alternativeID {
			found := alt
			return &found, nil
		}
	}
	return nil, fmt.Errorf("alternative %q for %q: %w", alternativeID, ingredientID, domain.ErrNotFound)
}

// ComboEntry builds the cart entry added from the combo detail screen: one combo with
// every ingredient at its default quantity.
func (s *Service) ComboEntry(ctx context.Context, comboID string) (domain.ComboCartEntry, error) {
	combo, err := s.Combo(ctx, comboID)
	if err != nil {
		return domain.ComboCartEntry{}, err
	}
	lines := make([]domain.IngredientLine, 0, len(combo.Ingredients))
	for _, in := range combo.Ingredients {
		qty := in.DefaultQuantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, in.Line(qty))
	}
	return domain.ComboCartEntry{
		ID:              combo.ID,
		Name:            combo.Name,
		Tagline:         combo.Tagline,
		Image:           combo.Image,
		BasePrice:       combo.BasePrice,
		Quantity:        1,
		IngredientLines: lines,
	}, nil
}
