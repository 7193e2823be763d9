package seed

import (
	"context"
	"fmt"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/fullstackvinod/krishAlignUser/internal/fixtures"
	catalogrepo "github.com/fullstackvinod/krishAlignUser/internal/repository/catalog"
)

// OrderWriter persists order history rows.
type OrderWriter interface {
	Upsert(ctx context.Context, o domain.Order) error
}

// Stats counts what Apply wrote.
type Stats struct {
	Categories   int
	Ingredients  int
	Combos       int
	Alternatives int
	Orders       int
}

// Apply writes the sample catalog and order history. It is idempotent: every
// write is an upsert keyed by id.
func Apply(ctx context.Context, data *fixtures.Data, catalog catalogrepo.Writer, orders OrderWriter) (Stats, error) {
	var st Stats
	for _, c := range data.Categories {
		if err := catalog.UpsertCategory(ctx, c); err != nil {
			return st, fmt.Errorf("upsert category %s: %w", c.ID, err)
		}
		st.Categories++
	}

	// Substitutes are not always part of a combo, so every ingredient is written up front.
	for _, in := range data.Ingredients {
		if err := catalog.UpsertIngredient(ctx, in); err != nil {
			return st, fmt.Errorf("upsert ingredient %s: %w", in.ID, err)
		}
		st.Ingredients++
	}

	for _, c := range data.Combos {
		if err := catalog.UpsertCombo(ctx, c); err != nil {
			return st, fmt.Errorf("upsert combo %s: %w", c.ID, err)
		}
		st.Combos++
	}

	for ingredientID, alts := range data.Alternatives {
		ids := make([]string, 0, len(alts))
		for _, alt := range alts {
			ids = append(ids, alt.ID)
		}
		if err := catalog.SetAlternatives(ctx, ingredientID, ids); err != nil {
			return st, fmt.Errorf("set alternatives for %s: %w", ingredientID, err)
		}
		st.Alternatives += len(ids)
	}

	for _, o := range data.Orders {
		if err := orders.Upsert(ctx, o); err != nil {
			return st, fmt.Errorf("upsert order %s: %w", o.ID, err)
		}
		st.Orders++
	}

	return st, nil
}
