package domain

import "github.com/shopspring/decimal"

// ComboCartEntry is one combo a shopper has placed in the cart.
type ComboCartEntry struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Tagline         string           `json:"tagline,omitempty"`
	Image           string           `json:"image,omitempty"`
	BasePrice       decimal.Decimal  `json:"basePrice"`
	Quantity        int              `json:"quantity"`
	IngredientLines []IngredientLine `json:"ingredientLines"`
}

// IngredientLine is one ingredient of a combo, priced and quantified on its own.
type IngredientLine struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	UnitAmount string          `json:"unitAmount,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	Image      string          `json:"image,omitempty"`
	Benefit    string          `json:"benefit,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate stored lines through a shared slice.
func (e ComboCartEntry) Clone() ComboCartEntry {
	out := e
	out.IngredientLines = make([]IngredientLine, len(e.IngredientLines))
	copy(out.IngredientLines, e.IngredientLines)
	return out
}

// LineIndex returns the position of the ingredient line with the given id, or -1.
func (e ComboCartEntry) LineIndex(ingredientID string) int {
	for i, line := range e.IngredientLines {
		if line.ID == ingredientID {
			return i
		}
	}
	return -1
}
