package domain

import "github.com/shopspring/decimal"

// Combo is a bundled product sold as a unit with a base price.
type Combo struct {
	ID             string          `json:"id"`
	CategoryID     string          `json:"categoryId"`
	Name           string          `json:"name"`
	Tagline        string          `json:"tagline,omitempty"`
	Description    string          `json:"description,omitempty"`
	Image          string          `json:"image,omitempty"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	NutrientsCount int             `json:"nutrientsCount"`
	Badge          string          `json:"badge,omitempty"`
	Ingredients    []Ingredient    `json:"ingredients,omitempty"`
}

// Ingredient is a catalog ingredient, either part of a combo or offered as a substitute.
type Ingredient struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	UnitAmount      string          `json:"unitAmount,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DefaultQuantity int             `json:"defaultQuantity"`
	Image           string          `json:"image,omitempty"`
	Benefit         string          `json:"benefit,omitempty"`
}

// Line converts the ingredient into a cart line with the given quantity.
func (i Ingredient) Line(quantity int) IngredientLine {
	return IngredientLine{
		ID:         i.ID,
		Name:       i.Name,
		UnitAmount: i.UnitAmount,
		Unit:       i.Unit,
		UnitPrice:  i.UnitPrice,
		Quantity:   quantity,
		Image:      i.Image,
		Benefit:    i.Benefit,
	}
}
