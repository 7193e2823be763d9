// Package fixtures loads the storefront sample data (catalog and order history)
// embedded in the binary.
package fixtures

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Data is the validated sample data set.
type Data struct {
	Categories   []domain.Category
	Ingredients  []domain.Ingredient
	Combos       []domain.Combo
	Alternatives map[string][]domain.Ingredient
	Orders       []domain.Order
}

type rawCatalog struct {
	Categories   []rawCategory       `yaml:"categories"`
	Ingredients  []rawIngredient     `yaml:"ingredients"`
	Alternatives map[string][]string `yaml:"alternatives"`
	Combos       []rawCombo          `yaml:"combos"`
}

type rawCategory struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

type rawIngredient struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Amount  string `yaml:"amount"`
	Unit    string `yaml:"unit"`
	Price   string `yaml:"price"`
	Image   string `yaml:"image"`
	Benefit string `yaml:"benefit"`
}

type rawCombo struct {
	ID          string         `yaml:"id"`
	Category    string         `yaml:"category"`
	Name        string         `yaml:"name"`
	Tagline     string         `yaml:"tagline"`
	Description string         `yaml:"description"`
	Image       string         `yaml:"image"`
	Price       string         `yaml:"price"`
	Nutrients   int            `yaml:"nutrients"`
	Badge       string         `yaml:"badge"`
	Ingredients []rawComboLine `yaml:"ingredients"`
}

type rawComboLine struct {
	ID       string `yaml:"id"`
	Quantity int    `yaml:"quantity"`
}

type rawOrders struct {
	Orders []rawOrder `yaml:"orders"`
}

type rawOrder struct {
	ID       string `yaml:"id"`
	Number   string `yaml:"number"`
	Date     string `yaml:"date"`
	Status   string `yaml:"status"`
	Total    string `yaml:"total"`
	Packs    int    `yaml:"packs"`
	Category string `yaml:"category"`
	Image    string `yaml:"image"`
	Address  string `yaml:"address"`
}

// Load parses the embedded sample data.
func Load() (*Data, error) {
	catalog, err := dataFS.ReadFile("data/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog fixtures: %w", err)
	}
	orders, err := dataFS.ReadFile("data/orders.yaml")
	if err != nil {
		return nil, fmt.Errorf("read order fixtures: %w", err)
	}
	return Parse(catalog, orders)
}

// Parse decodes and validates catalog and order YAML documents.
func Parse(catalogYAML, ordersYAML []byte) (*Data, error) {
	var rc rawCatalog
	if err := yaml.Unmarshal(catalogYAML, &rc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	var ro rawOrders
	if err := yaml.Unmarshal(ordersYAML, &ro); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	data := &Data{Alternatives: make(map[string][]domain.Ingredient)}

	categories := make(map[string]struct{}, len(rc.Categories))
	for i, c := range rc.Categories {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("category #%d: id and name required", i)
		}
		if _, dup := categories[c.ID]; dup {
			return nil, fmt.Errorf("category %q: duplicate id", c.ID)
		}
		categories[c.ID] = struct{}{}
		data.Categories = append(data.Categories, domain.Category{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Image:       c.Image,
			Position:    i,
		})
	}

	ingredients := make(map[string]domain.Ingredient, len(rc.Ingredients))
	for i, in := range rc.Ingredients {
		if strings.TrimSpace(in.ID) == "" || strings.TrimSpace(in.Name) == "" {
			return nil, fmt.Errorf("ingredient #%d: id and name required", i)
		}
		if _, dup := ingredients[in.ID]; dup {
			return nil, fmt.Errorf("ingredient %q: duplicate id", in.ID)
		}
		price, err := parsePrice(in.Price)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", in.ID, err)
		}
		ing := domain.Ingredient{
			ID:              in.ID,
			Name:            in.Name,
			UnitAmount:      in.Amount,
			Unit:            in.Unit,
			UnitPrice:       price,
			DefaultQuantity: 1,
			Image:           in.Image,
			Benefit:         in.Benefit,
		}
		ingredients[in.ID] = ing
		data.Ingredients = append(data.Ingredients, ing)
	}

	for ingredientID, altIDs := range rc.Alternatives {
		if _, ok := ingredients[ingredientID]; !ok {
			return nil, fmt.Errorf("alternatives for unknown ingredient %q", ingredientID)
		}
		for _, altID := range altIDs {
			alt, ok := ingredients[altID]
			if !ok {
				return nil, fmt.Errorf("alternative %q for %q: unknown ingredient", altID, ingredientID)
			}
			if altID == ingredientID {
				return nil, fmt.Errorf("ingredient %q lists itself as an alternative", ingredientID)
			}
			data.Alternatives[ingredientID] = append(data.Alternatives[ingredientID], alt)
		}
	}

	combos := make(map[string]struct{}, len(rc.Combos))
	for i, c := range rc.Combos {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("combo #%d: id and name required", i)
		}
		if _, dup := combos[c.ID]; dup {
			return nil, fmt.Errorf("combo %q: duplicate id", c.ID)
		}
		combos[c.ID] = struct{}{}
		if _, ok := categories[c.Category]; !ok {
			return nil, fmt.Errorf("combo %q: unknown category %q", c.ID, c.Category)
		}
		price, err := parsePrice(c.Price)
		if err != nil {
			return nil, fmt.Errorf("combo %q: %w", c.ID, err)
		}
		combo := domain.Combo{
			ID:             c.ID,
			CategoryID:     c.Category,
			Name:           c.Name,
			Tagline:        c.Tagline,
			Description:    c.Description,
			Image:          c.Image,
			BasePrice:      price,
			NutrientsCount: c.Nutrients,
			Badge:          c.Badge,
		}
		seen := make(map[string]struct{}, len(c.Ingredients))
		for _, line := range c.Ingredients {
			ing, ok := ingredients[line.ID]
			if !ok {
				return nil, fmt.Errorf("combo %q: unknown ingredient %q", c.ID, line.ID)
			}
			if _, dup := seen[line.ID]; dup {
				return nil, fmt.Errorf("combo %q: ingredient %q listed twice", c.ID, line.ID)
			}
			seen[line.ID] = struct{}{}
			if line.Quantity < 0 {
				return nil, fmt.Errorf("combo %q: negative quantity for %q", c.ID, line.ID)
			}
			if line.Quantity > 0 {
				ing.DefaultQuantity = line.Quantity
			}
			combo.Ingredients = append(combo.Ingredients, ing)
		}
		data.Combos = append(data.Combos, combo)
	}

	orderIDs := make(map[string]struct{}, len(ro.Orders))
	for i, o := range ro.Orders {
		if strings.TrimSpace(o.ID) == "" {
			return nil, fmt.Errorf("order #%d: id required", i)
		}
		if _, dup := orderIDs[o.ID]; dup {
			return nil, fmt.Errorf("order %q: duplicate id", o.ID)
		}
		orderIDs[o.ID] = struct{}{}
		if !domain.ValidOrderStatus(o.Status) {
			return nil, fmt.Errorf("order %q: unknown status %q", o.ID, o.Status)
		}
		placed, err := time.Parse(time.DateOnly, o.Date)
		if err != nil {
			return nil, fmt.Errorf("order %q: parse date: %w", o.ID, err)
		}
		total, err := parsePrice(o.Total)
		if err != nil {
			return nil, fmt.Errorf("order %q: %w", o.ID, err)
		}
		data.Orders = append(data.Orders, domain.Order{
			ID:              o.ID,
			OrderNumber:     o.Number,
			PlacedOn:        placed,
			Status:          o.Status,
			TotalAmount:     total,
			TotalPacks:      o.Packs,
			CategoryID:      o.Category,
			Image:           o.Image,
			DeliveryAddress: o.Address,
		})
	}

	return data, nil
}

func parsePrice(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", v, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %q", v)
	}
	return d, nil
}
