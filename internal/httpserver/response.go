package httpserver

import (
	"time"

	"github.com/fullstackvinod/krishAlignUser/internal/cart"
	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	cartsvc "github.com/fullstackvinod/krishAlignUser/internal/service/cart"
	"github.com/shopspring/decimal"
)

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func newList[T any](results []T) listResponse[T] {
	if results == nil {
		results = []T{}
	}
	return listResponse[T]{Count: len(results), Results: results}
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type comboResponse struct {
	ID             string               `json:"id"`
	CategoryID     string               `json:"categoryId"`
	Name           string               `json:"name"`
	Tagline        string               `json:"tagline,omitempty"`
	Description    string               `json:"description,omitempty"`
	Image          string               `json:"image,omitempty"`
	BasePrice      float64              `json:"basePrice"`
	NutrientsCount int                  `json:"nutrientsCount"`
	Badge          string               `json:"badge,omitempty"`
	Ingredients    []ingredientResponse `json:"ingredients"`
}

type ingredientResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	UnitAmount      string  `json:"unitAmount,omitempty"`
	Unit            string  `json:"unit,omitempty"`
	UnitPrice       float64 `json:"unitPrice"`
	DefaultQuantity int     `json:"defaultQuantity"`
	Image           string  `json:"image,omitempty"`
	Benefit         string  `json:"benefit,omitempty"`
}

type orderResponse struct {
	ID              string  `json:"id"`
	OrderNumber     string  `json:"orderNumber"`
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	TotalAmount     float64 `json:"totalAmount"`
	TotalPacks      int     `json:"totalPacks"`
	Category        string  `json:"category"`
	Image           string  `json:"image,omitempty"`
	DeliveryAddress string  `json:"deliveryAddress,omitempty"`
}

type cartResponse struct {
	SessionID string              `json:"sessionId"`
	Count     int                 `json:"count"`
	Entries   []cartEntryResponse `json:"entries"`
	Summary   summaryResponse     `json:"summary"`
}

type cartEntryResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Tagline         string             `json:"tagline,omitempty"`
	Image           string             `json:"image,omitempty"`
	BasePrice       float64            `json:"basePrice"`
	Quantity        int                `json:"quantity"`
	Subtotal        float64            `json:"subtotal"`
	IngredientLines []cartLineResponse `json:"ingredientLines"`
}

type cartLineResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	UnitAmount string  `json:"unitAmount,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image,omitempty"`
	Benefit    string  `json:"benefit,omitempty"`
}

type summaryResponse struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// money rounds to two places for display; arithmetic stays in decimal.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func toCategory(c domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Image: c.Image}
}

func toIngredient(i domain.Ingredient) ingredientResponse {
	return ingredientResponse{
		ID:              i.ID,
		Name:            i.Name,
		UnitAmount:      i.UnitAmount,
		Unit:            i.Unit,
		UnitPrice:       money(i.UnitPrice),
		DefaultQuantity: i.DefaultQuantity,
		Image:           i.Image,
		Benefit:         i.Benefit,
	}
}

func toIngredients(in []domain.Ingredient) []ingredientResponse {
	out := make([]ingredientResponse, 0, len(in))
	for _, i := range in {
		out = append(out, toIngredient(i))
	}
	return out
}

func toCombo(c domain.Combo) comboResponse {
	return comboResponse{
		ID:             c.ID,
		CategoryID:     c.CategoryID,
		Name:           c.Name,
		Tagline:        c.Tagline,
		Description:    c.Description,
		Image:          c.Image,
		BasePrice:      money(c.BasePrice),
		NutrientsCount: c.NutrientsCount,
		Badge:          c.Badge,
		Ingredients:    toIngredients(c.Ingredients),
	}
}

func toOrder(o domain.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Date:            o.PlacedOn.Format(time.DateOnly),
		Status:          o.Status,
		TotalAmount:     money(o.TotalAmount),
		TotalPacks:      o.TotalPacks,
		Category:        o.CategoryID,
		Image:           o.Image,
		DeliveryAddress: o.DeliveryAddress,
	}
}

func toCart(v cartsvc.View) cartResponse {
	entries := make([]cartEntryResponse, 0, len(v.Entries))
	for _, e := range v.Entries {
		lines := make([]cartLineResponse, 0, len(e.IngredientLines))
		for _, l := range e.IngredientLines {
			lines = append(lines, cartLineResponse{
				ID:         l.ID,
				Name:       l.Name,
				UnitAmount: l.UnitAmount,
				Unit:       l.Unit,
				UnitPrice:  money(l.UnitPrice),
				Quantity:   l.Quantity,
				Image:      l.Image,
				Benefit:    l.Benefit,
			})
		}
		entries = append(entries, cartEntryResponse{
			ID:              e.ID,
			Name:            e.Name,
			Tagline:         e.Tagline,
			Image:           e.Image,
			BasePrice:       money(e.BasePrice),
			Quantity:        e.Quantity,
			Subtotal:        money(cart.ComboSubtotal(e)),
			IngredientLines: lines,
		})
	}
	return cartResponse{
		SessionID: v.SessionID,
		Count:     v.Count,
		Entries:   entries,
		Summary: summaryResponse{
			Subtotal:    money(v.Summary.Subtotal),
			DeliveryFee: money(v.Summary.DeliveryFee),
			Tax:         money(v.Summary.Tax),
			Total:       money(v.Summary.Total),
		},
	}
}
