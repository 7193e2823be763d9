package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fullstackvinod/krishAlignUser/internal/cart"
	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/shopspring/decimal"
)

type stubCatalog struct {
	entries      map[string]domain.ComboCartEntry
	alternatives map[string][]domain.Ingredient
	err          error
}

func (s *stubCatalog) ComboEntry(_ context.Context, comboID string) (domain.ComboCartEntry, error) {
	if s.err != nil {
		return domain.ComboCartEntry{}, s.err
	}
	e, ok := s.entries[comboID]
	if !ok {
		return domain.ComboCartEntry{}, domain.ErrNotFound
	}
	return e.Clone(), nil
}

func (s *stubCatalog) Alternative(_ context.Context, ingredientID, alternativeID string) (*domain.Ingredient, error) {
	for _, alt := range s.alternatives[ingredientID] {
		if alt.ID == alternativeID {
			alt := alt
			return &alt, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		entries: map[string]domain.ComboCartEntry{
			"kid-1": {
				ID:        "kid-1",
				Name:      "Green Boost",
				BasePrice: decimal.NewFromInt(249),
				Quantity:  1,
				IngredientLines: []domain.IngredientLine{
					{ID: "spinach", UnitPrice: decimal.NewFromInt(25), Quantity: 1},
				},
			},
			"fitness-1": {
				ID:        "fitness-1",
				BasePrice: decimal.NewFromInt(399),
				Quantity:  1,
			},
		},
		alternatives: map[string][]domain.Ingredient{
			"spinach": {{ID: "kale", Name: "Kale", UnitPrice: decimal.NewFromInt(30)}},
		},
	}
}

func qty(n int) *int { return &n }

func TestServiceOpenReturnsEmptyCart(t *testing.T) {
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Hour, nil)
	view := svc.Open(context.Background())
	if view.SessionID == "" {
		t.Fatal("expected session id")
	}
	if view.Count != 0 || len(view.Entries) != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}
	if !view.Summary.DeliveryFee.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected flat fee on empty cart, got %s", view.Summary.DeliveryFee)
	}
}

func TestServiceUpdateFlow(t *testing.T) {
	ctx := context.Background()
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Hour, nil)
	id := svc.Open(ctx).SessionID

	view, err := svc.Update(ctx, id, UpdateInput{Actions: []UpdateAction{
		{Action: "addCombo", ComboID: "kid-1"},
		{Action: "changeIngredientQuantity", ComboID: "kid-1", IngredientID: "spinach", Quantity: qty(3)},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Count != 1 {
		t.Fatalf("expected count 1, got %d", view.Count)
	}
	// 249 + 3*25
	if !view.Summary.Subtotal.Equal(decimal.NewFromInt(324)) {
		t.Fatalf("expected subtotal 324, got %s", view.Summary.Subtotal)
	}

	view, err = svc.Update(ctx, id, UpdateInput{Actions: []UpdateAction{
		{Action: "replaceIngredient", ComboID: "kid-1", IngredientID: "spinach", AlternativeID: "kale"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := view.Entries[0].IngredientLines[0]
	if line.ID != "kale" || line.Quantity != 3 {
		t.Fatalf("expected kale x3, got %+v", line)
	}

	view, err = svc.Update(ctx, id, UpdateInput{Actions: []UpdateAction{
		{Action: "removeCombo", ComboID: "kid-1"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Count != 0 || len(view.Entries) != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestServiceReplaceZeroQuantityUsesOne(t *testing.T) {
	ctx := context.Background()
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Hour, nil)
	id := svc.Open(ctx).SessionID

	view, err := svc.Update(ctx, id, UpdateInput{Actions: []UpdateAction{
		{Action: "addCombo", ComboID: "kid-1"},
		{Action: "changeIngredientQuantity", ComboID: "kid-1", IngredientID: "spinach", Quantity: qty(0)},
		{Action: "replaceIngredient", ComboID: "kid-1", IngredientID: "spinach", AlternativeID: "kale"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := view.Entries[0].IngredientLines[0]; got.ID != "kale" || got.Quantity != 1 {
		t.Fatalf("expected kale x1, got %+v", got)
	}
}

func TestServiceUpdateRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Hour, nil)
	id := svc.Open(ctx).SessionID

	cases := map[string]UpdateAction{
		"unknown action":   {Action: "checkout"},
		"missing combo":    {Action: "addCombo"},
		"unknown combo":    {Action: "addCombo", ComboID: "nope"},
		"missing quantity": {Action: "changeIngredientQuantity", ComboID: "kid-1", IngredientID: "spinach"},
		"bad alternative":  {Action: "replaceIngredient", ComboID: "kid-1", IngredientID: "spinach", AlternativeID: "corn"},
	}
	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Update(ctx, id, UpdateInput{Actions: []UpdateAction{
				{Action: "incrementCount"},
				bad,
			}})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			view, err := svc.Get(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if view.Count != 0 {
				t.Fatalf("expected nothing applied, count %d", view.Count)
			}
		})
	}
}

func TestServiceUpdateRequiresActions(t *testing.T) {
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Hour, nil)
	id := svc.Open(context.Background()).SessionID
	if _, err := svc.Update(context.Background(), id, UpdateInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCatalogFailurePassesThrough(t *testing.T) {
	boom := errors.New("db down")
	catalog := newStubCatalog()
	catalog.err = boom
	svc := New(catalog, cart.DefaultPricing, time.Hour, nil)
	id := svc.Open(context.Background()).SessionID

	_, err := svc.Update(context.Background(), id, UpdateInput{Actions: []UpdateAction{{Action: "addCombo", ComboID: "kid-1"}}})
	if !errors.Is(err, boom) || errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestServiceCountActions(t *testing.T) {
	ctx := context.Background()
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Hour, nil)
	id := svc.Open(ctx).SessionID

	view, err := svc.Update(ctx, id, UpdateInput{Actions: []UpdateAction{
		{Action: "decrementCount"},
		{Action: "INCREMENTCOUNT"},
		{Action: "incrementCount"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Count != 2 {
		t.Fatalf("expected count 2, got %d", view.Count)
	}
}

func TestServiceUnknownSession(t *testing.T) {
	ctx := context.Background()
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Hour, nil)
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", UpdateInput{Actions: []UpdateAction{{Action: "incrementCount"}}}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.Close(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestServiceCloseAndSweep(t *testing.T) {
	ctx := context.Background()
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Minute, nil)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc.sessions.now = clock.now

	closed := svc.Open(ctx).SessionID
	svc.Open(ctx)
	if err := svc.Close(ctx, closed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(ctx, closed); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected closed session to be gone, got %v", err)
	}

	clock.t = clock.t.Add(2 * time.Minute)
	if removed := svc.Sweep(ctx); removed != 1 {
		t.Fatalf("expected 1 expired session swept, got %d", removed)
	}
}

func TestServiceConcurrentUpdatesOnOneSession(t *testing.T) {
	ctx := context.Background()
	svc := New(newStubCatalog(), cart.DefaultPricing, time.Hour, nil)
	id := svc.Open(ctx).SessionID

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Update(ctx, id, UpdateInput{Actions: []UpdateAction{{Action: "incrementCount"}}})
		}()
	}
	wg.Wait()

	view, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Count != 50 {
		t.Fatalf("expected count 50, got %d", view.Count)
	}
}
