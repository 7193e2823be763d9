package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/fullstackvinod/krishAlignUser/internal/fixtures"
)

type stubCatalogWriter struct {
	categories   []string
	ingredients  []string
	combos       []string
	alternatives map[string][]string
	comboErr     error
}

func (s *stubCatalogWriter) UpsertCategory(_ context.Context, c domain.Category) error {
	s.categories = append(s.categories, c.ID)
	return nil
}

func (s *stubCatalogWriter) UpsertIngredient(_ context.Context, in domain.Ingredient) error {
	s.ingredients = append(s.ingredients, in.ID)
	return nil
}

func (s *stubCatalogWriter) UpsertCombo(_ context.Context, c domain.Combo) error {
	if s.comboErr != nil {
		return s.comboErr
	}
	s.combos = append(s.combos, c.ID)
	return nil
}

func (s *stubCatalogWriter) SetAlternatives(_ context.Context, ingredientID string, ids []string) error {
	if s.alternatives == nil {
		s.alternatives = map[string][]string{}
	}
	s.alternatives[ingredientID] = ids
	return nil
}

type stubOrderWriter struct {
	ids []string
}

func (s *stubOrderWriter) Upsert(_ context.Context, o domain.Order) error {
	s.ids = append(s.ids, o.ID)
	return nil
}

func TestApply_WritesEmbeddedData(t *testing.T) {
	data, err := fixtures.Load()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	catalog := &stubCatalogWriter{}
	orders := &stubOrderWriter{}

	st, err := Apply(context.Background(), data, catalog, orders)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if st.Categories != len(data.Categories) || len(catalog.categories) != len(data.Categories) {
		t.Fatalf("expected %d categories, got %+v", len(data.Categories), st)
	}
	if st.Ingredients != len(data.Ingredients) || st.Combos != len(data.Combos) {
		t.Fatalf("unexpected stats %+v", st)
	}
	if len(orders.ids) != len(data.Orders) {
		t.Fatalf("expected %d orders, got %d", len(data.Orders), len(orders.ids))
	}
	if got := catalog.alternatives["spinach"]; len(got) == 0 {
		t.Fatalf("expected spinach alternatives, got %v", got)
	}
}

func TestApply_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	data := &fixtures.Data{
		Combos: []domain.Combo{{ID: "kid-1"}},
		Orders: []domain.Order{{ID: "o-1"}},
	}
	orders := &stubOrderWriter{}
	_, err := Apply(context.Background(), data, &stubCatalogWriter{comboErr: boom}, orders)
	if !errors.Is(err, boom) {
		t.Fatalf("expected combo error, got %v", err)
	}
	if len(orders.ids) != 0 {
		t.Fatal("expected orders to be skipped after failure")
	}
}
