package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/shopspring/decimal"
)

type stubComboRepo struct {
	items []domain.Combo
}

func (s *stubComboRepo) UpsertCombo(_ context.Context, c domain.Combo) error {
	s.items = append(s.items, c)
	return nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `combo_id,category,name,tagline,base_price,nutrients,badge,ingredient_id,ingredient_name,unit_amount,unit,unit_price,quantity
kid-9,KidPack,Rainbow Crunch,Colourful veggies,199,12,New,carrots,Carrots,250,g,20,2
,,,,,,,beetroot,Beetroot,250,g,18,
,,,,,,,,,,,,
fit-9,FitnessPack,Protein Bowl,,349.50,8,,,,,,,`

	repo := &stubComboRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 combos imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 combos saved, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "kid-9" || first.CategoryID != "KidPack" || first.NutrientsCount != 12 || first.Badge != "New" {
		t.Fatalf("unexpected combo data: %+v", first)
	}
	if len(first.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredient lines on first combo, got %d", len(first.Ingredients))
	}
	if first.Ingredients[0].DefaultQuantity != 2 || first.Ingredients[1].DefaultQuantity != 1 {
		t.Fatalf("unexpected quantities %+v", first.Ingredients)
	}
	if !first.Ingredients[1].UnitPrice.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("unexpected beetroot price %s", first.Ingredients[1].UnitPrice)
	}
	if !repo.items[1].BasePrice.Equal(decimal.RequireFromString("349.5")) || len(repo.items[1].Ingredients) != 0 {
		t.Fatalf("unexpected second combo %+v", repo.items[1])
	}
}

func TestCSVImporter_Errors(t *testing.T) {
	cases := map[string]string{
		"missing column": "combo_id,name\nkid-1,Green",
		"orphan ingredient": `combo_id,category,name,base_price,ingredient_id
,,,,spinach`,
		"bad price": `combo_id,category,name,base_price,ingredient_id
kid-1,KidPack,Green,abc,`,
		"negative unit price": `combo_id,category,name,base_price,ingredient_id,unit_price
kid-1,KidPack,Green,100,spinach,-5`,
		"duplicate line": `combo_id,category,name,base_price,ingredient_id
kid-1,KidPack,Green,100,spinach
,,,,spinach`,
		"missing name": `combo_id,category,name,base_price,ingredient_id
kid-1,KidPack,,100,`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubComboRepo{}
			if _, err := NewCSVImporter(strings.NewReader(data), repo).Run(context.Background()); err == nil {
				t.Fatalf("expected error")
			}
			if len(repo.items) != 0 {
				t.Fatalf("expected nothing saved, got %d", len(repo.items))
			}
		})
	}
}
