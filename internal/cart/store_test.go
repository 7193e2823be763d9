package cart

import (
	"testing"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func greenBoost() domain.ComboCartEntry {
	return domain.ComboCartEntry{
		ID:        "c1",
		Name:      "Green Boost",
		BasePrice: dec(249),
		Quantity:  1,
		IngredientLines: []domain.IngredientLine{
			{ID: "i1", Name: "Spinach", UnitPrice: dec(25), Quantity: 1},
		},
	}
}

func TestStoreAddDistinctIDsCountsEach(t *testing.T) {
	s := New()
	for _, id := range []string{"c3", "c1", "c2"} {
		s.AddOrUpdateCombo(domain.ComboCartEntry{ID: id, Quantity: 1})
	}
	if s.Count() != 3 || s.Len() != 3 {
		t.Fatalf("expected count 3 and 3 entries, got count=%d len=%d", s.Count(), s.Len())
	}
	got := s.Entries()
	if got[0].ID != "c3" || got[1].ID != "c1" || got[2].ID != "c2" {
		t.Fatalf("expected insertion order, got %+v", got)
	}
}

func TestStoreAddSameIDReplacesInPlace(t *testing.T) {
	s := New()
	s.AddOrUpdateCombo(domain.ComboCartEntry{ID: "a", Name: "first"})
	s.AddOrUpdateCombo(domain.ComboCartEntry{ID: "b", Name: "other"})
	s.AddOrUpdateCombo(domain.ComboCartEntry{ID: "a", Name: "second"})

	if s.Count() != 2 {
		t.Fatalf("expected count 2, got %d", s.Count())
	}
	entries := s.Entries()
	if entries[0].ID != "a" || entries[0].Name != "second" {
		t.Fatalf("expected replaced entry in first position, got %+v", entries)
	}
}

func TestStoreRemoveUnknownComboIsNoop(t *testing.T) {
	s := New()
	s.AddOrUpdateCombo(greenBoost())
	before := s.Entries()

	s.RemoveCombo("missing")

	if s.Count() != 1 {
		t.Fatalf("expected count 1, got %d", s.Count())
	}
	if diff := cmp.Diff(before, s.Entries(), decimalEqual); diff != "" {
		t.Fatalf("entries changed (-before +after):\n%s", diff)
	}
}

func TestStoreCountNeverNegative(t *testing.T) {
	s := New()
	s.AddOrUpdateCombo(domain.ComboCartEntry{ID: "a"})
	s.RemoveCombo("a")
	s.RemoveCombo("a")
	s.DecrementCount()
	s.DecrementCount()
	if s.Count() != 0 {
		t.Fatalf("expected count 0, got %d", s.Count())
	}
	s.IncrementCount()
	if s.Count() != 1 {
		t.Fatalf("expected count 1 after increment, got %d", s.Count())
	}
}

func TestStoreStandaloneCounterIsIndependentOfEntries(t *testing.T) {
	s := New()
	s.IncrementCount()
	s.IncrementCount()
	if s.Count() != 2 || s.Len() != 0 {
		t.Fatalf("unexpected state count=%d len=%d", s.Count(), s.Len())
	}
	s.AddOrUpdateCombo(greenBoost())
	if s.Count() != 3 {
		t.Fatalf("expected count 3, got %d", s.Count())
	}
}

func TestStoreZeroQuantityKeepsLine(t *testing.T) {
	s := New()
	s.AddOrUpdateCombo(greenBoost())
	s.UpdateIngredientQuantity("c1", "i1", 0)

	entry, ok := s.Entry("c1")
	if !ok {
		t.Fatalf("combo removed")
	}
	if len(entry.IngredientLines) != 1 || entry.IngredientLines[0].Quantity != 0 {
		t.Fatalf("expected line kept at quantity 0, got %+v", entry.IngredientLines)
	}
}

func TestStoreNegativeQuantityClampsToZero(t *testing.T) {
	s := New()
	s.AddOrUpdateCombo(greenBoost())
	s.UpdateIngredientQuantity("c1", "i1", -4)

	entry, _ := s.Entry("c1")
	if entry.IngredientLines[0].Quantity != 0 {
		t.Fatalf("expected clamped quantity 0, got %d", entry.IngredientLines[0].Quantity)
	}
}

func TestStoreUpdateUnknownReferencesIsNoop(t *testing.T) {
	s := New()
	s.AddOrUpdateCombo(greenBoost())
	s.UpdateIngredientQuantity("missing", "i1", 7)
	s.UpdateIngredientQuantity("c1", "missing", 7)

	entry, _ := s.Entry("c1")
	if entry.IngredientLines[0].Quantity != 1 {
		t.Fatalf("expected quantity untouched, got %d", entry.IngredientLines[0].Quantity)
	}
}

func TestStoreRemoveLastLineKeepsCombo(t *testing.T) {
	s := New()
	s.AddOrUpdateCombo(greenBoost())
	s.RemoveIngredientLine("c1", "i1")
	s.RemoveIngredientLine("c1", "i1")

	entry, ok := s.Entry("c1")
	if !ok {
		t.Fatalf("combo should stay after its last line is removed")
	}
	if len(entry.IngredientLines) != 0 {
		t.Fatalf("expected no lines, got %+v", entry.IngredientLines)
	}
	if s.Count() != 1 {
		t.Fatalf("line removal must not change count, got %d", s.Count())
	}
}

func TestStoreReplaceIngredientLine(t *testing.T) {
	s := New()
	entry := greenBoost()
	entry.IngredientLines = append(entry.IngredientLines, domain.IngredientLine{ID: "i2", Name: "Broccoli", UnitPrice: dec(30), Quantity: 1})
	s.AddOrUpdateCombo(entry)

	kale := domain.IngredientLine{ID: "kale", Name: "Kale", UnitPrice: dec(30), Quantity: 2}
	s.ReplaceIngredientLine("c1", "i1", kale)

	got, _ := s.Entry("c1")
	want := []domain.IngredientLine{
		kale,
		{ID: "i2", Name: "Broccoli", UnitPrice: dec(30), Quantity: 1},
	}
	if diff := cmp.Diff(want, got.IngredientLines, decimalEqual); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
	if s.Count() != 1 {
		t.Fatalf("replace must not change count, got %d", s.Count())
	}
}

func TestStoreReplaceRejectsDuplicateLineID(t *testing.T) {
	s := New()
	entry := greenBoost()
	entry.IngredientLines = append(entry.IngredientLines, domain.IngredientLine{ID: "i2", Name: "Broccoli", UnitPrice: dec(30), Quantity: 1})
	s.AddOrUpdateCombo(entry)

	s.ReplaceIngredientLine("c1", "i1", domain.IngredientLine{ID: "i2", Name: "Dup", UnitPrice: dec(1), Quantity: 1})
	s.ReplaceIngredientLine("c1", "missing", domain.IngredientLine{ID: "x", Name: "X", Quantity: 1})
	s.ReplaceIngredientLine("missing", "i1", domain.IngredientLine{ID: "x", Name: "X", Quantity: 1})

	got, _ := s.Entry("c1")
	if diff := cmp.Diff(entry.IngredientLines, got.IngredientLines, decimalEqual); diff != "" {
		t.Fatalf("lines changed (-want +got):\n%s", diff)
	}
}

func TestStoreSnapshotsAreIsolated(t *testing.T) {
	s := New()
	entry := greenBoost()
	s.AddOrUpdateCombo(entry)
	entry.IngredientLines[0].Quantity = 99

	snap := s.Entries()
	snap[0].IngredientLines[0].Quantity = 42

	got, _ := s.Entry("c1")
	if got.IngredientLines[0].Quantity != 1 {
		t.Fatalf("store mutated through caller slice, got %d", got.IngredientLines[0].Quantity)
	}
}

func TestStoreScenario(t *testing.T) {
	s := New()
	s.AddOrUpdateCombo(greenBoost())

	entry, _ := s.Entry("c1")
	if s.Count() != 1 || !ComboSubtotal(entry).Equal(dec(274)) {
		t.Fatalf("after add: count=%d subtotal=%s", s.Count(), ComboSubtotal(entry))
	}

	s.UpdateIngredientQuantity("c1", "i1", 3)
	entry, _ = s.Entry("c1")
	if entry.IngredientLines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", entry.IngredientLines[0].Quantity)
	}
	if s.Count() != 1 || !ComboSubtotal(entry).Equal(dec(324)) {
		t.Fatalf("after update: count=%d subtotal=%s", s.Count(), ComboSubtotal(entry))
	}

	s.RemoveCombo("c1")
	if s.Len() != 0 || s.Count() != 0 {
		t.Fatalf("after remove: len=%d count=%d", s.Len(), s.Count())
	}
}
