// Package cart holds the shopper's cart for one session: combo entries keyed by
// combo id plus the badge count shown in the tab bar.
//
// A Store is owned by a single caller and is not safe for concurrent use.
// None of its mutations fail; references to unknown combos or ingredient lines
// are no-ops so repeated calls from the client are harmless.
package cart

import "github.com/fullstackvinod/krishAlignUser/internal/domain"

// Store is the in-memory cart state.
type Store struct {
	entries map[string]*domain.ComboCartEntry
	order   []string
	count   int
}

// New returns an empty cart.
func New() *Store {
	return &Store{entries: make(map[string]*domain.ComboCartEntry)}
}

// AddOrUpdateCombo inserts entry, or replaces the stored entry with the same id in place.
// The count grows only when the id is new.
func (s *Store) AddOrUpdateCombo(entry domain.ComboCartEntry) {
	stored := entry.Clone()
	if _, ok := s.entries[entry.ID]; ok {
		s.entries[entry.ID] = &stored
		return
	}
	s.entries[entry.ID] = &stored
	s.order = append(s.order, entry.ID)
	s.count++
}

// RemoveCombo deletes the combo and decrements the count.
func (s *Store) RemoveCombo(comboID string) {
	if _, ok := s.entries[comboID]; !ok {
		return
	}
	delete(s.entries, comboID)
	for i, id := range s.order {
		if id == comboID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.DecrementCount()
}

// UpdateIngredientQuantity sets the quantity of one line. Negative quantities clamp to zero;
// a zero-quantity line stays in the combo.
func (s *Store) UpdateIngredientQuantity(comboID, ingredientID string, quantity int) {
	entry, ok := s.entries[comboID]
	if !ok {
		return
	}
	idx := entry.LineIndex(ingredientID)
	if idx < 0 {
		return
	}
	if quantity < 0 {
		quantity = 0
	}
	entry.IngredientLines[idx].Quantity = quantity
}

// RemoveIngredientLine drops one line from a combo. The combo stays even when
// its last line goes.
func (s *Store) RemoveIngredientLine(comboID, ingredientID string) {
	entry, ok := s.entries[comboID]
	if !ok {
		return
	}
	idx := entry.LineIndex(ingredientID)
	if idx < 0 {
		return
	}
	entry.IngredientLines = append(entry.IngredientLines[:idx], entry.IngredientLines[idx+1:]...)
}

// ReplaceIngredientLine swaps the line oldIngredientID for newLine at the same position.
// It does nothing when newLine.ID already names a different line of the combo.
func (s *Store) ReplaceIngredientLine(comboID, oldIngredientID string, newLine domain.IngredientLine) {
	entry, ok := s.entries[comboID]
	if !ok {
		return
	}
	idx := entry.LineIndex(oldIngredientID)
	if idx < 0 {
		return
	}
	if newLine.ID != oldIngredientID && entry.LineIndex(newLine.ID) >= 0 {
		return
	}
	if newLine.Quantity < 0 {
		newLine.Quantity = 0
	}
	entry.IngredientLines[idx] = newLine
}

// IncrementCount bumps the badge count without touching entries.
func (s *Store) IncrementCount() {
	s.count++
}

// DecrementCount lowers the badge count, never below zero.
func (s *Store) DecrementCount() {
	if s.count > 0 {
		s.count--
	}
}

// Count is the badge number.
func (s *Store) Count() int {
	return s.count
}

// Len is the number of distinct combos in the cart.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entry returns a copy of the combo with the given id.
func (s *Store) Entry(comboID string) (domain.ComboCartEntry, bool) {
	entry, ok := s.entries[comboID]
	if !ok {
		return domain.ComboCartEntry{}, false
	}
	return entry.Clone(), true
}

// Entries returns copies of all combos in insertion order.
func (s *Store) Entries() []domain.ComboCartEntry {
	out := make([]domain.ComboCartEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].Clone())
	}
	return out
}
