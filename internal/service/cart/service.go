package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fullstackvinod/krishAlignUser/internal/cart"
	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for unknown or expired cart sessions.
var ErrSessionNotFound = errors.New("cart session not found")

// Supported update actions.
const (
	ActionAddCombo                 = "addcombo"
	ActionRemoveCombo              = "removecombo"
	ActionChangeIngredientQuantity = "changeingredientquantity"
	ActionRemoveIngredient         = "removeingredient"
	ActionReplaceIngredient        = "replaceingredient"
	ActionIncrementCount           = "incrementcount"
	ActionDecrementCount           = "decrementcount"
)

type catalogSource interface {
	ComboEntry(ctx context.Context, comboID string) (domain.ComboCartEntry, error)
	Alternative(ctx context.Context, ingredientID, alternativeID string) (*domain.Ingredient, error)
}

// Service keeps one in-memory cart per client session.
type Service struct {
	sessions *sessionRegistry
	catalog  catalogSource
	pricing  cart.Pricing
	logger   *zap.Logger
}

func New(catalog catalogSource, pricing cart.Pricing, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions: newSessionRegistry(ttl),
		catalog:  catalog,
		pricing:  pricing,
		logger:   logger,
	}
}

type UpdateInput struct {
	Actions []UpdateAction `json:"actions"`
}

type UpdateAction struct {
	Action        string `json:"action"`
	ComboID       string `json:"comboId,omitempty"`
	IngredientID  string `json:"ingredientId,omitempty"`
	AlternativeID string `json:"alternativeId,omitempty"`
	Quantity      *int   `json:"quantity,omitempty"`
}

// View is a read-only snapshot of a session's cart with its price summary.
type View struct {
	SessionID string                  `json:"sessionId"`
	Count     int                     `json:"count"`
	Entries   []domain.ComboCartEntry `json:"entries"`
	Summary   cart.Summary            `json:"summary"`
}

// Open starts a new session with an empty cart.
func (s *Service) Open(_ context.Context) View {
	sess := s.sessions.open()
	s.logger.Debug("cart session opened", zap.String("session_id", sess.id))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess)
}

func (s *Service) Get(_ context.Context, sessionID string) (View, error) {
	sess, ok := s.sessions.lookup(sessionID)
	if !ok {
		return View{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess), nil
}

// Close discards a session and its cart.
func (s *Service) Close(_ context.Context, sessionID string) error {
	if !s.sessions.close(sessionID) {
		return ErrSessionNotFound
	}
	s.logger.Debug("cart session closed", zap.String("session_id", sessionID))
	return nil
}

// Update validates every action, then applies them in order. Nothing is applied
// when any action is rejected.
func (s *Service) Update(ctx context.Context, sessionID string, in UpdateInput) (View, error) {
	if len(in.Actions) == 0 {
		return View{}, fmt.Errorf("%w: actions required", domain.ErrValidation)
	}
	sess, ok := s.sessions.lookup(sessionID)
	if !ok {
		return View{}, ErrSessionNotFound
	}

	steps := make([]func(*cart.Store), 0, len(in.Actions))
	for i, action := range in.Actions {
		step, err := s.resolve(ctx, action)
		if err != nil {
			return View{}, fmt.Errorf("action %d: %w", i, err)
		}
		steps = append(steps, step)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	for _, step := range steps {
		step(sess.store)
	}
	s.logger.Debug("cart updated",
		zap.String("session_id", sessionID),
		zap.Int("actions", len(steps)),
		zap.Int("count", sess.store.Count()),
	)
	return s.view(sess), nil
}

// Sweep drops expired sessions.
func (s *Service) Sweep(_ context.Context) int {
	removed := s.sessions.sweep()
	if removed > 0 {
		s.logger.Info("expired cart sessions removed", zap.Int("removed", removed), zap.Int("remaining", s.sessions.len()))
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *Service) resolve(ctx context.Context, action UpdateAction) (func(*cart.Store), error) {
	comboID := strings.TrimSpace(action.ComboID)
	ingredientID := strings.TrimSpace(action.IngredientID)

	switch strings.ToLower(strings.TrimSpace(action.Action)) {
	case ActionAddCombo:
		if comboID == "" {
			return nil, fmt.Errorf("%w: comboId required", domain.ErrValidation)
		}
		entry, err := s.catalog.ComboEntry(ctx, comboID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: combo %q not found", domain.ErrValidation, comboID)
			}
			return nil, err
		}
		return func(st *cart.Store) { st.AddOrUpdateCombo(entry) }, nil

	case ActionRemoveCombo:
		if comboID == "" {
			return nil, fmt.Errorf("%w: comboId required", domain.ErrValidation)
		}
		return func(st *cart.Store) { st.RemoveCombo(comboID) }, nil

	case ActionChangeIngredientQuantity:
		if comboID == "" || ingredientID == "" {
			return nil, fmt.Errorf("%w: comboId and ingredientId required", domain.ErrValidation)
		}
		if action.Quantity == nil {
			return nil, fmt.Errorf("%w: quantity required", domain.ErrValidation)
		}
		qty := *action.Quantity
		return func(st *cart.Store) { st.UpdateIngredientQuantity(comboID, ingredientID, qty) }, nil

	case ActionRemoveIngredient:
		if comboID == "" || ingredientID == "" {
			return nil, fmt.Errorf("%w: comboId and ingredientId required", domain.ErrValidation)
		}
		return func(st *cart.Store) { st.RemoveIngredientLine(comboID, ingredientID) }, nil

	case ActionReplaceIngredient:
		alternativeID := strings.TrimSpace(action.AlternativeID)
		if comboID == "" || ingredientID == "" || alternativeID == "" {
			return nil, fmt.Errorf("%w: comboId, ingredientId and alternativeId required", domain.ErrValidation)
		}
		alt, err := s.catalog.Alternative(ctx, ingredientID, alternativeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: %q is not an alternative for %q", domain.ErrValidation, alternativeID, ingredientID)
			}
			return nil, err
		}
		substitute := *alt
		return func(st *cart.Store) { replaceIngredient(st, comboID, ingredientID, substitute) }, nil

	case ActionIncrementCount:
		return func(st *cart.Store) { st.IncrementCount() }, nil

	case ActionDecrementCount:
		return func(st *cart.Store) { st.DecrementCount() }, nil

	default:
		return nil, fmt.Errorf("%w: unsupported action %q", domain.ErrValidation, action.Action)
	}
}

// replaceIngredient carries the replaced line's quantity over to the substitute.
func replaceIngredient(st *cart.Store, comboID, ingredientID string, substitute domain.Ingredient) {
	entry, ok := st.Entry(comboID)
	if !ok {
		return
	}
	idx := entry.LineIndex(ingredientID)
	if idx < 0 {
		return
	}
	qty := entry.IngredientLines[idx].Quantity
	if qty < 1 {
		qty = 1
	}
	st.ReplaceIngredientLine(comboID, ingredientID, substitute.Line(qty))
}

func (s *Service) view(sess *session) View {
	entries := sess.store.Entries()
	return View{
		SessionID: sess.id,
		Count:     sess.store.Count(),
		Entries:   entries,
		Summary:   s.pricing.Quote(entries),
	}
}
