package order

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	orderrepo "github.com/fullstackvinod/krishAlignUser/internal/repository/order"
)

// StatusAll disables status filtering.
const StatusAll = "All"

type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns orders newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]domain.Order, error) {
	status = strings.TrimSpace(status)
	if status != "" && status != StatusAll && !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrValidation, status)
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := orders[:0]
	for _, o := range orders {
		if status == "" || status == StatusAll || o.Status == status {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlacedOn.After(out[j].PlacedOn)
	})
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: order id required", domain.ErrValidation)
	}
	return s.repo.GetByID(ctx, id)
}
