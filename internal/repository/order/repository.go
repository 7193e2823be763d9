package order

import (
	"context"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
)

// Repository reads order history.
type Repository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
