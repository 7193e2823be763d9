package order

import (
	"context"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/fullstackvinod/krishAlignUser/internal/fixtures"
)

type fixtureRepo struct {
	orders []domain.Order
}

func NewFixtures(data *fixtures.Data) Repository {
	return &fixtureRepo{orders: data.Orders}
}

func (r *fixtureRepo) List(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *fixtureRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}
