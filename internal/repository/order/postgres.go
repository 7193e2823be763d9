package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PostgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *PostgresRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id, order_number, placed_on, status, total_amount::text, total_packs, category_id, image, delivery_address`

func (r *PostgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY placed_on DESC, order_number DESC`)
	if err != nil {
		r.logger.Error("list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get order", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return &o, nil
}

// Upsert writes an order, keyed by id.
func (r *PostgresRepo) Upsert(ctx context.Context, o domain.Order) error {
	const q = `
INSERT INTO orders (id, order_number, placed_on, status, total_amount, total_packs, category_id, image, delivery_address)
VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE
SET order_number = EXCLUDED.order_number,
    placed_on = EXCLUDED.placed_on,
    status = EXCLUDED.status,
    total_amount = EXCLUDED.total_amount,
    total_packs = EXCLUDED.total_packs,
    category_id = EXCLUDED.category_id,
    image = EXCLUDED.image,
    delivery_address = EXCLUDED.delivery_address
`
	if _, err := r.pool.Exec(ctx, q, o.ID, o.OrderNumber, o.PlacedOn, o.Status, o.TotalAmount.String(), o.TotalPacks, o.CategoryID, o.Image, o.DeliveryAddress); err != nil {
		r.logger.Error("upsert order", zap.String("order_id", o.ID), zap.Error(err))
		return err
	}
	return nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o     domain.Order
		total string
	)
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.PlacedOn, &o.Status, &total, &o.TotalPacks, &o.CategoryID, &o.Image, &o.DeliveryAddress); err != nil {
		return domain.Order{}, err
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %s total: %w", o.ID, err)
	}
	o.TotalAmount = d
	return o, nil
}
