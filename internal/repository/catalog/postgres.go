package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PostgresRepo is the Postgres-backed catalog. It implements both Repository and Writer.
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

func (r *PostgresRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id, name, description, image, position
FROM categories
ORDER BY position ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("list categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.Position); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepo) ListCombos(ctx context.Context, categoryID string) ([]domain.Combo, error) {
	const q = `
SELECT id, category_id, name, tagline, description, image, base_price::text, nutrients_count, badge
FROM combos
WHERE $1 = '' OR category_id = $1
ORDER BY position ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		r.logger.Error("list combos", zap.String("category_id", categoryID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var (
		result []domain.Combo
		ids    []string
	)
	for rows.Next() {
		c, err := scanCombo(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return result, nil
	}

	lines, err := r.comboIngredients(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Ingredients = lines[result[i].ID]
	}
	r.logger.Debug("listed combos", zap.String("category_id", categoryID), zap.Int("count", len(result)))
	return result, nil
}

func (r *PostgresRepo) GetCombo(ctx context.Context, id string) (*domain.Combo, error) {
	const q = `
SELECT id, category_id, name, tagline, description, image, base_price::text, nutrients_count, badge
FROM combos
WHERE id = $1
`
	c, err := scanCombo(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get combo", zap.String("combo_id", id), zap.Error(err))
		return nil, err
	}
	lines, err := r.comboIngredients(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	c.Ingredients = lines[id]
	return &c, nil
}

func (r *PostgresRepo) ListAlternatives(ctx context.Context, ingredientID string) ([]domain.Ingredient, error) {
	const q = `
SELECT i.id, i.name, i.unit_amount, i.unit, i.unit_price::text, i.image, i.benefit
FROM ingredient_alternatives a
JOIN ingredients i ON i.id = a.alternative_id
WHERE a.ingredient_id = $1
ORDER BY a.position ASC, i.name ASC
`
	rows, err := r.pool.Query(ctx, q, ingredientID)
	if err != nil {
		r.logger.Error("list alternatives", zap.String("ingredient_id", ingredientID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Ingredient{}
	for rows.Next() {
		var (
			in    domain.Ingredient
			price string
		)
		if err := rows.Scan(&in.ID, &in.Name, &in.UnitAmount, &in.Unit, &price, &in.Image, &in.Benefit); err != nil {
			return nil, err
		}
		if in.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("ingredient %s price: %w", in.ID, err)
		}
		in.DefaultQuantity = 1
		result = append(result, in)
	}
	return result, rows.Err()
}

func (r *PostgresRepo) comboIngredients(ctx context.Context, comboIDs []string) (map[string][]domain.Ingredient, error) {
	const q = `
SELECT ci.combo_id, i.id, i.name, i.unit_amount, i.unit, i.unit_price::text, ci.default_quantity, i.image, i.benefit
FROM combo_ingredients ci
JOIN ingredients i ON i.id = ci.ingredient_id
WHERE ci.combo_id = ANY($1)
ORDER BY ci.combo_id, ci.position ASC
`
	rows, err := r.pool.Query(ctx, q, comboIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.Ingredient, len(comboIDs))
	for rows.Next() {
		var (
			comboID string
			in      domain.Ingredient
			price   string
		)
		if err := rows.Scan(&comboID, &in.ID, &in.Name, &in.UnitAmount, &in.Unit, &price, &in.DefaultQuantity, &in.Image, &in.Benefit); err != nil {
			return nil, err
		}
		if in.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("ingredient %s price: %w", in.ID, err)
		}
		out[comboID] = append(out[comboID], in)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) UpsertCategory(ctx context.Context, c domain.Category) error {
	const q = `
INSERT INTO categories (id, name, description, image, position)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    image = EXCLUDED.image,
    position = EXCLUDED.position
`
	if _, err := r.pool.Exec(ctx, q, c.ID, c.Name, c.Description, c.Image, c.Position); err != nil {
		r.logger.Error("upsert category", zap.String("category_id", c.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *PostgresRepo) UpsertIngredient(ctx context.Context, in domain.Ingredient) error {
	return upsertIngredient(ctx, r.pool, in)
}

// UpsertCombo writes the combo, its ingredients and their order in one transaction.
// Ingredient lines no longer listed on the combo are dropped.
func (r *PostgresRepo) UpsertCombo(ctx context.Context, c domain.Combo) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO combos (id, category_id, name, tagline, description, image, base_price, nutrients_count, badge, position)
VALUES ($1, $2, $3, $4, $5, $6, $7::text::numeric, $8, $9,
        COALESCE((SELECT position FROM combos WHERE id = $1), (SELECT COUNT(*) FROM combos)))
ON CONFLICT (id) DO UPDATE
SET category_id = EXCLUDED.category_id,
    name = EXCLUDED.name,
    tagline = EXCLUDED.tagline,
    description = EXCLUDED.description,
    image = EXCLUDED.image,
    base_price = EXCLUDED.base_price,
    nutrients_count = EXCLUDED.nutrients_count,
    badge = EXCLUDED.badge
`, c.ID, c.CategoryID, c.Name, c.Tagline, c.Description, c.Image, c.BasePrice.String(), c.NutrientsCount, c.Badge); err != nil {
		r.logger.Error("upsert combo", zap.String("combo_id", c.ID), zap.Error(err))
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM combo_ingredients WHERE combo_id = $1`, c.ID); err != nil {
		return err
	}
	for pos, in := range c.Ingredients {
		if err := upsertIngredient(ctx, tx, in); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO combo_ingredients (combo_id, ingredient_id, default_quantity, position)
VALUES ($1, $2, $3, $4)
`, c.ID, in.ID, in.DefaultQuantity, pos); err != nil {
			return fmt.Errorf("link ingredient %s to combo %s: %w", in.ID, c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Debug("upserted combo", zap.String("combo_id", c.ID), zap.Int("ingredients", len(c.Ingredients)))
	return nil
}

// SetAlternatives replaces the substitute list of an ingredient, keeping the given order.
func (r *PostgresRepo) SetAlternatives(ctx context.Context, ingredientID string, alternativeIDs []string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ingredient_alternatives WHERE ingredient_id = $1`, ingredientID); err != nil {
		return err
	}
	for pos, altID := range alternativeIDs {
		if _, err := tx.Exec(ctx, `
INSERT INTO ingredient_alternatives (ingredient_id, alternative_id, position)
VALUES ($1, $2, $3)
`, ingredientID, altID, pos); err != nil {
			return fmt.Errorf("alternative %s for %s: %w", altID, ingredientID, err)
		}
	}
	return tx.Commit(ctx)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertIngredient(ctx context.Context, db execer, in domain.Ingredient) error {
	const q = `
INSERT INTO ingredients (id, name, unit_amount, unit, unit_price, image, benefit)
VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    unit_amount = EXCLUDED.unit_amount,
    unit = EXCLUDED.unit,
    unit_price = EXCLUDED.unit_price,
    image = EXCLUDED.image,
    benefit = EXCLUDED.benefit
`
	if _, err := db.Exec(ctx, q, in.ID, in.Name, in.UnitAmount, in.Unit, in.UnitPrice.String(), in.Image, in.Benefit); err != nil {
		return fmt.Errorf("upsert ingredient %s: %w", in.ID, err)
	}
	return nil
}

func scanCombo(row pgx.Row) (domain.Combo, error) {
	var (
		c     domain.Combo
		price string
	)
	if err := row.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Tagline, &c.Description, &c.Image, &price, &c.NutrientsCount, &c.Badge); err != nil {
		return domain.Combo{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Combo{}, fmt.Errorf("combo %s price: %w", c.ID, err)
	}
	c.BasePrice = d
	return c, nil
}
