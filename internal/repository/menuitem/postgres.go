package menuitem

import (
	"context"
	"errors"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const selectColumns = `id::text, name, COALESCE(description, ''), price_cents, COALESCE(image_url, ''), COALESCE(category_id::text, ''),
       vegetarian, spicy, popular, available,
       promo_active, promo_discount_percentage, promo_discount_amount_cents, promo_new_price_cents,
       created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	q := `SELECT ` + selectColumns + `
FROM menu_items
ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Debug("menu item repo: list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("menu item repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) Insert(ctx context.Context, in domain.MenuItem) (*domain.MenuItem, error) {
	q := `
INSERT INTO menu_items (name, description, price_cents, image_url, category_id, vegetarian, spicy, popular, available,
                        promo_active, promo_discount_percentage, promo_discount_amount_cents, promo_new_price_cents,
                        created_at, updated_at)
VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, '')::uuid, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + selectColumns
	p := promoColumns(in.Promotion)
	item, err := scanItem(r.pool.QueryRow(ctx, q,
		in.Name, in.Description, in.PriceCents, in.ImageURL, in.CategoryID,
		in.Vegetarian, in.Spicy, in.Popular, in.Available,
		p.active, p.pct, p.amount, p.price,
		in.CreatedAt, in.UpdatedAt,
	))
	if err != nil {
		r.logger.Debug("menu item repo: insert failed", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("menu item repo: inserted", zap.String("id", item.ID))
	return &item, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in domain.MenuItem) (*domain.MenuItem, error) {
	q := `
UPDATE menu_items
SET name = $2,
    description = NULLIF($3, ''),
    price_cents = $4,
    image_url = NULLIF($5, ''),
    category_id = NULLIF($6, '')::uuid,
    vegetarian = $7,
    spicy = $8,
    popular = $9,
    available = $10,
    promo_active = $11,
    promo_discount_percentage = $12,
    promo_discount_amount_cents = $13,
    promo_new_price_cents = $14,
    updated_at = $15
WHERE id = $1::uuid
RETURNING ` + selectColumns
	p := promoColumns(in.Promotion)
	item, err := scanItem(r.pool.QueryRow(ctx, q, id,
		in.Name, in.Description, in.PriceCents, in.ImageURL, in.CategoryID,
		in.Vegetarian, in.Spicy, in.Popular, in.Available,
		p.active, p.pct, p.amount, p.price,
		in.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Debug("menu item repo: update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (domain.MenuItem, error) {
	var item domain.MenuItem
	var p promoArgs
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.PriceCents, &item.ImageURL, &item.CategoryID,
		&item.Vegetarian, &item.Spicy, &item.Popular, &item.Available,
		&p.active, &p.pct, &p.amount, &p.price,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return domain.MenuItem{}, err
	}
	item.Promotion = p.promotion()
	return item, nil
}
