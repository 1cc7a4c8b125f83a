package category

import (
	"context"
	"errors"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.MenuCategory, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), sort_order, created_at, updated_at
FROM menu_categories
ORDER BY sort_order ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuCategory
	for rows.Next() {
		var c domain.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("category repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) Insert(ctx context.Context, c domain.MenuCategory) (*domain.MenuCategory, error) {
	const q = `
INSERT INTO menu_categories (name, description, sort_order, created_at, updated_at)
VALUES ($1, NULLIF($2, ''), $3, $4, $5)
RETURNING id::text, created_at, updated_at
`
	out := c
	if err := r.pool.QueryRow(ctx, q, c.Name, c.Description, c.SortOrder, c.CreatedAt, c.UpdatedAt).
		Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt); err != nil {
		r.logger.Debug("category repo: insert failed", zap.String("name", c.Name), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, c domain.MenuCategory) (*domain.MenuCategory, error) {
	const q = `
UPDATE menu_categories
SET name = $2,
    description = NULLIF($3, ''),
    sort_order = $4,
    updated_at = $5
WHERE id = $1::uuid
RETURNING id::text, created_at, updated_at
`
	out := c
	err := r.pool.QueryRow(ctx, q, id, c.Name, c.Description, c.SortOrder, c.UpdatedAt).
		Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM menu_categories WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
