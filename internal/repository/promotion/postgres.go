package promotion

import (
	"context"
	"errors"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const selectColumns = `id::text, title, COALESCE(description, ''), COALESCE(image_url, ''), start_date, end_date, active,
       discount_percentage, discount_amount_cents, new_price_cents, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Promotion, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM promotions ORDER BY start_date DESC, title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("promotion repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) Insert(ctx context.Context, in domain.Promotion) (*domain.Promotion, error) {
	q := `
INSERT INTO promotions (title, description, image_url, start_date, end_date, active,
                        discount_percentage, discount_amount_cents, new_price_cents, created_at, updated_at)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + selectColumns
	p, err := scanPromotion(r.pool.QueryRow(ctx, q,
		in.Title, in.Description, in.ImageURL, in.StartDate, in.EndDate, in.Active,
		in.DiscountPercentage, in.DiscountAmountCents, in.NewPriceCents, in.CreatedAt, in.UpdatedAt))
	if err != nil {
		r.logger.Debug("promotion repo: insert failed", zap.String("title", in.Title), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in domain.Promotion) (*domain.Promotion, error) {
	q := `
UPDATE promotions
SET title = $2,
    description = NULLIF($3, ''),
    image_url = NULLIF($4, ''),
    start_date = $5,
    end_date = $6,
    active = $7,
    discount_percentage = $8,
    discount_amount_cents = $9,
    new_price_cents = $10,
    updated_at = $11
WHERE id = $1::uuid
RETURNING ` + selectColumns
	p, err := scanPromotion(r.pool.QueryRow(ctx, q, id,
		in.Title, in.Description, in.ImageURL, in.StartDate, in.EndDate, in.Active,
		in.DiscountPercentage, in.DiscountAmountCents, in.NewPriceCents, in.UpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM promotions WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPromotion(row pgx.Row) (domain.Promotion, error) {
	var p domain.Promotion
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.StartDate, &p.EndDate, &p.Active,
		&p.DiscountPercentage, &p.DiscountAmountCents, &p.NewPriceCents, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
