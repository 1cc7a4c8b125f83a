package feedback

import (
	"context"
	"errors"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const selectColumns = `id::text, name, email, rating, COALESCE(order_number, ''), feedback, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Feedback, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Rating, &f.OrderNumber, &f.Message, &f.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Insert(ctx context.Context, in domain.Feedback) (*domain.Feedback, error) {
	const q = `
INSERT INTO feedback (name, email, rating, order_number, feedback, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
RETURNING id::text
`
	out := in
	if err := r.pool.QueryRow(ctx, q, in.Name, in.Email, in.Rating, in.OrderNumber, in.Message, in.CreatedAt).Scan(&out.ID); err != nil {
		r.logger.Debug("feedback repo: insert failed", zap.Error(err))
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in domain.Feedback) (*domain.Feedback, error) {
	const q = `
UPDATE feedback
SET name = $2, email = $3, rating = $4, order_number = NULLIF($5, ''), feedback = $6
WHERE id = $1::uuid
RETURNING ` + selectColumns
	var f domain.Feedback
	err := r.pool.QueryRow(ctx, q, id, in.Name, in.Email, in.Rating, in.OrderNumber, in.Message).
		Scan(&f.ID, &f.Name, &f.Email, &f.Rating, &f.OrderNumber, &f.Message, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
