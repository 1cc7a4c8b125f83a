package promotion

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type mysqlRow struct {
	ID                  string          `db:"id"`
	Title               string          `db:"title"`
	Description         sql.NullString  `db:"description"`
	ImageURL            sql.NullString  `db:"image_url"`
	StartDate           time.Time       `db:"start_date"`
	EndDate             sql.NullTime    `db:"end_date"`
	Active              bool            `db:"active"`
	DiscountPercentage  sql.NullFloat64 `db:"discount_percentage"`
	DiscountAmountCents sql.NullInt64   `db:"discount_amount_cents"`
	NewPriceCents       sql.NullInt64   `db:"new_price_cents"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

func (r mysqlRow) toDomain() domain.Promotion {
	p := domain.Promotion{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description.String,
		ImageURL:    r.ImageURL.String,
		StartDate:   r.StartDate,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.EndDate.Valid {
		p.EndDate = &r.EndDate.Time
	}
	if r.DiscountPercentage.Valid {
		p.DiscountPercentage = &r.DiscountPercentage.Float64
	}
	if r.DiscountAmountCents.Valid {
		p.DiscountAmountCents = &r.DiscountAmountCents.Int64
	}
	if r.NewPriceCents.Valid {
		p.NewPriceCents = &r.NewPriceCents.Int64
	}
	return p
}

type mysqlRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMySQL(db *sqlx.DB, logger *zap.Logger) Repository {
	return &mysqlRepo{db: db, logger: logging.OrNop(logger)}
}

func (r *mysqlRepo) List(ctx context.Context) ([]domain.Promotion, error) {
	var rows []mysqlRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM promotions ORDER BY start_date DESC, title ASC`); err != nil {
		return nil, err
	}
	out := make([]domain.Promotion, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *mysqlRepo) Insert(ctx context.Context, in domain.Promotion) (*domain.Promotion, error) {
	in.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO promotions (id, title, description, image_url, start_date, end_date, active,
                        discount_percentage, discount_amount_cents, new_price_cents, created_at, updated_at)
VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.ImageURL, in.StartDate, in.EndDate, in.Active,
		in.DiscountPercentage, in.DiscountAmountCents, in.NewPriceCents, in.CreatedAt, in.UpdatedAt)
	if err != nil {
		r.logger.Debug("promotion mysql repo: insert failed", zap.String("title", in.Title), zap.Error(err))
		return nil, err
	}
	return r.get(ctx, in.ID)
}

func (r *mysqlRepo) Update(ctx context.Context, id string, in domain.Promotion) (*domain.Promotion, error) {
	_, err := r.db.ExecContext(ctx, `
UPDATE promotions
SET title = ?, description = NULLIF(?, ''), image_url = NULLIF(?, ''), start_date = ?, end_date = ?, active = ?,
    discount_percentage = ?, discount_amount_cents = ?, new_price_cents = ?, updated_at = ?
WHERE id = ?`,
		in.Title, in.Description, in.ImageURL, in.StartDate, in.EndDate, in.Active,
		in.DiscountPercentage, in.DiscountAmountCents, in.NewPriceCents, in.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

func (r *mysqlRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mysqlRepo) get(ctx context.Context, id string) (*domain.Promotion, error) {
	var row mysqlRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM promotions WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p := row.toDomain()
	return &p, nil
}
