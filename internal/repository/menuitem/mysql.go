package menuitem

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
	ID                 string          `db:"id"`
	Name               string          `db:"name"`
	Description        sql.NullString  `db:"description"`
	PriceCents         int64           `db:"price_cents"`
	ImageURL           sql.NullString  `db:"image_url"`
	CategoryID         sql.NullString  `db:"category_id"`
	Vegetarian         bool            `db:"vegetarian"`
	Spicy              bool            `db:"spicy"`
	Popular            bool            `db:"popular"`
	Available          bool            `db:"available"`
	PromoActive        sql.NullBool    `db:"promo_active"`
	PromoPercentage    sql.NullFloat64 `db:"promo_discount_percentage"`
	PromoAmountCents   sql.NullInt64   `db:"promo_discount_amount_cents"`
	PromoNewPriceCents sql.NullInt64   `db:"promo_new_price_cents"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

func (r mysqlRow) toDomain() domain.MenuItem {
	item := domain.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		PriceCents:  r.PriceCents,
		ImageURL:    r.ImageURL.String,
		CategoryID:  r.CategoryID.String,
		Vegetarian:  r.Vegetarian,
		Spicy:       r.Spicy,
		Popular:     r.Popular,
		Available:   r.Available,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.PromoActive.Valid {
		p := promoArgs{active: &r.PromoActive.Bool}
		if r.PromoPercentage.Valid {
			p.pct = &r.PromoPercentage.Float64
		}
		if r.PromoAmountCents.Valid {
			p.amount = &r.PromoAmountCents.Int64
		}
		if r.PromoNewPriceCents.Valid {
			p.price = &r.PromoNewPriceCents.Int64
		}
		item.Promotion = p.promotion()
	}
	return item
}

type mysqlRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewMySQL returns the direct SQL store implementation.
func NewMySQL(db *sqlx.DB, logger *zap.Logger) Repository {
	return &mysqlRepo{db: db, logger: logging.OrNop(logger)}
}

func (r *mysqlRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	var rows []mysqlRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM menu_items ORDER BY name ASC`); err != nil {
		r.logger.Debug("menu item mysql repo: list failed", zap.Error(err))
		return nil, err
	}
	out := make([]domain.MenuItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *mysqlRepo) Insert(ctx context.Context, in domain.MenuItem) (*domain.MenuItem, error) {
	in.ID = uuid.NewString()
	p := promoColumns(in.Promotion)
	_, err := r.db.ExecContext(ctx, `
INSERT INTO menu_items (id, name, description, price_cents, image_url, category_id, vegetarian, spicy, popular, available,
                        promo_active, promo_discount_percentage, promo_discount_amount_cents, promo_new_price_cents,
                        created_at, updated_at)
VALUES (?, ?, NULLIF(?, ''), ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Description, in.PriceCents, in.ImageURL, in.CategoryID,
		in.Vegetarian, in.Spicy, in.Popular, in.Available,
		p.active, p.pct, p.amount, p.price,
		in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		r.logger.Debug("menu item mysql repo: insert failed", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	return r.get(ctx, in.ID)
}

func (r *mysqlRepo) Update(ctx context.Context, id string, in domain.MenuItem) (*domain.MenuItem, error) {
	p := promoColumns(in.Promotion)
	res, err := r.db.ExecContext(ctx, `
UPDATE menu_items
SET name = ?, description = NULLIF(?, ''), price_cents = ?, image_url = NULLIF(?, ''), category_id = NULLIF(?, ''),
    vegetarian = ?, spicy = ?, popular = ?, available = ?,
    promo_active = ?, promo_discount_percentage = ?, promo_discount_amount_cents = ?, promo_new_price_cents = ?,
    updated_at = ?
WHERE id = ?`,
		in.Name, in.Description, in.PriceCents, in.ImageURL, in.CategoryID,
		in.Vegetarian, in.Spicy, in.Popular, in.Available,
		p.active, p.pct, p.amount, p.price,
		in.UpdatedAt, id,
	)
	if err != nil {
		return nil, err
	}
	// RowsAffected is 0 for unchanged rows on mysql; get reports missing ids.
	_ = res
	return r.get(ctx, id)
}

func (r *mysqlRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mysqlRepo) get(ctx context.Context, id string) (*domain.MenuItem, error) {
	var row mysqlRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM menu_items WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	item := row.toDomain()
	return &item, nil
}
