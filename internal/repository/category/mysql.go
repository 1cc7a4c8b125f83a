package category

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
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	SortOrder   int            `db:"sort_order"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r mysqlRow) toDomain() domain.MenuCategory {
	return domain.MenuCategory{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		SortOrder:   r.SortOrder,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type mysqlRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMySQL(db *sqlx.DB, logger *zap.Logger) Repository {
	return &mysqlRepo{db: db, logger: logging.OrNop(logger)}
}

func (r *mysqlRepo) List(ctx context.Context) ([]domain.MenuCategory, error) {
	var rows []mysqlRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM menu_categories ORDER BY sort_order ASC, name ASC`); err != nil {
		return nil, err
	}
	out := make([]domain.MenuCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *mysqlRepo) Insert(ctx context.Context, c domain.MenuCategory) (*domain.MenuCategory, error) {
	c.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO menu_categories (id, name, description, sort_order, created_at, updated_at) VALUES (?, ?, NULLIF(?, ''), ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.SortOrder, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		r.logger.Debug("category mysql repo: insert failed", zap.String("name", c.Name), zap.Error(err))
		return nil, err
	}
	return r.get(ctx, c.ID)
}

func (r *mysqlRepo) Update(ctx context.Context, id string, c domain.MenuCategory) (*domain.MenuCategory, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE menu_categories SET name = ?, description = NULLIF(?, ''), sort_order = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Description, c.SortOrder, c.UpdatedAt, id); err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

func (r *mysqlRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mysqlRepo) get(ctx context.Context, id string) (*domain.MenuCategory, error) {
	var row mysqlRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM menu_categories WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c := row.toDomain()
	return &c, nil
}
