package feedback

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
	Email       string         `db:"email"`
	Rating      int            `db:"rating"`
	OrderNumber sql.NullString `db:"order_number"`
	Message     string         `db:"feedback"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r mysqlRow) toDomain() domain.Feedback {
	return domain.Feedback{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Rating:      r.Rating,
		OrderNumber: r.OrderNumber.String,
		Message:     r.Message,
		CreatedAt:   r.CreatedAt,
	}
}

type mysqlRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMySQL(db *sqlx.DB, logger *zap.Logger) Repository {
	return &mysqlRepo{db: db, logger: logging.OrNop(logger)}
}

func (r *mysqlRepo) List(ctx context.Context) ([]domain.Feedback, error) {
	var rows []mysqlRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM feedback ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	out := make([]domain.Feedback, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *mysqlRepo) Insert(ctx context.Context, in domain.Feedback) (*domain.Feedback, error) {
	in.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback (id, name, email, rating, order_number, feedback, created_at) VALUES (?, ?, ?, ?, NULLIF(?, ''), ?, ?)`,
		in.ID, in.Name, in.Email, in.Rating, in.OrderNumber, in.Message, in.CreatedAt)
	if err != nil {
		r.logger.Debug("feedback mysql repo: insert failed", zap.Error(err))
		return nil, err
	}
	return &in, nil
}

func (r *mysqlRepo) Update(ctx context.Context, id string, in domain.Feedback) (*domain.Feedback, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE feedback SET name = ?, email = ?, rating = ?, order_number = NULLIF(?, ''), feedback = ? WHERE id = ?`,
		in.Name, in.Email, in.Rating, in.OrderNumber, in.Message, id); err != nil {
		return nil, err
	}
	var row mysqlRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM feedback WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	f := row.toDomain()
	return &f, nil
}

func (r *mysqlRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
