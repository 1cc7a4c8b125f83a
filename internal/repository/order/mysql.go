package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"restaurant-ordering/internal/db"
	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type mysqlRow struct {
	ID               string         `db:"id"`
	OrderNumber      string         `db:"order_number"`
	CustomerName     string         `db:"customer_name"`
	CustomerPhone    string         `db:"customer_phone"`
	CustomerEmail    sql.NullString `db:"customer_email"`
	OrderType        string         `db:"order_type"`
	DeliveryAddress  sql.NullString `db:"delivery_address"`
	PaymentMethod    string         `db:"payment_method"`
	Notes            sql.NullString `db:"notes"`
	SubtotalCents    int64          `db:"subtotal_cents"`
	DeliveryFeeCents int64          `db:"delivery_fee_cents"`
	TotalCents       int64          `db:"total_cents"`
	Status           string         `db:"status"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r mysqlRow) toDomain() domain.Order {
	return domain.Order{
		ID:               r.ID,
		OrderNumber:      r.OrderNumber,
		CustomerName:     r.CustomerName,
		CustomerPhone:    r.CustomerPhone,
		CustomerEmail:    r.CustomerEmail.String,
		OrderType:        domain.OrderType(r.OrderType),
		DeliveryAddress:  r.DeliveryAddress.String,
		PaymentMethod:    domain.PaymentMethod(r.PaymentMethod),
		Notes:            r.Notes.String,
		SubtotalCents:    r.SubtotalCents,
		DeliveryFeeCents: r.DeliveryFeeCents,
		TotalCents:       r.TotalCents,
		Status:           domain.OrderStatus(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type mysqlRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMySQL(db *sqlx.DB, logger *zap.Logger) Repository {
	return &mysqlRepo{db: db, logger: logging.OrNop(logger)}
}

func (r *mysqlRepo) List(ctx context.Context) ([]domain.Order, error) {
	var rows []mysqlRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM orders ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *mysqlRepo) Insert(ctx context.Context, in domain.Order) (*domain.Order, error) {
	in.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (id, order_number, customer_name, customer_phone, customer_email, order_type, delivery_address,
                    payment_method, notes, subtotal_cents, delivery_fee_cents, total_cents, status, created_at, updated_at)
VALUES (?, ?, ?, ?, NULLIF(?, ''), ?, NULLIF(?, ''), ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?)`,
		in.ID, in.OrderNumber, in.CustomerName, in.CustomerPhone, in.CustomerEmail, string(in.OrderType), in.DeliveryAddress,
		string(in.PaymentMethod), in.Notes, in.SubtotalCents, in.DeliveryFeeCents, in.TotalCents, string(in.Status),
		in.CreatedAt, in.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Debug("order mysql repo: insert failed", zap.String("order_number", in.OrderNumber), zap.Error(err))
		return nil, err
	}
	return r.get(ctx, in.ID)
}

func (r *mysqlRepo) Update(ctx context.Context, id string, in domain.Order) (*domain.Order, error) {
	_, err := r.db.ExecContext(ctx, `
UPDATE orders
SET customer_name = ?, customer_phone = ?, customer_email = NULLIF(?, ''), delivery_address = NULLIF(?, ''),
    notes = NULLIF(?, ''), status = ?, updated_at = ?
WHERE id = ?`,
		in.CustomerName, in.CustomerPhone, in.CustomerEmail, in.DeliveryAddress, in.Notes, string(in.Status), in.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

func (r *mysqlRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mysqlRepo) get(ctx context.Context, id string) (*domain.Order, error) {
	var row mysqlRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM orders WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o := row.toDomain()
	return &o, nil
}

type mysqlLineRow struct {
	ID             string `db:"id"`
	OrderID        string `db:"order_id"`
	ItemID         string `db:"item_id"`
	ItemName       string `db:"item_name"`
	Quantity       int    `db:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents"`
	LineTotalCents int64  `db:"line_total_cents"`
}

type mysqlLineRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMySQLLines(db *sqlx.DB, logger *zap.Logger) LineRepository {
	return &mysqlLineRepo{db: db, logger: logging.OrNop(logger)}
}

func (r *mysqlLineRepo) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	var rows []mysqlLineRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM order_items WHERE order_id = ? ORDER BY item_name ASC`, orderID); err != nil {
		return nil, err
	}
	out := make([]domain.OrderLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.OrderLine(row))
	}
	return out, nil
}

func (r *mysqlLineRepo) InsertMany(ctx context.Context, lines []domain.OrderLine) ([]domain.OrderLine, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		l.ID = uuid.NewString()
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO order_items (id, order_id, item_id, item_name, quantity, unit_price_cents, line_total_cents)
VALUES (:id, :order_id, :item_id, :item_name, :quantity, :unit_price_cents, :line_total_cents)`, mysqlLineRow(l)); err != nil {
			r.logger.Debug("order line mysql repo: insert failed", zap.String("order_id", l.OrderID), zap.Error(err))
			return nil, err
		}
		out = append(out, l)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}
