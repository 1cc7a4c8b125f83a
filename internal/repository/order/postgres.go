package order

import (
	"context"
	"errors"

	"restaurant-ordering/internal/db"
	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const headerColumns = `id::text, order_number, customer_name, customer_phone, COALESCE(customer_email, ''), order_type,
       COALESCE(delivery_address, ''), payment_method, COALESCE(notes, ''), subtotal_cents, delivery_fee_cents,
       total_cents, status, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+headerColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Insert(ctx context.Context, in domain.Order) (*domain.Order, error) {
	q := `
INSERT INTO orders (order_number, customer_name, customer_phone, customer_email, order_type, delivery_address,
                    payment_method, notes, subtotal_cents, delivery_fee_cents, total_cents, status, created_at, updated_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14)
RETURNING ` + headerColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q,
		in.OrderNumber, in.CustomerName, in.CustomerPhone, in.CustomerEmail, string(in.OrderType), in.DeliveryAddress,
		string(in.PaymentMethod), in.Notes, in.SubtotalCents, in.DeliveryFeeCents, in.TotalCents, string(in.Status),
		in.CreatedAt, in.UpdatedAt))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Debug("order repo: insert failed", zap.String("order_number", in.OrderNumber), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("order repo: inserted", zap.String("id", o.ID), zap.String("order_number", o.OrderNumber))
	return &o, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in domain.Order) (*domain.Order, error) {
	q := `
UPDATE orders
SET customer_name = $2,
    customer_phone = $3,
    customer_email = NULLIF($4, ''),
    delivery_address = NULLIF($5, ''),
    notes = NULLIF($6, ''),
    status = $7,
    updated_at = $8
WHERE id = $1::uuid
RETURNING ` + headerColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id,
		in.CustomerName, in.CustomerPhone, in.CustomerEmail, in.DeliveryAddress, in.Notes, string(in.Status), in.UpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var orderType, payment, status string
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &orderType,
		&o.DeliveryAddress, &payment, &o.Notes, &o.SubtotalCents, &o.DeliveryFeeCents,
		&o.TotalCents, &status, &o.CreatedAt, &o.UpdatedAt)
	o.OrderType = domain.OrderType(orderType)
	o.PaymentMethod = domain.PaymentMethod(payment)
	o.Status = domain.OrderStatus(status)
	return o, err
}

type postgresLineRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresLines(pool *pgxpool.Pool, logger *zap.Logger) LineRepository {
	return &postgresLineRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresLineRepo) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT id::text, order_id::text, item_id, item_name, quantity, unit_price_cents, line_total_cents
FROM order_items
WHERE order_id = $1::uuid
ORDER BY item_name ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.ItemName, &l.Quantity, &l.UnitPriceCents, &l.LineTotalCents); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *postgresLineRepo) InsertMany(ctx context.Context, lines []domain.OrderLine) ([]domain.OrderLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO order_items (order_id, item_id, item_name, quantity, unit_price_cents, line_total_cents)
VALUES ($1::uuid, $2, $3, $4, $5, $6)
RETURNING id::text
`
	out := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		if err := tx.QueryRow(ctx, q, l.OrderID, l.ItemID, l.ItemName, l.Quantity, l.UnitPriceCents, l.LineTotalCents).Scan(&l.ID); err != nil {
			r.logger.Debug("order line repo: insert failed", zap.String("order_id", l.OrderID), zap.Error(err))
			return nil, err
		}
		out = append(out, l)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}
