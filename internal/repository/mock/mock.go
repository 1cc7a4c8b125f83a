// Package mock is the guaranteed-success store used when the primary
// database is unavailable. Writes are acknowledged with synthetic
// "mock-<uuid>" ids and nothing is kept; reads return no rows.
package mock

import (
	"context"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Table acknowledges writes for one entity type. stamp assigns the id to a
// value.
type Table[T any] struct {
	name   string
	stamp  func(v T, id string) T
	logger *zap.Logger
}

func NewTable[T any](name string, stamp func(v T, id string) T, logger *zap.Logger) *Table[T] {
	return &Table[T]{name: name, stamp: stamp, logger: logging.OrNop(logger)}
}

// NewID returns a synthetic identifier.
func NewID() string {
	return "mock-" + uuid.NewString()
}

func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	t.logger.Info("mock store: select", zap.String("table", t.name))
	return []T{}, nil
}

func (t *Table[T]) Insert(ctx context.Context, v T) (*T, error) {
	out := t.stamp(v, NewID())
	t.logger.Info("mock store: insert", zap.String("table", t.name))
	return &out, nil
}

func (t *Table[T]) InsertMany(ctx context.Context, vs []T) ([]T, error) {
	out := make([]T, 0, len(vs))
	for _, v := range vs {
		out = append(out, t.stamp(v, NewID()))
	}
	t.logger.Info("mock store: insert", zap.String("table", t.name), zap.Int("rows", len(vs)))
	return out, nil
}

func (t *Table[T]) Update(ctx context.Context, id string, v T) (*T, error) {
	out := t.stamp(v, id)
	t.logger.Info("mock store: update", zap.String("table", t.name), zap.String("id", id))
	return &out, nil
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	t.logger.Info("mock store: delete", zap.String("table", t.name), zap.String("id", id))
	return nil
}

func NewMenuItems(logger *zap.Logger) *Table[domain.MenuItem] {
	return NewTable("menu_items", func(v domain.MenuItem, id string) domain.MenuItem { v.ID = id; return v }, logger)
}

func NewCategories(logger *zap.Logger) *Table[domain.MenuCategory] {
	return NewTable("menu_categories", func(v domain.MenuCategory, id string) domain.MenuCategory { v.ID = id; return v }, logger)
}

func NewPromotions(logger *zap.Logger) *Table[domain.Promotion] {
	return NewTable("promotions", func(v domain.Promotion, id string) domain.Promotion { v.ID = id; return v }, logger)
}

func NewOrders(logger *zap.Logger) *Table[domain.Order] {
	return NewTable("orders", func(v domain.Order, id string) domain.Order { v.ID = id; return v }, logger)
}

func NewFeedback(logger *zap.Logger) *Table[domain.Feedback] {
	return NewTable("feedback", func(v domain.Feedback, id string) domain.Feedback { v.ID = id; return v }, logger)
}

// OrderLines is the mock order_items table.
type OrderLines struct {
	*Table[domain.OrderLine]
}

func NewOrderLines(logger *zap.Logger) OrderLines {
	return OrderLines{NewTable("order_items", func(v domain.OrderLine, id string) domain.OrderLine { v.ID = id; return v }, logger)}
}

func (l OrderLines) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	return l.List(ctx)
}
