package order

import (
	"context"

	"restaurant-ordering/internal/domain"
)

// Repository persists order headers. Insert returns domain.ErrAlreadyExists
// when the order number is taken.
type Repository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Insert(ctx context.Context, o domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id string, o domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// LineRepository persists the lines of an order as one batch.
type LineRepository interface {
	ListByOrder(ctx context.Context, orderID string) ([]domain.OrderLine, error)
	InsertMany(ctx context.Context, lines []domain.OrderLine) ([]domain.OrderLine, error)
}
