package promotion

import (
	"context"

	"restaurant-ordering/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	Insert(ctx context.Context, p domain.Promotion) (*domain.Promotion, error)
	Update(ctx context.Context, id string, p domain.Promotion) (*domain.Promotion, error)
	Delete(ctx context.Context, id string) error
}
