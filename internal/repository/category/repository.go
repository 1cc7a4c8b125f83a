package category

import (
	"context"

	"restaurant-ordering/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.MenuCategory, error)
	Insert(ctx context.Context, c domain.MenuCategory) (*domain.MenuCategory, error)
	Update(ctx context.Context, id string, c domain.MenuCategory) (*domain.MenuCategory, error)
	Delete(ctx context.Context, id string) error
}
