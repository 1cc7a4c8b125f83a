package feedback

import (
	"context"

	"restaurant-ordering/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Feedback, error)
	Insert(ctx context.Context, f domain.Feedback) (*domain.Feedback, error)
	Update(ctx context.Context, id string, f domain.Feedback) (*domain.Feedback, error)
	Delete(ctx context.Context, id string) error
}
