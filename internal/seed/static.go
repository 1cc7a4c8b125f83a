package seed

import (
	"context"

	"restaurant-ordering/internal/domain"
)

// Static serves the house menu from memory. It backs catalogue reads when
// the database cannot answer.
type Static struct{}

func (Static) MenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return MenuItems(), nil
}

func (Static) Categories(ctx context.Context) ([]domain.MenuCategory, error) {
	return Categories(), nil
}

func (Static) Promotions(ctx context.Context) ([]domain.Promotion, error) {
	return Promotions(), nil
}
