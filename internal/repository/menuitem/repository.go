package menuitem

import (
	"context"

	"restaurant-ordering/internal/domain"
)

// Repository is the four-operation contract for the menu_items table.
type Repository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Insert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, id string, item domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type promoArgs struct {
	active *bool
	pct    *float64
	amount *int64
	price  *int64
}

func promoColumns(p *domain.ItemPromotion) promoArgs {
	if p == nil {
		return promoArgs{}
	}
	active := p.Active
	return promoArgs{active: &active, pct: p.DiscountPercentage, amount: p.DiscountAmountCents, price: p.NewPriceCents}
}

func (a promoArgs) promotion() *domain.ItemPromotion {
	if a.active == nil {
		return nil
	}
	return &domain.ItemPromotion{
		Active:              *a.active,
		DiscountPercentage:  a.pct,
		DiscountAmountCents: a.amount,
		NewPriceCents:       a.price,
	}
}
