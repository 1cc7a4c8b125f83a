package menu

import (
	"strings"

	"restaurant-ordering/internal/domain"

	"github.com/shopspring/decimal"
)

// PromotionInput is the discount block of the item form. Amounts are in
// currency units, e.g. 11.04.
type PromotionInput struct {
	Active             bool             `json:"active"`
	DiscountPercentage *float64         `json:"discountPercentage"`
	DiscountAmount     *decimal.Decimal `json:"discountAmount"`
	NewPrice           *decimal.Decimal `json:"newPrice"`
}

type ItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image"`
	CategoryID  string          `json:"categoryId"`
	Vegetarian  bool            `json:"vegetarian"`
	Spicy       bool            `json:"spicy"`
	Popular     bool            `json:"popular"`
	Available   *bool           `json:"available"`
	Promotion   *PromotionInput `json:"promotion"`
}

func (in ItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name required")
	}
	if in.Price.IsNegative() {
		return domain.NewValidationError("price must not be negative")
	}
	if p := in.Promotion; p != nil {
		if p.DiscountPercentage != nil && (*p.DiscountPercentage < 0 || *p.DiscountPercentage > 100) {
			return domain.NewValidationError("discount percentage out of range")
		}
		if p.DiscountAmount != nil && p.DiscountAmount.IsNegative() {
			return domain.NewValidationError("discount amount must not be negative")
		}
		if p.NewPrice != nil && p.NewPrice.IsNegative() {
			return domain.NewValidationError("promotion price must not be negative")
		}
	}
	return nil
}

func (in ItemInput) toDomain() domain.MenuItem {
	item := domain.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceCents:  domain.CentsFromDecimal(in.Price),
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		Vegetarian:  in.Vegetarian,
		Spicy:       in.Spicy,
		Popular:     in.Popular,
		Available:   true,
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if p := in.Promotion; p != nil {
		promo := &domain.ItemPromotion{Active: p.Active, DiscountPercentage: p.DiscountPercentage}
		if p.DiscountAmount != nil {
			v := domain.CentsFromDecimal(*p.DiscountAmount)
			promo.DiscountAmountCents = &v
		}
		if p.NewPrice != nil {
			v := domain.CentsFromDecimal(*p.NewPrice)
			promo.NewPriceCents = &v
		}
		item.Promotion = promo
	}
	return item
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

func (in CategoryInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name required")
	}
	return nil
}

func (in CategoryInput) toDomain() domain.MenuCategory {
	return domain.MenuCategory{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		SortOrder:   in.SortOrder,
	}
}
