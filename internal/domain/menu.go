package domain

import "time"

// ItemPromotion is the discount descriptor attached to a menu item.
// DiscountPercentage and DiscountAmountCents are display hints only;
// NewPriceCents is the price actually shown.
type ItemPromotion struct {
	Active              bool     `json:"active"`
	DiscountPercentage  *float64 `json:"discountPercentage,omitempty"`
	DiscountAmountCents *int64   `json:"discountAmountCents,omitempty"`
	NewPriceCents       *int64   `json:"newPriceCents,omitempty"`
}

type MenuItem struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	PriceCents  int64          `json:"priceCents"`
	ImageURL    string         `json:"image,omitempty"`
	CategoryID  string         `json:"categoryId,omitempty"`
	Vegetarian  bool           `json:"vegetarian"`
	Spicy       bool           `json:"spicy"`
	Popular     bool           `json:"popular"`
	Available   bool           `json:"available"`
	Promotion   *ItemPromotion `json:"promotion,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type MenuCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
