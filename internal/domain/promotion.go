package domain

import "time"

type Promotion struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	ImageURL            string     `json:"image,omitempty"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	Active              bool       `json:"active"`
	DiscountPercentage  *float64   `json:"discountPercentage,omitempty"`
	DiscountAmountCents *int64     `json:"discountAmountCents,omitempty"`
	NewPriceCents       *int64     `json:"newPriceCents,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
