// Package promotion decides which promotions are running and what price a
// menu item is shown at.
package promotion

import (
	"strconv"
	"time"

	"restaurant-ordering/internal/domain"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusUpcoming Status = "upcoming"
	StatusExpired  Status = "expired"
)

// civil truncates t to its calendar date in its own location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StatusAt classifies p on the calendar date of now. Start and end dates
// are inclusive; a nil end date never expires.
func StatusAt(p domain.Promotion, now time.Time) Status {
	if !p.Active {
		return StatusInactive
	}
	today := civil(now)
	if today.Before(civil(p.StartDate)) {
		return StatusUpcoming
	}
	if p.EndDate != nil && today.After(civil(*p.EndDate)) {
		return StatusExpired
	}
	return StatusActive
}

func IsActive(p domain.Promotion, now time.Time) bool {
	return StatusAt(p, now) == StatusActive
}

// Display is the price presentation of a menu item.
type Display struct {
	PriceCents           int64  `json:"priceCents"`
	DiscountedPriceCents *int64 `json:"discountedPriceCents,omitempty"`
	Badge                string `json:"badge,omitempty"`
}

// PriceFor returns the display price of item. The discounted price is the
// stored new price when it undercuts the regular one, zero included;
// percentage and amount only feed the badge.
func PriceFor(item domain.MenuItem) Display {
	d := Display{PriceCents: item.PriceCents}
	p := item.Promotion
	if p == nil || !p.Active {
		return d
	}
	if p.NewPriceCents != nil && *p.NewPriceCents >= 0 && *p.NewPriceCents < item.PriceCents {
		v := *p.NewPriceCents
		d.DiscountedPriceCents = &v
	}
	switch {
	case p.DiscountPercentage != nil && *p.DiscountPercentage != 0:
		d.Badge = "-" + strconv.FormatFloat(*p.DiscountPercentage, 'f', -1, 64) + "%"
	case p.DiscountAmountCents != nil && *p.DiscountAmountCents != 0:
		d.Badge = "-$" + domain.FormatCents(*p.DiscountAmountCents)
	default:
		d.Badge = "Sale"
	}
	return d
}
