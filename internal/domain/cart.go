package domain

// CartLine is a snapshot of a menu item plus the chosen quantity.
type CartLine struct {
	ItemID     string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	ImageURL   string `json:"image,omitempty"`
	Quantity   int    `json:"quantity"`
}

// TotalCents is PriceCents * Quantity.
func (l CartLine) TotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}
