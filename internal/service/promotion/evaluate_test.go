package promotion

import (
	"testing"
	"time"

	"restaurant-ordering/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsActiveWindow(t *testing.T) {
	end := date(2023, 6, 30)
	p := domain.Promotion{Active: true, StartDate: date(2023, 5, 1), EndDate: &end}

	cases := []struct {
		now  time.Time
		want bool
	}{
		{date(2023, 6, 1), true},
		{date(2023, 7, 1), false},
		{date(2023, 4, 30), false},
		{date(2023, 5, 1), true},
		{time.Date(2023, 6, 30, 23, 59, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		if got := IsActive(p, tc.now); got != tc.want {
			t.Fatalf("IsActive(%s) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestIsActiveRequiresFlag(t *testing.T) {
	p := domain.Promotion{Active: false, StartDate: date(2023, 5, 1)}
	if IsActive(p, date(2023, 6, 1)) {
		t.Fatalf("inactive promotion reported active")
	}
	if got := StatusAt(p, date(2023, 6, 1)); got != StatusInactive {
		t.Fatalf("unexpected status %s", got)
	}
}

func TestOpenEndedPromotion(t *testing.T) {
	p := domain.Promotion{Active: true, StartDate: date(2023, 5, 1)}
	if !IsActive(p, date(2030, 1, 1)) {
		t.Fatalf("open-ended promotion should stay active")
	}
	if got := StatusAt(p, date(2023, 4, 1)); got != StatusUpcoming {
		t.Fatalf("expected upcoming, got %s", got)
	}
}

func TestIsActiveUsesLocalCalendarDate(t *testing.T) {
	end := date(2023, 6, 30)
	p := domain.Promotion{Active: true, StartDate: date(2023, 5, 1), EndDate: &end}
	tz := time.FixedZone("UTC-5", -5*3600)
	// 21:00 on June 30 local is already July 1 in UTC.
	if !IsActive(p, time.Date(2023, 6, 30, 21, 0, 0, 0, tz)) {
		t.Fatalf("expected promotion active on local June 30")
	}
	if got := StatusAt(p, date(2023, 7, 1)); got != StatusExpired {
		t.Fatalf("expected expired, got %s", got)
	}
}

func ptrInt(v int64) *int64       { return &v }
func ptrFloat(v float64) *float64 { return &v }

func TestPriceFor(t *testing.T) {
	cases := []struct {
		name       string
		promo      *domain.ItemPromotion
		discounted *int64
		badge      string
	}{
		{"no promotion", nil, nil, ""},
		{"inactive", &domain.ItemPromotion{Active: false, NewPriceCents: ptrInt(999)}, nil, ""},
		{"percentage", &domain.ItemPromotion{Active: true, DiscountPercentage: ptrFloat(15), NewPriceCents: ptrInt(1104)}, ptrInt(1104), "-15%"},
		{"fractional percentage", &domain.ItemPromotion{Active: true, DiscountPercentage: ptrFloat(12.5)}, nil, "-12.5%"},
		{"amount", &domain.ItemPromotion{Active: true, DiscountAmountCents: ptrInt(200), NewPriceCents: ptrInt(1099)}, ptrInt(1099), "-$2.00"},
		{"sale", &domain.ItemPromotion{Active: true, NewPriceCents: ptrInt(1000)}, ptrInt(1000), "Sale"},
		{"free item", &domain.ItemPromotion{Active: true, NewPriceCents: ptrInt(0)}, ptrInt(0), "Sale"},
		{"new price not below regular", &domain.ItemPromotion{Active: true, NewPriceCents: ptrInt(1299)}, nil, "Sale"},
		{"zero percentage falls through", &domain.ItemPromotion{Active: true, DiscountPercentage: ptrFloat(0), DiscountAmountCents: ptrInt(150)}, nil, "-$1.50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PriceFor(domain.MenuItem{PriceCents: 1299, Promotion: tc.promo})
			if got.PriceCents != 1299 {
				t.Fatalf("regular price changed: %d", got.PriceCents)
			}
			if (got.DiscountedPriceCents == nil) != (tc.discounted == nil) {
				t.Fatalf("discounted = %v, want %v", got.DiscountedPriceCents, tc.discounted)
			}
			if tc.discounted != nil && *got.DiscountedPriceCents != *tc.discounted {
				t.Fatalf("discounted = %d, want %d", *got.DiscountedPriceCents, *tc.discounted)
			}
			if got.Badge != tc.badge {
				t.Fatalf("badge = %q, want %q", got.Badge, tc.badge)
			}
		})
	}
}
