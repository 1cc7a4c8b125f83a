package seed

import (
	"time"

	"restaurant-ordering/internal/domain"

	"github.com/shopspring/decimal"
)

func price(s string) int64 {
	return domain.CentsFromDecimal(decimal.RequireFromString(s))
}

func priceRef(s string) *int64 {
	v := price(s)
	return &v
}

func pct(v float64) *float64 {
	return &v
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayRef(s string) *time.Time {
	t := day(s)
	return &t
}

// Categories returns the house menu sections. IDs double as stable keys.
func Categories() []domain.MenuCategory {
	return []domain.MenuCategory{
		{ID: "pizza", Name: "Pizzas", Description: "Hand-tossed pizzas baked in our stone oven", SortOrder: 1},
		{ID: "sides", Name: "Sides", SortOrder: 2},
		{ID: "drinks", Name: "Drinks", SortOrder: 3},
	}
}

// MenuItems returns the house menu. CategoryID refers to Categories ids.
func MenuItems() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "p1", Name: "Margherita", Description: "Classic tomato sauce, mozzarella, and fresh basil", PriceCents: price("10.99"), ImageURL: "/pizza-margherita.jpg", CategoryID: "pizza", Vegetarian: true, Popular: true, Available: true},
		{ID: "p2", Name: "Pepperoni", Description: "Tomato sauce, mozzarella, and spicy pepperoni", PriceCents: price("12.99"), ImageURL: "/pizza-pepperoni.jpg", CategoryID: "pizza", Popular: true, Available: true,
			Promotion: &domain.ItemPromotion{Active: true, DiscountPercentage: pct(15), NewPriceCents: priceRef("11.04")}},
		{ID: "p3", Name: "Supreme", Description: "Tomato sauce, mozzarella, pepperoni, sausage, bell peppers, onions, and olives", PriceCents: price("14.99"), ImageURL: "/pizza-supreme.jpg", CategoryID: "pizza", Available: true},
		{ID: "p4", Name: "Vegetarian", Description: "Tomato sauce, mozzarella, bell peppers, mushrooms, onions, and olives", PriceCents: price("13.99"), ImageURL: "/pizza-vegetarian.jpg", CategoryID: "pizza", Vegetarian: true, Available: true},
		{ID: "p5", Name: "Hawaiian", Description: "Tomato sauce, mozzarella, ham, and pineapple", PriceCents: price("13.99"), ImageURL: "/pizza-hawaiian.jpg", CategoryID: "pizza", Available: true},
		{ID: "p6", Name: "Buffalo Chicken", Description: "Buffalo sauce, mozzarella, grilled chicken, and ranch drizzle", PriceCents: price("15.99"), ImageURL: "/pizza-buffalo.jpg", CategoryID: "pizza", Spicy: true, Available: true},
		{ID: "s1", Name: "Garlic Knots", Description: "Freshly baked, twisted dough with garlic butter and herbs", PriceCents: price("5.99"), ImageURL: "/garlic-knots.jpg", CategoryID: "sides", Vegetarian: true, Available: true,
			Promotion: &domain.ItemPromotion{Active: true, DiscountAmountCents: priceRef("1"), NewPriceCents: priceRef("4.99")}},
		{ID: "s2", Name: "Cheese Sticks", Description: "Breadsticks topped with mozzarella, served with marinara sauce", PriceCents: price("6.99"), ImageURL: "/cheese-sticks.jpg", CategoryID: "sides", Vegetarian: true, Available: true},
		{ID: "s3", Name: "Chicken Wings", Description: "8 pieces of crispy chicken wings with your choice of sauce", PriceCents: price("9.99"), ImageURL: "/chicken-wings.jpg", CategoryID: "sides", Available: true},
		{ID: "d1", Name: "Soda", Description: "20oz bottle of your choice of soda", PriceCents: price("2.49"), ImageURL: "/soda.jpg", CategoryID: "drinks", Vegetarian: true, Available: true},
		{ID: "d2", Name: "Bottled Water", Description: "16oz bottle of purified water", PriceCents: price("1.99"), ImageURL: "/water.jpg", CategoryID: "drinks", Vegetarian: true, Available: true},
		{ID: "d3", Name: "Iced Tea", Description: "20oz bottle of unsweetened iced tea", PriceCents: price("2.49"), ImageURL: "/iced-tea.jpg", CategoryID: "drinks", Vegetarian: true, Available: true},
	}
}

func Promotions() []domain.Promotion {
	return []domain.Promotion{
		{ID: "promo1", Title: "2 Medium Pizzas for $20", Description: "Get two medium 1-topping pizzas for just $20. Valid for takeaway or delivery.", ImageURL: "/promotion-2-pizzas.jpg", StartDate: day("2023-05-01"), EndDate: dayRef("2023-06-30"), Active: true},
		{ID: "promo2", Title: "Free Garlic Knots", Description: "Spend $25 or more and get a free order of garlic knots. Limited time offer!", ImageURL: "/promotion-garlic-knots.jpg", StartDate: day("2023-05-15"), EndDate: dayRef("2023-06-15"), Active: true},
		{ID: "promo3", Title: "Lunch Special: Pizza + Drink $9.99", Description: "Valid Monday-Friday from 11am to 3pm. Choose any small pizza and a fountain drink.", ImageURL: "/promotion-lunch.jpg", StartDate: day("2023-05-01"), EndDate: dayRef("2023-12-31"), Active: true},
	}
}
