package seed

import (
	"context"
	"fmt"
	"testing"

	"restaurant-ordering/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCategories struct {
	rows []domain.MenuCategory
}

func (m *memCategories) List(context.Context) ([]domain.MenuCategory, error) { return m.rows, nil }

func (m *memCategories) Insert(_ context.Context, c domain.MenuCategory) (*domain.MenuCategory, error) {
	c.ID = fmt.Sprintf("cat-%d", len(m.rows)+1)
	m.rows = append(m.rows, c)
	return &c, nil
}

type memItems struct{ rows []domain.MenuItem }

func (m *memItems) Insert(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	m.rows = append(m.rows, item)
	return &item, nil
}

type memPromotions struct{ rows []domain.Promotion }

func (m *memPromotions) Insert(_ context.Context, p domain.Promotion) (*domain.Promotion, error) {
	m.rows = append(m.rows, p)
	return &p, nil
}

func TestApplyLinksItemsToInsertedCategories(t *testing.T) {
	cats, items, promos := &memCategories{}, &memItems{}, &memPromotions{}

	require.NoError(t, Apply(context.Background(), Targets{Categories: cats, Items: items, Promotions: promos}, nil))

	require.Len(t, cats.rows, 3)
	require.Len(t, items.rows, len(MenuItems()))
	assert.Len(t, promos.rows, 3)
	assert.Equal(t, "cat-1", items.rows[0].CategoryID)
	assert.Empty(t, items.rows[0].ID, "ids are assigned by the store")
}

func TestApplyIsNoOpWhenSeeded(t *testing.T) {
	cats := &memCategories{rows: []domain.MenuCategory{{ID: "x", Name: "Existing"}}}
	items := &memItems{}

	require.NoError(t, Apply(context.Background(), Targets{Categories: cats, Items: items, Promotions: &memPromotions{}}, nil))

	assert.Empty(t, items.rows)
}

func TestHouseMenuPrices(t *testing.T) {
	byID := make(map[string]domain.MenuItem)
	for _, item := range MenuItems() {
		byID[item.ID] = item
	}
	assert.Equal(t, int64(1099), byID["p1"].PriceCents)
	require.NotNil(t, byID["p2"].Promotion)
	assert.Equal(t, int64(1104), *byID["p2"].Promotion.NewPriceCents)
	assert.Equal(t, int64(100), *byID["s1"].Promotion.DiscountAmountCents)
}
