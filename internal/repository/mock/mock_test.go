package mock

import (
	"context"
	"strings"
	"testing"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/repository/category"
	"restaurant-ordering/internal/repository/feedback"
	"restaurant-ordering/internal/repository/menuitem"
	"restaurant-ordering/internal/repository/order"
	"restaurant-ordering/internal/repository/promotion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ menuitem.Repository  = NewMenuItems(nil)
	_ category.Repository  = NewCategories(nil)
	_ promotion.Repository = NewPromotions(nil)
	_ order.Repository     = NewOrders(nil)
	_ order.LineRepository = NewOrderLines(nil)
	_ feedback.Repository  = NewFeedback(nil)
)

func TestInsertAssignsMockID(t *testing.T) {
	orders := NewOrders(nil)
	got, err := orders.Insert(context.Background(), domain.Order{OrderNumber: "0042"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.ID, "mock-"))
	assert.Equal(t, "0042", got.OrderNumber)
}

func TestInsertManyAssignsDistinctIDs(t *testing.T) {
	lines := NewOrderLines(nil)
	got, err := lines.InsertMany(context.Background(), []domain.OrderLine{
		{OrderID: "o1", ItemID: "p1"},
		{OrderID: "o1", ItemID: "p2"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Equal(t, "o1", got[1].OrderID)
}

func TestReadsAreEmptyAndWritesSucceed(t *testing.T) {
	ctx := context.Background()
	items := NewMenuItems(nil)

	list, err := items.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	updated, err := items.Update(ctx, "p9", domain.MenuItem{Name: "Calzone"})
	require.NoError(t, err)
	assert.Equal(t, "p9", updated.ID)
	assert.NoError(t, items.Delete(ctx, "missing"))
}
