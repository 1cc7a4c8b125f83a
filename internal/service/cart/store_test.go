package cart

import (
	"context"
	"errors"
	"testing"

	"restaurant-ordering/internal/domain"
	cartrepo "restaurant-ordering/internal/repository/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	margherita = domain.MenuItem{ID: "p1", Name: "Margherita", PriceCents: 1099}
	pepperoni  = domain.MenuItem{ID: "p2", Name: "Pepperoni", PriceCents: 1299}
)

type failingSnapshots struct {
	getErr  error
	setErr  error
	sets    int
	payload []byte
}

func (f *failingSnapshots) Get(context.Context, string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.payload, nil
}

func (f *failingSnapshots) Set(context.Context, string, []byte) error {
	f.sets++
	return f.setErr
}

func (f *failingSnapshots) Delete(context.Context, string) error { return nil }

func newStore(t *testing.T) (*Store, cartrepo.SnapshotStore) {
	t.Helper()
	snaps := cartrepo.NewMemory()
	return Load(context.Background(), snaps, Key("s1"), nil), snaps
}

func TestAddItemSameIDAccumulatesOneLine(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	for i := 0; i < 5; i++ {
		s.AddItem(ctx, margherita)
	}

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, int64(5*1099), s.Subtotal())
	assert.Equal(t, 5, s.ItemCount())
}

func TestAddItemNotifications(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	n := s.AddItem(ctx, margherita)
	assert.Equal(t, KindItemAdded, n.Kind)
	assert.Equal(t, "Margherita added to your cart", n.Description)

	n = s.AddItem(ctx, margherita)
	assert.Equal(t, KindQuantityUpdated, n.Kind)
	assert.Equal(t, "Margherita quantity increased to 2", n.Description)
}

func TestAddItemUsesRegularPrice(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	promo := int64(1104)
	item := pepperoni
	item.Promotion = &domain.ItemPromotion{Active: true, NewPriceCents: &promo}

	s.AddItem(ctx, item)

	assert.Equal(t, int64(1299), s.Subtotal())
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		ctx := context.Background()
		s, _ := newStore(t)
		s.AddItem(ctx, margherita)
		s.AddItem(ctx, pepperoni)

		n := s.UpdateQuantity(ctx, "p1", qty)

		assert.Equal(t, KindItemRemoved, n.Kind, "qty %d", qty)
		require.Len(t, s.Lines(), 1)
		assert.Equal(t, "p2", s.Lines()[0].ItemID)
	}
}

func TestUpdateQuantitySetsNotAdds(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	s.AddItem(ctx, margherita)
	s.AddItem(ctx, margherita)

	n := s.UpdateQuantity(ctx, "p1", 3)

	assert.True(t, n.IsZero())
	assert.Equal(t, 3, s.Lines()[0].Quantity)
	assert.Equal(t, int64(3*1099), s.Subtotal())
}

func TestMissingItemIsNoOp(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	s.AddItem(ctx, margherita)

	assert.True(t, s.RemoveItem(ctx, "nope").IsZero())
	assert.True(t, s.UpdateQuantity(ctx, "nope", 4).IsZero())
	assert.Equal(t, 1, s.ItemCount())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	s.AddItem(ctx, margherita)

	n := s.Clear(ctx)

	assert.Equal(t, KindCartCleared, n.Kind)
	assert.True(t, s.IsEmpty())
	assert.Zero(t, s.Subtotal())
}

func TestSnapshotSurvivesReload(t *testing.T) {
	ctx := context.Background()
	s, snaps := newStore(t)
	s.AddItem(ctx, margherita)
	s.AddItem(ctx, pepperoni)
	s.UpdateQuantity(ctx, "p2", 3)

	reloaded := Load(ctx, snaps, Key("s1"), nil)

	assert.Equal(t, s.Lines(), reloaded.Lines())
	assert.Equal(t, int64(1099+3*1299), reloaded.Subtotal())
}

func TestCorruptSnapshotIsEmptyCart(t *testing.T) {
	ctx := context.Background()
	snaps := cartrepo.NewMemory()
	require.NoError(t, snaps.Set(ctx, Key("s1"), []byte("{not json")))

	s := Load(ctx, snaps, Key("s1"), nil)

	assert.True(t, s.IsEmpty())
}

func TestUnreadableStoreIsEmptyCart(t *testing.T) {
	s := Load(context.Background(), &failingSnapshots{getErr: errors.New("disk gone")}, Key("s1"), nil)
	assert.True(t, s.IsEmpty())
}

func TestSnapshotWriteFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	snaps := &failingSnapshots{getErr: domain.ErrNotFound, setErr: errors.New("quota exceeded")}
	s := Load(ctx, snaps, Key("s1"), nil)

	n := s.AddItem(ctx, margherita)

	assert.Equal(t, KindItemAdded, n.Kind)
	assert.Equal(t, 1, snaps.sets)
	assert.Equal(t, 1, s.ItemCount())
}

func TestLoadDropsInvalidLines(t *testing.T) {
	ctx := context.Background()
	snaps := cartrepo.NewMemory()
	raw := `[{"id":"p1","name":"Margherita","priceCents":1099,"quantity":1},{"id":"p1","quantity":4},{"id":"","quantity":1},{"id":"p2","quantity":0}]`
	require.NoError(t, snaps.Set(ctx, Key("s1"), []byte(raw)))

	s := Load(ctx, snaps, Key("s1"), nil)

	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 1, s.ItemCount())
}
