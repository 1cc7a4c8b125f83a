package cart

import (
	"context"
	"fmt"
	"testing"

	"restaurant-ordering/internal/domain"
	cartrepo "restaurant-ordering/internal/repository/cart"

	"github.com/cucumber/godog"
)

type cartTestContext struct {
	snapshots cartrepo.SnapshotStore
	store     *Store
	menu      map[string]domain.MenuItem
	last      Notification
}

func (c *cartTestContext) reset() {
	c.snapshots = cartrepo.NewMemory()
	c.store = Load(context.Background(), c.snapshots, Key("feature"), nil)
	c.menu = make(map[string]domain.MenuItem)
	c.last = Notification{}
}

func (c *cartTestContext) anEmptyCart() error {
	if !c.store.IsEmpty() {
		return fmt.Errorf("expected empty cart")
	}
	return nil
}

func (c *cartTestContext) theMenuHasItem(id, name, price string) error {
	cents, err := domain.ParseCents(price)
	if err != nil {
		return err
	}
	c.menu[id] = domain.MenuItem{ID: id, Name: name, PriceCents: cents}
	return nil
}

func (c *cartTestContext) iAdd(id string) error {
	item, ok := c.menu[id]
	if !ok {
		return fmt.Errorf("unknown menu item %q", id)
	}
	c.last = c.store.AddItem(context.Background(), item)
	return nil
}

func (c *cartTestContext) iSetTheQuantityOf(id string, qty int) error {
	c.last = c.store.UpdateQuantity(context.Background(), id, qty)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.last = c.store.Clear(context.Background())
	return nil
}

func (c *cartTestContext) iReloadTheCart() error {
	c.store = Load(context.Background(), c.snapshots, Key("feature"), nil)
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if got := len(c.store.Lines()); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) lineHasQuantity(id string, qty int) error {
	for _, l := range c.store.Lines() {
		if l.ItemID == id {
			if l.Quantity != qty {
				return fmt.Errorf("line %s: expected quantity %d, got %d", id, qty, l.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for %s", id)
}

func (c *cartTestContext) theSubtotalIs(amount string) error {
	if got := domain.FormatCents(c.store.Subtotal()); got != amount {
		return fmt.Errorf("expected subtotal %s, got %s", amount, got)
	}
	return nil
}

func (c *cartTestContext) theItemCountIs(n int) error {
	if got := c.store.ItemCount(); got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theLastNotificationIs(title string) error {
	if c.last.Title != title {
		return fmt.Errorf("expected notification %q, got %q", title, c.last.Title)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the menu has item "([^"]*)" named "([^"]*)" priced ([\d.]+)$`, tc.theMenuHasItem)

	ctx.Step(`^I add "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOf)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^I reload the cart$`, tc.iReloadTheCart)

	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^line "([^"]*)" has quantity (\d+)$`, tc.lineHasQuantity)
	ctx.Step(`^the subtotal is ([\d.]+)$`, tc.theSubtotalIs)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^the last notification is "([^"]*)"$`, tc.theLastNotificationIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
