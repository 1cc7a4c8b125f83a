package seed

import (
	"context"
	"fmt"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	"go.uber.org/zap"
)

type categoryStore interface {
	List(ctx context.Context) ([]domain.MenuCategory, error)
	Insert(ctx context.Context, c domain.MenuCategory) (*domain.MenuCategory, error)
}

type itemStore interface {
	Insert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

type promotionStore interface {
	Insert(ctx context.Context, p domain.Promotion) (*domain.Promotion, error)
}

type Targets struct {
	Categories categoryStore
	Items      itemStore
	Promotions promotionStore
}

// Apply loads the house menu into an empty database. It does nothing when
// any category already exists.
func Apply(ctx context.Context, t Targets, logger *zap.Logger) error {
	logger = logging.OrNop(logger)
	existing, err := t.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("seed skipped, menu already present", zap.Int("categories", len(existing)))
		return nil
	}

	now := time.Now().UTC()
	ids := make(map[string]string)
	for _, c := range Categories() {
		key := c.ID
		c.ID = ""
		c.CreatedAt, c.UpdatedAt = now, now
		saved, err := t.Categories.Insert(ctx, c)
		if err != nil {
			return fmt.Errorf("insert category %s: %w", key, err)
		}
		ids[key] = saved.ID
	}

	for _, item := range MenuItems() {
		key := item.ID
		item.ID = ""
		item.CategoryID = ids[item.CategoryID]
		item.CreatedAt, item.UpdatedAt = now, now
		if _, err := t.Items.Insert(ctx, item); err != nil {
			return fmt.Errorf("insert menu item %s: %w", key, err)
		}
	}

	for _, p := range Promotions() {
		key := p.ID
		p.ID = ""
		p.CreatedAt, p.UpdatedAt = now, now
		if _, err := t.Promotions.Insert(ctx, p); err != nil {
			return fmt.Errorf("insert promotion %s: %w", key, err)
		}
	}

	logger.Info("seed applied",
		zap.Int("categories", len(ids)),
		zap.Int("items", len(MenuItems())),
		zap.Int("promotions", len(Promotions())),
	)
	return nil
}
