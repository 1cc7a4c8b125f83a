// Package menu serves the public catalogue and the admin operations on menu
// items and categories.
package menu

import (
	"context"
	"fmt"
	"sort"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/fallback"
	"restaurant-ordering/internal/logging"
	"restaurant-ordering/internal/service/promotion"

	"go.uber.org/zap"
)

type itemStore interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Insert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, id string, item domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type categoryStore interface {
	List(ctx context.Context) ([]domain.MenuCategory, error)
	Insert(ctx context.Context, c domain.MenuCategory) (*domain.MenuCategory, error)
	Update(ctx context.Context, id string, c domain.MenuCategory) (*domain.MenuCategory, error)
	Delete(ctx context.Context, id string) error
}

// Stores is one backend for the menu tables.
type Stores struct {
	Items      itemStore
	Categories categoryStore
}

// Reads answer catalogue queries when the primary store fails. Nil fields
// use the secondary store.
type Reads struct {
	Items      func(ctx context.Context) ([]domain.MenuItem, error)
	Categories func(ctx context.Context) ([]domain.MenuCategory, error)
}

type Service struct {
	primary  Stores
	fallback Stores
	reads    Reads
	logger   *zap.Logger
	now      func() time.Time
}

func New(primary, secondary Stores, reads Reads, logger *zap.Logger) *Service {
	if reads.Items == nil {
		reads.Items = secondary.Items.List
	}
	if reads.Categories == nil {
		reads.Categories = secondary.Categories.List
	}
	return &Service{primary: primary, fallback: secondary, reads: reads, logger: logging.OrNop(logger), now: time.Now}
}

// ItemView is a menu item with its display price.
type ItemView struct {
	domain.MenuItem
	Price promotion.Display `json:"price"`
}

type Section struct {
	Category domain.MenuCategory `json:"category"`
	Items    []ItemView          `json:"items"`
}

type Catalogue struct {
	Sections []Section `json:"sections"`
	Degraded bool      `json:"degraded"`
}

// otherCategory collects available items whose category is unknown.
var otherCategory = domain.MenuCategory{ID: "", Name: "Other"}

func view(item domain.MenuItem) ItemView {
	return ItemView{MenuItem: item, Price: promotion.PriceFor(item)}
}

func (s *Service) listItems(ctx context.Context) fallback.Result[[]domain.MenuItem] {
	return fallback.Run(ctx, s.logger, "menu_items.list", s.primary.Items.List, s.reads.Items)
}

func (s *Service) listCategories(ctx context.Context) fallback.Result[[]domain.MenuCategory] {
	return fallback.Run(ctx, s.logger, "menu_categories.list", s.primary.Categories.List, s.reads.Categories)
}

// Catalogue groups available items by category in menu order, items by
// name within a category.
func (s *Service) Catalogue(ctx context.Context) (*Catalogue, error) {
	items := s.listItems(ctx)
	if items.Err != nil {
		return nil, items.Err
	}
	cats := s.listCategories(ctx)
	if cats.Err != nil {
		return nil, cats.Err
	}

	categories := append([]domain.MenuCategory(nil), cats.Value...)
	domain.SortCategories(categories)

	byCategory := make(map[string][]ItemView)
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	for _, item := range items.Value {
		if !item.Available {
			continue
		}
		key := item.CategoryID
		if !known[key] {
			key = otherCategory.ID
		}
		byCategory[key] = append(byCategory[key], view(item))
	}

	out := &Catalogue{Degraded: items.Degraded || cats.Degraded}
	appendSection := func(c domain.MenuCategory) {
		views := byCategory[c.ID]
		if len(views) == 0 {
			return
		}
		sort.SliceStable(views, func(i, j int) bool { return views[i].Name < views[j].Name })
		out.Sections = append(out.Sections, Section{Category: c, Items: views})
	}
	for _, c := range categories {
		appendSection(c)
	}
	if !known[otherCategory.ID] {
		appendSection(otherCategory)
	}
	return out, nil
}

// Items lists every menu item, available or not.
func (s *Service) Items(ctx context.Context) ([]ItemView, error) {
	res := s.listItems(ctx)
	if res.Err != nil {
		return nil, res.Err
	}
	out := make([]ItemView, 0, len(res.Value))
	for _, item := range res.Value {
		out = append(out, view(item))
	}
	return out, nil
}

func (s *Service) Item(ctx context.Context, id string) (*ItemView, error) {
	res := s.listItems(ctx)
	if res.Err != nil {
		return nil, res.Err
	}
	for _, item := range res.Value {
		if item.ID == id {
			v := view(item)
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Orderable returns the item a shopper may add to the cart.
func (s *Service) Orderable(ctx context.Context, id string) (*domain.MenuItem, error) {
	v, err := s.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.Available {
		return nil, domain.NewValidationError("item unavailable")
	}
	return &v.MenuItem, nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.MenuCategory, error) {
	res := s.listCategories(ctx)
	if res.Err != nil {
		return nil, res.Err
	}
	out := append([]domain.MenuCategory(nil), res.Value...)
	domain.SortCategories(out)
	return out, nil
}

func (s *Service) CreateItem(ctx context.Context, in ItemInput) (*domain.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := in.toDomain()
	item.CreatedAt = s.now().UTC()
	item.UpdatedAt = item.CreatedAt
	res := fallback.Run(ctx, s.logger, "menu_items.insert",
		func(ctx context.Context) (*domain.MenuItem, error) { return s.primary.Items.Insert(ctx, item) },
		func(ctx context.Context) (*domain.MenuItem, error) { return s.fallback.Items.Insert(ctx, item) },
	)
	if res.Err != nil {
		return nil, fmt.Errorf("create menu item: %w", res.Err)
	}
	return res.Value, nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, in ItemInput) (*domain.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := in.toDomain()
	item.UpdatedAt = s.now().UTC()
	res := fallback.Run(ctx, s.logger, "menu_items.update",
		func(ctx context.Context) (*domain.MenuItem, error) { return s.primary.Items.Update(ctx, id, item) },
		func(ctx context.Context) (*domain.MenuItem, error) { return s.fallback.Items.Update(ctx, id, item) },
	)
	if res.Err != nil {
		return nil, fmt.Errorf("update menu item: %w", res.Err)
	}
	return res.Value, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	res := fallback.Exec(ctx, s.logger, "menu_items.delete",
		func(ctx context.Context) error { return s.primary.Items.Delete(ctx, id) },
		func(ctx context.Context) error { return s.fallback.Items.Delete(ctx, id) },
	)
	if res.Err != nil {
		return fmt.Errorf("delete menu item: %w", res.Err)
	}
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*domain.MenuCategory, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := in.toDomain()
	c.CreatedAt = s.now().UTC()
	c.UpdatedAt = c.CreatedAt
	res := fallback.Run(ctx, s.logger, "menu_categories.insert",
		func(ctx context.Context) (*domain.MenuCategory, error) { return s.primary.Categories.Insert(ctx, c) },
		func(ctx context.Context) (*domain.MenuCategory, error) { return s.fallback.Categories.Insert(ctx, c) },
	)
	if res.Err != nil {
		return nil, fmt.Errorf("create category: %w", res.Err)
	}
	return res.Value, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.MenuCategory, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := in.toDomain()
	c.UpdatedAt = s.now().UTC()
	res := fallback.Run(ctx, s.logger, "menu_categories.update",
		func(ctx context.Context) (*domain.MenuCategory, error) { return s.primary.Categories.Update(ctx, id, c) },
		func(ctx context.Context) (*domain.MenuCategory, error) { return s.fallback.Categories.Update(ctx, id, c) },
	)
	if res.Err != nil {
		return nil, fmt.Errorf("update category: %w", res.Err)
	}
	return res.Value, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	res := fallback.Exec(ctx, s.logger, "menu_categories.delete",
		func(ctx context.Context) error { return s.primary.Categories.Delete(ctx, id) },
		func(ctx context.Context) error { return s.fallback.Categories.Delete(ctx, id) },
	)
	if res.Err != nil {
		return fmt.Errorf("delete category: %w", res.Err)
	}
	return nil
}
