// Package cart holds the shopper's cart: its lines, derived totals, and the
// snapshot written to durable storage after every mutation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"
	cartrepo "restaurant-ordering/internal/repository/cart"

	"go.uber.org/zap"
)

// StorageKey is the fixed application key snapshots are stored under.
const StorageKey = "pizzaliciousCart"

// Key returns the snapshot key for a cart session.
func Key(session string) string {
	return StorageKey + ":" + session
}

type NotificationKind string

const (
	KindItemAdded       NotificationKind = "item_added"
	KindQuantityUpdated NotificationKind = "quantity_updated"
	KindItemRemoved     NotificationKind = "item_removed"
	KindCartCleared     NotificationKind = "cart_cleared"
)

// Notification describes a mutation for the shopper. The zero value means
// nothing happened.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}

func (n Notification) IsZero() bool {
	return n.Kind == ""
}

// Store is one cart. It is not safe for concurrent use; Manager serialises
// access per session.
type Store struct {
	key       string
	snapshots cartrepo.SnapshotStore
	logger    *zap.Logger
	lines     []domain.CartLine
}

// Load reads the snapshot stored under key. A missing or unreadable
// snapshot yields an empty cart.
func Load(ctx context.Context, snapshots cartrepo.SnapshotStore, key string, logger *zap.Logger) *Store {
	s := &Store{key: key, snapshots: snapshots, logger: logging.OrNop(logger)}
	raw, err := snapshots.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("cart: load snapshot failed", zap.String("key", key), zap.Error(err))
		}
		return s
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.logger.Warn("cart: corrupt snapshot ignored", zap.String("key", key), zap.Error(err))
		return s
	}
	s.lines = sanitize(lines)
	return s
}

// sanitize drops lines a well-behaved writer would never produce.
func sanitize(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.ItemID == "" || l.Quantity < 1 || seen[l.ItemID] {
			continue
		}
		seen[l.ItemID] = true
		out = append(out, l)
	}
	return out
}

func (s *Store) Key() string {
	return s.key
}

// AddItem adds one unit of item at its regular price.
func (s *Store) AddItem(ctx context.Context, item domain.MenuItem) Notification {
	var n Notification
	if i := s.index(item.ID); i >= 0 {
		s.lines[i].Quantity++
		n = Notification{
			Kind:        KindQuantityUpdated,
			Title:       "Item quantity updated",
			Description: fmt.Sprintf("%s quantity increased to %d", item.Name, s.lines[i].Quantity),
		}
	} else {
		s.lines = append(s.lines, domain.CartLine{
			ItemID:     item.ID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			ImageURL:   item.ImageURL,
			Quantity:   1,
		})
		n = Notification{
			Kind:        KindItemAdded,
			Title:       "Item added to cart",
			Description: fmt.Sprintf("%s added to your cart", item.Name),
		}
	}
	s.persist(ctx)
	return n
}

func (s *Store) RemoveItem(ctx context.Context, itemID string) Notification {
	i := s.index(itemID)
	if i < 0 {
		return Notification{}
	}
	name := s.lines[i].Name
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persist(ctx)
	return Notification{
		Kind:        KindItemRemoved,
		Title:       "Item removed",
		Description: fmt.Sprintf("%s removed from your cart", name),
	}
}

// UpdateQuantity sets the quantity of a line. Quantities below 1 remove it.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) Notification {
	if quantity < 1 {
		return s.RemoveItem(ctx, itemID)
	}
	i := s.index(itemID)
	if i < 0 {
		return Notification{}
	}
	s.lines[i].Quantity = quantity
	s.persist(ctx)
	return Notification{}
}

func (s *Store) Clear(ctx context.Context) Notification {
	s.lines = nil
	s.persist(ctx)
	return Notification{
		Kind:        KindCartCleared,
		Title:       "Cart cleared",
		Description: "All items have been removed from your cart",
	}
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	return append([]domain.CartLine(nil), s.lines...)
}

func (s *Store) Subtotal() int64 {
	var total int64
	for _, l := range s.lines {
		total += l.TotalCents()
	}
	return total
}

func (s *Store) ItemCount() int {
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s *Store) index(itemID string) int {
	for i, l := range s.lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

// persist writes the full snapshot. Failures are logged only; the in-memory
// cart stays authoritative for this request.
func (s *Store) persist(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		s.logger.Error("cart: encode snapshot failed", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.snapshots.Set(ctx, s.key, raw); err != nil {
		s.logger.Warn("cart: save snapshot failed", zap.String("key", s.key), zap.Error(err))
	}
}
