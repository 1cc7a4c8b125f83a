package menuitem

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/repository/repotest"
)

func sampleItem(now time.Time) domain.MenuItem {
	pct := 15.0
	newPrice := int64(1104)
	return domain.MenuItem{
		Name:       "Pepperoni",
		PriceCents: 1299,
		Spicy:      true,
		Popular:    true,
		Available:  true,
		Promotion:  &domain.ItemPromotion{Active: true, DiscountPercentage: &pct, NewPriceCents: &newPrice},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	created, err := repo.Insert(ctx, sampleItem(now))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == "" || created.PriceCents != 1299 {
		t.Fatalf("unexpected item %+v", created)
	}
	if created.Promotion == nil || created.Promotion.NewPriceCents == nil || *created.Promotion.NewPriceCents != 1104 {
		t.Fatalf("promotion not round-tripped: %+v", created.Promotion)
	}

	in := *created
	in.Name = "Pepperoni XL"
	in.Promotion = nil
	updated, err := repo.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Pepperoni XL" || updated.Promotion != nil {
		t.Fatalf("unexpected updated item %+v", updated)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestPostgres_CRUD(t *testing.T) {
	pool := repotest.Postgres(t)
	exerciseRepository(t, NewPostgres(pool, nil))
}

func TestPostgres_UpdateMissing(t *testing.T) {
	pool := repotest.Postgres(t)
	repo := NewPostgres(pool, nil)
	_, err := repo.Update(context.Background(), "00000000-0000-0000-0000-000000000000", sampleItem(time.Now()))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMySQL_CRUD(t *testing.T) {
	conn := repotest.MySQL(t)
	exerciseRepository(t, NewMySQL(conn, nil))
}
