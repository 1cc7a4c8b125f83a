package promotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/repository/repotest"
)

func exercise(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	pct := 20.0

	created, err := repo.Insert(ctx, domain.Promotion{
		Title:              "Weekend Special",
		StartDate:          start,
		Active:             true,
		DiscountPercentage: &pct,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.EndDate != nil {
		t.Fatalf("expected open-ended promotion, got end %v", created.EndDate)
	}

	end := start.AddDate(0, 0, 7)
	in := *created
	in.EndDate = &end
	updated, err := repo.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EndDate == nil || !updated.EndDate.Equal(end) {
		t.Fatalf("end date not stored: %+v", updated.EndDate)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("unexpected list %+v", list)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_CRUD(t *testing.T) {
	exercise(t, NewPostgres(repotest.Postgres(t), nil))
}

func TestMySQL_CRUD(t *testing.T) {
	exercise(t, NewMySQL(repotest.MySQL(t), nil))
}
