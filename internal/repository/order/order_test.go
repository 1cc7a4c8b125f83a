package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/repository/repotest"
)

func sampleOrder(number string) domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Order{
		OrderNumber:      number,
		CustomerName:     "Ana",
		CustomerPhone:    "555-0100",
		OrderType:        domain.OrderTypeDelivery,
		DeliveryAddress:  "1 Main St",
		PaymentMethod:    domain.PaymentCash,
		SubtotalCents:    1099,
		DeliveryFeeCents: 399,
		TotalCents:       1498,
		Status:           domain.OrderStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func exercise(t *testing.T, orders Repository, lines LineRepository) {
	t.Helper()
	ctx := context.Background()

	header, err := orders.Insert(ctx, sampleOrder("004217"))
	if err != nil {
		t.Fatalf("insert header: %v", err)
	}
	if header.ID == "" || header.TotalCents != 1498 {
		t.Fatalf("unexpected header %+v", header)
	}
	if _, err := orders.Insert(ctx, sampleOrder("004217")); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for duplicate order number, got %v", err)
	}

	saved, err := lines.InsertMany(ctx, []domain.OrderLine{
		{OrderID: header.ID, ItemID: "p1", ItemName: "Margherita", Quantity: 1, UnitPriceCents: 1099, LineTotalCents: 1099},
	})
	if err != nil {
		t.Fatalf("insert lines: %v", err)
	}
	if len(saved) != 1 || saved[0].ID == "" {
		t.Fatalf("unexpected lines %+v", saved)
	}

	listed, err := lines.ListByOrder(ctx, header.ID)
	if err != nil {
		t.Fatalf("list lines: %v", err)
	}
	if len(listed) != 1 || listed[0].ItemName != "Margherita" {
		t.Fatalf("unexpected listed lines %+v", listed)
	}

	in := *header
	in.Status = domain.OrderStatusConfirmed
	updated, err := orders.Update(ctx, header.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.OrderStatusConfirmed {
		t.Fatalf("status not updated: %+v", updated)
	}

	if err := orders.Delete(ctx, header.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	listed, err = lines.ListByOrder(ctx, header.ID)
	if err != nil {
		t.Fatalf("list lines after delete: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected lines removed with header, got %+v", listed)
	}
}

func TestPostgres_OrderWithLines(t *testing.T) {
	pool := repotest.Postgres(t)
	exercise(t, NewPostgres(pool, nil), NewPostgresLines(pool, nil))
}

func TestMySQL_OrderWithLines(t *testing.T) {
	conn := repotest.MySQL(t)
	exercise(t, NewMySQL(conn, nil), NewMySQLLines(conn, nil))
}
