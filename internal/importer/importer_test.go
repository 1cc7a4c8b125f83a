package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/service/menu"
)

type stubCatalog struct {
	existing   []domain.MenuCategory
	categories []menu.CategoryInput
	items      []menu.ItemInput
	itemErr    error
}

func (s *stubCatalog) Categories(_ context.Context) ([]domain.MenuCategory, error) {
	return s.existing, nil
}

func (s *stubCatalog) CreateCategory(_ context.Context, in menu.CategoryInput) (*domain.MenuCategory, error) {
	s.categories = append(s.categories, in)
	return &domain.MenuCategory{ID: "new-" + strings.ToLower(in.Name), Name: in.Name, SortOrder: in.SortOrder}, nil
}

func (s *stubCatalog) CreateItem(_ context.Context, in menu.ItemInput) (*domain.MenuItem, error) {
	if s.itemErr != nil {
		return nil, s.itemErr
	}
	s.items = append(s.items, in)
	return &domain.MenuItem{Name: in.Name}, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,description,price,image,category,vegetarian,spicy,popular,available,promotion.newPrice,promotion.discountPercentage
Margherita,Classic,10.99,/img/m.jpg,Pizza,yes,,true,,,
Pepperoni,Spicy salami,12.99,,pizza,,yes,,,11.04,15
,,,,,,,,,,
Garlic Bread,,4.99,,Sides,true,,,no,,
`
	catalog := &stubCatalog{existing: []domain.MenuCategory{{ID: "cat-pizza", Name: "Pizza", SortOrder: 1}}}
	imp := NewCSVImporter(strings.NewReader(csvData), catalog)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 items imported, got %d", count)
	}

	if len(catalog.categories) != 1 || catalog.categories[0].Name != "Sides" || catalog.categories[0].SortOrder != 2 {
		t.Fatalf("expected Sides category created after Pizza, got %+v", catalog.categories)
	}

	first := catalog.items[0]
	if first.Name != "Margherita" || first.CategoryID != "cat-pizza" || !first.Vegetarian || !first.Popular || first.Spicy {
		t.Fatalf("unexpected first item: %+v", first)
	}
	if domain.CentsFromDecimal(first.Price) != 1099 {
		t.Fatalf("expected price 1099 cents, got %s", first.Price)
	}
	if first.Available == nil || !*first.Available {
		t.Fatalf("expected available by default")
	}

	second := catalog.items[1]
	if second.CategoryID != "cat-pizza" {
		t.Fatalf("expected case-insensitive category lookup, got %q", second.CategoryID)
	}
	if second.Promotion == nil || domain.CentsFromDecimal(*second.Promotion.NewPrice) != 1104 || *second.Promotion.DiscountPercentage != 15 {
		t.Fatalf("unexpected promotion: %+v", second.Promotion)
	}

	third := catalog.items[2]
	if third.CategoryID != "new-sides" || *third.Available {
		t.Fatalf("unexpected third item: %+v", third)
	}
}

func TestCSVImporter_InvalidPrice(t *testing.T) {
	csvData := "name,price\nMargherita,ten\n"
	imp := NewCSVImporter(strings.NewReader(csvData), &stubCatalog{})

	_, err := imp.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 price error, got %v", err)
	}
}

func TestCSVImporter_MissingColumns(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("title,cost\nx,1\n"), &stubCatalog{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected missing column error")
	}
}

func TestCSVImporter_CreateError(t *testing.T) {
	boom := errors.New("boom")
	catalog := &stubCatalog{itemErr: boom}
	imp := NewCSVImporter(strings.NewReader("name,price\nMargherita,10.99\n"), catalog)

	count, err := imp.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 imported, got %d", count)
	}
}
