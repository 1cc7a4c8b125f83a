package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/service/menu"

	"github.com/shopspring/decimal"
)

// Catalog is the part of the menu service the importer writes through.
type Catalog interface {
	Categories(ctx context.Context) ([]domain.MenuCategory, error)
	CreateCategory(ctx context.Context, in menu.CategoryInput) (*domain.MenuCategory, error)
	CreateItem(ctx context.Context, in menu.ItemInput) (*domain.MenuItem, error)
}

// CSVImporter reads a menu export and creates its items, creating missing
// categories by name on the way.
type CSVImporter struct {
	reader  *csv.Reader
	catalog Catalog

	categories map[string]string
	nextSort   int
}

func NewCSVImporter(r io.Reader, catalog Catalog) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
	}
}

// Run parses CSV rows and creates one menu item per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing name column")
	}
	if _, ok := index["price"]; !ok {
		return 0, errors.New("missing price column")
	}

	if err := i.loadCategories(ctx); err != nil {
		return 0, err
	}

	var imported int
	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		if blank(record) {
			continue
		}

		in, category, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if category != "" {
			id, err := i.categoryID(ctx, category)
			if err != nil {
				return imported, fmt.Errorf("line %d: %w", line, err)
			}
			in.CategoryID = id
		}
		if _, err := i.catalog.CreateItem(ctx, in); err != nil {
			return imported, fmt.Errorf("line %d: create item %q: %w", line, in.Name, err)
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) loadCategories(ctx context.Context) error {
	cats, err := i.catalog.Categories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	i.categories = make(map[string]string, len(cats))
	for _, c := range cats {
		i.categories[strings.ToLower(c.Name)] = c.ID
		if c.SortOrder >= i.nextSort {
			i.nextSort = c.SortOrder + 1
		}
	}
	return nil
}

func (i *CSVImporter) categoryID(ctx context.Context, name string) (string, error) {
	if id, ok := i.categories[strings.ToLower(name)]; ok {
		return id, nil
	}
	created, err := i.catalog.CreateCategory(ctx, menu.CategoryInput{Name: name, SortOrder: i.nextSort})
	if err != nil {
		return "", fmt.Errorf("create category %q: %w", name, err)
	}
	i.nextSort++
	i.categories[strings.ToLower(name)] = created.ID
	return created.ID, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (menu.ItemInput, string, error) {
	in := menu.ItemInput{
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		ImageURL:    pick(record, index, "image"),
	}
	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return in, "", fmt.Errorf("invalid price for %q: %w", in.Name, err)
	}
	in.Price = price

	flags := []struct {
		column string
		dst    *bool
	}{
		{"vegetarian", &in.Vegetarian},
		{"spicy", &in.Spicy},
		{"popular", &in.Popular},
	}
	for _, f := range flags {
		if *f.dst, err = parseBool(pick(record, index, f.column), false); err != nil {
			return in, "", fmt.Errorf("invalid %s for %q: %w", f.column, in.Name, err)
		}
	}
	available, err := parseBool(pick(record, index, "available"), true)
	if err != nil {
		return in, "", fmt.Errorf("invalid available for %q: %w", in.Name, err)
	}
	in.Available = &available

	if raw := pick(record, index, "promotion.newprice"); raw != "" {
		newPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return in, "", fmt.Errorf("invalid promotion price for %q: %w", in.Name, err)
		}
		promo := &menu.PromotionInput{Active: true, NewPrice: &newPrice}
		if pct := pick(record, index, "promotion.discountpercentage"); pct != "" {
			v, err := strconv.ParseFloat(pct, 64)
			if err != nil {
				return in, "", fmt.Errorf("invalid discount percentage for %q: %w", in.Name, err)
			}
			promo.DiscountPercentage = &v
		}
		in.Promotion = promo
	}

	return in, pick(record, index, "category"), nil
}

func parseBool(s string, def bool) (bool, error) {
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
