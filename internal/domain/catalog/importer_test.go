package catalog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"petshop/internal/domain/taxonomy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFromRecord_NameOnlyGetsDefaults(t *testing.T) {
	p := FromRecord(Record{"name": "X"}, nil)

	assert.True(t, strings.HasPrefix(p.ID, "imported-"), "generated id, got %q", p.ID)
	assert.Equal(t, "X", p.Name)
	assert.True(t, p.Price.IsZero())
	assert.True(t, p.InStock)
	assert.Equal(t, 100, p.StockQuantity)
	assert.Equal(t, 0.0, p.Rating)
	assert.Equal(t, 0, p.ReviewCount)
	assert.Equal(t, taxonomy.PetAll, p.PetType)
	assert.Equal(t, taxonomy.AgeAll, p.AgeGroup)
	assert.Equal(t, DefaultCategoryID, p.CategoryID)
	assert.Equal(t, DefaultBrand, p.Brand)
	assert.NotNil(t, p.Images)
}

func TestFromRecord_InvalidFieldsDegradeToDefaults(t *testing.T) {
	p := FromRecord(Record{
		"id":            "",
		"price":         "1200",
		"rating":        9.5,
		"reviewCount":   -4.0,
		"inStock":       "yes",
		"stockQuantity": "many",
		"petType":       "dragon",
		"ageGroup":      42.0,
		"size":          "xxl",
		"images":        "a.jpg",
	}, func() string { return "fixed-id" })

	assert.Equal(t, "fixed-id", p.ID)
	assert.Equal(t, DefaultName, p.Name)
	assert.True(t, p.Price.IsZero(), "string price is not numeric")
	assert.Equal(t, 0.0, p.Rating)
	assert.Equal(t, 0, p.ReviewCount)
	assert.True(t, p.InStock)
	assert.Equal(t, DefaultStockQuantity, p.StockQuantity)
	assert.Equal(t, taxonomy.PetAll, p.PetType)
	assert.Equal(t, taxonomy.AgeAll, p.AgeGroup)
	assert.Equal(t, taxonomy.Size(""), p.Size)
	assert.Empty(t, p.Images)

	huge := FromRecord(Record{"name": "X", "reviewCount": 1e20, "stockQuantity": 1e20}, nil)
	assert.Equal(t, 0, huge.ReviewCount)
	assert.Equal(t, DefaultStockQuantity, huge.StockQuantity)
}

func TestFromRecord_KeepsValidFields(t *testing.T) {
	p := FromRecord(Record{
		"id":              "sku-1",
		"name":            "Корм",
		"price":           1299.9,
		"rating":          4.6,
		"reviewCount":     120.0,
		"inStock":         false,
		"stockQuantity":   0.0,
		"petType":         "cat",
		"ageGroup":        "senior",
		"size":            "s",
		"allergens":       []any{"курица", 7, " "},
		"specialFeatures": []any{"гипоаллергенный"},
		"images":          []any{"/img/1.jpg"},
		"weight":          400.0,
	}, nil)

	assert.Equal(t, "sku-1", p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1299.9")))
	assert.Equal(t, 4.6, p.Rating)
	assert.Equal(t, 120, p.ReviewCount)
	assert.False(t, p.InStock)
	assert.Equal(t, 0, p.StockQuantity)
	assert.Equal(t, taxonomy.PetCat, p.PetType)
	assert.Equal(t, taxonomy.AgeSenior, p.AgeGroup)
	assert.Equal(t, taxonomy.SizeS, p.Size)
	assert.Equal(t, []string{"курица"}, p.Allergens)
	assert.Equal(t, []string{"гипоаллергенный"}, p.SpecialFeatures)
	assert.Equal(t, []string{"/img/1.jpg"}, p.Images)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 400.0, *p.Weight)
}

type memRepo struct {
	mu       sync.Mutex
	products []Product
}

func (r *memRepo) All(ctx context.Context) ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Product(nil), r.products...), nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *memRepo) ReplaceAll(ctx context.Context, products []Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append([]Product(nil), products...)
	return nil
}

type failingSnapshot struct{ calls int }

func (s *failingSnapshot) Write(ctx context.Context, products []Product) error {
	s.calls++
	return errors.New("read-only filesystem")
}

func TestService_Import_ReplacesCatalogAndSwallowsSnapshotErrors(t *testing.T) {
	repo := &memRepo{products: fixture()}
	snap := &failingSnapshot{}
	svc := NewService(repo, snap, nil)

	n, err := svc.Import(context.Background(), []Record{{"name": "X"}, {"id": "keep", "price": 10.0}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, snap.calls)

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2, "import is a full replace, not a merge")

	_, err = svc.GetByID(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := svc.GetByID(context.Background(), "keep")
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(10)))
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"id", "name", "price", "inStock", "stockQuantity", "allergens", "petType"},
		{"00012", "Корм для собак", 1499.5, "false", 3, "курица; говядина", "dog"},
		{"", "Без цены", "", "", "", "", ""},
		{},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	recs, err := ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "00012", recs[0]["id"], "ids stay text")
	assert.Equal(t, 1499.5, recs[0]["price"])
	assert.Equal(t, false, recs[0]["inStock"])
	assert.Equal(t, 3.0, recs[0]["stockQuantity"])
	assert.Equal(t, []any{"курица", "говядина"}, recs[0]["allergens"])

	products := FromRecords(recs, func() string { return "gen" })
	assert.Equal(t, "00012", products[0].ID)
	assert.False(t, products[0].InStock)
	assert.Equal(t, 3, products[0].StockQuantity)
	assert.Equal(t, taxonomy.PetDog, products[0].PetType)
	assert.Equal(t, "gen", products[1].ID)
	assert.True(t, products[1].Price.IsZero())
}
