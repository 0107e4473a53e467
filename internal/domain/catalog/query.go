package catalog

import (
	"cmp"
	"slices"
	"strings"

	"petshop/internal/domain/taxonomy"
	"petshop/internal/platform/apperr"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortPrice      SortKey = "price"
	SortRating     SortKey = "rating"
	SortName       SortKey = "name"
	SortPopularity SortKey = "popularity"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortPrice, SortRating, SortName, SortPopularity:
		return true
	}
	return false
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// Query describe filtros (todos opcionales y conjuntivos), orden y página.
// Usar DefaultQuery() como base: los ceros de Page/Limit se rechazan.
type Query struct {
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Brand      string
	PetType    taxonomy.PetType
	AgeGroup   taxonomy.AgeGroup
	MinRating  *float64
	// InStockOnly solo filtra cuando es true; en false no excluye nada.
	InStockOnly bool
	Search      string

	SortBy    SortKey
	SortOrder SortOrder

	Page  int
	Limit int
}

func DefaultQuery() Query {
	return Query{
		SortBy:    SortPopularity,
		SortOrder: Desc,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

type Page struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

func (q Query) Validate() error {
	ve := &apperr.ValidationError{Fields: map[string]string{}}
	if q.Page < 1 {
		ve.Fields["page"] = "must be at least 1"
	}
	if q.Limit < 1 {
		ve.Fields["limit"] = "must be at least 1"
	}
	if !q.SortBy.Valid() {
		ve.Fields["sortBy"] = "must be one of: price, rating, name, popularity"
	}
	if q.SortOrder != Asc && q.SortOrder != Desc {
		ve.Fields["sortOrder"] = "must be one of: asc, desc"
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		ve.Fields["minPrice"] = "must be less than or equal to maxPrice"
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

// Apply filtra, ordena y pagina. No modifica products.
func Apply(products []Product, q Query) (Page, error) {
	if err := q.Validate(); err != nil {
		return Page{}, err
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if q.matches(p) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, q.SortBy, q.SortOrder)

	total := len(filtered)
	out := Page{
		Products:   []Product{},
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: total / q.Limit,
	}
	if total%q.Limit != 0 {
		out.TotalPages++
	}

	// Fuera de rango antes de multiplicar: page*limit puede desbordar int.
	if q.Page-1 >= out.TotalPages {
		return out, nil
	}
	start := (q.Page - 1) * q.Limit
	end := start + min(q.Limit, total-start)
	out.Products = filtered[start:end]
	return out, nil
}

func (q Query) matches(p Product) bool {
	if q.CategoryID != "" && p.CategoryID != q.CategoryID {
		return false
	}
	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}
	if q.Brand != "" && p.Brand != q.Brand {
		return false
	}
	if q.PetType != "" && p.PetType != q.PetType && p.PetType != taxonomy.PetAll {
		return false
	}
	if q.AgeGroup != "" && p.AgeGroup != q.AgeGroup && p.AgeGroup != taxonomy.AgeAll {
		return false
	}
	if q.MinRating != nil && p.Rating < *q.MinRating {
		return false
	}
	if q.InStockOnly && !p.InStock {
		return false
	}
	if q.Search != "" {
		s := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Description), s) &&
			!strings.Contains(strings.ToLower(p.Brand), s) {
			return false
		}
	}
	return true
}

// sortProducts es estable: los empates conservan el orden de entrada.
func sortProducts(ps []Product, key SortKey, order SortOrder) {
	var compare func(a, b Product) int

	switch key {
	case SortPrice:
		compare = func(a, b Product) int { return a.Price.Cmp(b.Price) }
	case SortRating:
		compare = func(a, b Product) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortName:
		// collate.Collator no es seguro para uso concurrente: uno por llamada.
		col := collate.New(language.Russian)
		compare = func(a, b Product) int { return col.CompareString(a.Name, b.Name) }
	default:
		compare = func(a, b Product) int { return cmp.Compare(a.ReviewCount, b.ReviewCount) }
	}

	if order == Desc {
		asc := compare
		compare = func(a, b Product) int { return -asc(a, b) }
	}
	slices.SortStableFunc(ps, compare)
}

// Options calcula marcas y rango de precios sobre el catálogo completo.
func Options(products []Product) FilterOptions {
	out := FilterOptions{Brands: []string{}, MinPrice: decimal.Zero, MaxPrice: decimal.Zero}
	if len(products) == 0 {
		return out
	}

	seen := map[string]struct{}{}
	out.MinPrice = products[0].Price
	out.MaxPrice = products[0].Price
	for _, p := range products {
		if _, ok := seen[p.Brand]; !ok {
			seen[p.Brand] = struct{}{}
			out.Brands = append(out.Brands, p.Brand)
		}
		if p.Price.LessThan(out.MinPrice) {
			out.MinPrice = p.Price
		}
		if p.Price.GreaterThan(out.MaxPrice) {
			out.MaxPrice = p.Price
		}
	}
	slices.Sort(out.Brands)
	return out
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
