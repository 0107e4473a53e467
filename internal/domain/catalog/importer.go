package catalog

import (
	"encoding/json"
	"math"
	"strings"

	"petshop/internal/domain/taxonomy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Defaults del import. Un campo ausente o inválido degrada al default; nunca se rechaza el lote.
const (
	DefaultName          = "Без названия"
	DefaultCategoryID    = "cat-food"
	DefaultBrand         = "Unknown"
	DefaultStockQuantity = 100

	// Tope para reviewCount/stockQuantity; arriba de esto el valor se trata como inválido.
	maxCount = math.MaxInt32
)

// Record es un producto "suelto" tal como llega del ERP (JSON o planilla).
type Record = map[string]any

func NewImportID() string {
	return "imported-" + uuid.NewString()
}

// FromRecord mapea un Record no confiable a un Product válido, una regla por campo.
func FromRecord(raw Record, newID func() string) Product {
	if newID == nil {
		newID = NewImportID
	}

	p := Product{
		ID:            stringOr(raw["id"], ""),
		Name:          stringOr(raw["name"], DefaultName),
		Description:   stringOr(raw["description"], ""),
		Price:         decimal.Zero,
		CategoryID:    stringOr(raw["categoryId"], DefaultCategoryID),
		Brand:         stringOr(raw["brand"], DefaultBrand),
		Images:        stringSlice(raw["images"]),
		Rating:        0,
		ReviewCount:   0,
		InStock:       true,
		StockQuantity: DefaultStockQuantity,
		PetType:       taxonomy.PetAll,
		AgeGroup:      taxonomy.AgeAll,
	}
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	if f, ok := number(raw["price"]); ok && f >= 0 {
		p.Price = decimal.NewFromFloat(f)
	}
	if f, ok := number(raw["rating"]); ok && f >= 0 && f <= 5 {
		p.Rating = f
	}
	if f, ok := number(raw["reviewCount"]); ok && f >= 0 && f <= maxCount {
		p.ReviewCount = int(f)
	}
	if b, ok := raw["inStock"].(bool); ok {
		p.InStock = b
	}
	if f, ok := number(raw["stockQuantity"]); ok && f >= 0 && f <= maxCount {
		p.StockQuantity = int(f)
	}

	if t := taxonomy.PetType(stringOr(raw["petType"], "")); t.ValidForProduct() {
		p.PetType = t
	}
	if a := taxonomy.AgeGroup(stringOr(raw["ageGroup"], "")); a.Valid() {
		p.AgeGroup = a
	}
	if s := taxonomy.Size(stringOr(raw["size"], "")); s.Valid() {
		p.Size = s
	}

	if f, ok := number(raw["weight"]); ok && f > 0 {
		p.Weight = &f
	}
	if f, ok := number(raw["volume"]); ok && f > 0 {
		p.Volume = &f
	}

	p.Allergens = stringSlice(raw["allergens"])
	p.SpecialFeatures = stringSlice(raw["specialFeatures"])

	return p
}

// FromRecords aplica FromRecord a todo el lote.
func FromRecords(raws []Record, newID func() string) []Product {
	out := make([]Product, 0, len(raws))
	for _, r := range raws {
		out = append(out, FromRecord(r, newID))
	}
	return out
}

func stringOr(v any, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringSlice(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}
