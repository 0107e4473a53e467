package catalog

import (
	"petshop/internal/domain/taxonomy"

	"github.com/shopspring/decimal"
)

func init() {
	// El storefront espera precios como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product es un artículo vendible. Se crea solo por import (replace-all) y es read-only en runtime.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    string          `json:"categoryId"`
	Brand         string          `json:"brand"`
	Images        []string        `json:"images"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `json:"reviewCount"`
	InStock       bool            `json:"inStock"`
	StockQuantity int             `json:"stockQuantity"`

	Weight          *float64          `json:"weight,omitempty"` // gramos
	Volume          *float64          `json:"volume,omitempty"` // ml
	AgeGroup        taxonomy.AgeGroup `json:"ageGroup,omitempty"`
	PetType         taxonomy.PetType  `json:"petType,omitempty"`
	Size            taxonomy.Size     `json:"size,omitempty"`
	Allergens       []string          `json:"allergens,omitempty"`
	SpecialFeatures []string          `json:"specialFeatures,omitempty"`
}

// HasFeature compara sin distinguir mayúsculas.
func (p Product) HasFeature(feature string) bool {
	for _, f := range p.SpecialFeatures {
		if equalFold(f, feature) {
			return true
		}
	}
	return false
}

type FilterOptions struct {
	Brands   []string        `json:"brands"`
	MinPrice decimal.Decimal `json:"minPrice"`
	MaxPrice decimal.Decimal `json:"maxPrice"`
}
