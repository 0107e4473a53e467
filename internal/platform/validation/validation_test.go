package validation

import (
	"testing"

	"petshop/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type order struct {
	Items  []item `json:"items" validate:"min=1,dive"`
	Method string `json:"paymentMethod" validate:"omitempty,oneof=card sbp yandex-split"`
	Birth  string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
}

func TestStruct_UsesJSONFieldPaths(t *testing.T) {
	err := Struct(order{
		Items:  []item{{ProductID: "p1", Quantity: 1}, {Quantity: 0}},
		Method: "cash",
		Birth:  "01.02.2020",
	})

	ve, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"items[1].productId": "is required",
		"items[1].quantity":  "must be at least 1",
		"paymentMethod":      "must be one of: card, sbp, yandex-split",
		"birthDate":          "must be a date in format 2006-01-02",
	}, ve.Fields)
}

func TestStruct_EmptySlice(t *testing.T) {
	ve, ok := apperr.IsValidation(Struct(order{}))
	require.True(t, ok)
	assert.Equal(t, "must contain at least one item", ve.Fields["items"])
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(order{Items: []item{{ProductID: "p1", Quantity: 2}}}))
}
