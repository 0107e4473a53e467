package seed

import (
	"testing"

	"petshop/internal/domain/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedData(t *testing.T) {
	products, err := Products()
	require.NoError(t, err)
	require.NotEmpty(t, products)

	cats, err := Categories()
	require.NoError(t, err)
	catIDs := map[string]bool{}
	for _, c := range cats {
		catIDs[c.ID] = true
		assert.NotEmpty(t, c.Slug, c.ID)
	}

	seen := map[string]bool{}
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.True(t, catIDs[p.CategoryID], "%s: unknown category %s", p.ID, p.CategoryID)
		assert.True(t, p.PetType.ValidForProduct(), p.ID)
		assert.True(t, p.AgeGroup == "" || p.AgeGroup.Valid(), p.ID)
		assert.False(t, p.Price.IsNegative(), p.ID)
	}

	breeds, err := Breeds()
	require.NoError(t, err)
	for _, b := range breeds {
		assert.True(t, b.Size.Valid(), b.ID)
		assert.Contains(t, []string{"dog", "cat", "other"}, string(b.PetType))
	}
	assert.Equal(t, taxonomy.SizeXS, breeds[3].Size)
}
