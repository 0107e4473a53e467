package wishlist_test

import (
	"context"
	"testing"

	mem "petshop/internal/adapters/storage/memory"
	"petshop/internal/domain/catalog"
	"petshop/internal/domain/wishlist"
	"petshop/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_AddListRemove(t *testing.T) {
	products := mem.NewProductRepo([]catalog.Product{{ID: "p1"}, {ID: "p2"}})
	svc := wishlist.NewService(mem.NewWishlistRepo(), products)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", "p2"))
	require.NoError(t, svc.Add(ctx, "u1", " p1 "))
	require.NoError(t, svc.Add(ctx, "u1", "p2"))

	err := svc.Add(ctx, "u1", "missing")
	assert.True(t, apperr.IsNotFound(err))

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID)
	assert.Equal(t, "p1", list[1].ID)

	require.NoError(t, svc.Remove(ctx, "u1", "p2"))
	require.NoError(t, svc.Remove(ctx, "u1", "p2"))

	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestService_ListSkipsProductsGoneAfterImport(t *testing.T) {
	products := mem.NewProductRepo([]catalog.Product{{ID: "p1"}, {ID: "p2"}})
	svc := wishlist.NewService(mem.NewWishlistRepo(), products)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", "p1"))
	require.NoError(t, svc.Add(ctx, "u1", "p2"))
	require.NoError(t, products.ReplaceAll(ctx, []catalog.Product{{ID: "p2"}}))

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)
}
