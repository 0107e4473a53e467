package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"petshop/internal/domain/catalog"
	"petshop/internal/domain/orders"
	"petshop/internal/domain/pets"
	"petshop/internal/platform/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetRepo_ClonesOnReadAndWrite(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	p := pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Рекс", Allergies: []string{"курица"}}
	require.NoError(t, repo.Create(ctx, p))
	p.Allergies[0] = "changed"

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"курица"}, got.Allergies)

	got.Allergies[0] = "changed"
	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "курица", again.Allergies[0])

	assert.Error(t, repo.Create(ctx, pets.Pet{ID: "p1"}))
	assert.Error(t, repo.Create(ctx, pets.Pet{}))
}

func TestPetRepo_UpdateKeepsIdentity(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", CreatedAt: created}))

	got, err := repo.Update(ctx, "p1", func(p *pets.Pet) error {
		p.ID = "other"
		p.OwnerUserID = "u2"
		p.CreatedAt = time.Now()
		p.Name = "Новое"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "u1", got.OwnerUserID)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.Equal(t, "Новое", got.Name)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, "p1", func(p *pets.Pet) error {
		p.Name = "не сохранится"
		return boom
	})
	assert.ErrorIs(t, err, boom)
	got, err = repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Новое", got.Name)

	_, err = repo.Update(ctx, "missing", func(*pets.Pet) error { return nil })
	assert.True(t, apperr.IsNotFound(err))
}

func TestPetRepo_ListByOwnerOrdered(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "b", OwnerUserID: "u1", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "c", OwnerUserID: "u1", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "a", OwnerUserID: "u1", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "x", OwnerUserID: "u2", CreatedAt: base}))

	list, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids)

	assert.True(t, apperr.IsNotFound(repo.Delete(ctx, "u2", "a")))
	require.NoError(t, repo.Delete(ctx, "u1", "a"))
}

func TestOrderRepo_ConcurrentUpdatesAreSerialized(t *testing.T) {
	repo := NewOrderRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, orders.Order{ID: "o1", UserID: "u1", TotalAmount: decimal.Zero}))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "o1", func(o *orders.Order) error {
				o.TotalAmount = o.TotalAmount.Add(decimal.NewFromInt(1))
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(got.TotalAmount))
}

func TestOrderRepo_ListByUserKeepsCreationOrder(t *testing.T) {
	repo := NewOrderRepo()
	ctx := context.Background()

	for i := range 5 {
		user := "u1"
		if i%2 == 1 {
			user = "u2"
		}
		require.NoError(t, repo.Create(ctx, orders.Order{ID: fmt.Sprintf("o%d", i), UserID: user}))
	}

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "o0", list[0].ID)
	assert.Equal(t, "o2", list[1].ID)
	assert.Equal(t, "o4", list[2].ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestProductRepo_ReplaceAll(t *testing.T) {
	repo := NewProductRepo([]catalog.Product{{ID: "a"}, {ID: "b"}})
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceAll(ctx, []catalog.Product{{ID: "c", Name: "first"}, {ID: "c", Name: "last"}}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.GetByID(ctx, "a")
	assert.True(t, apperr.IsNotFound(err))

	got, err := repo.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "last", got.Name)
}

func TestWishlistRepo(t *testing.T) {
	repo := NewWishlistRepo()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "u1", "p1"))
	require.NoError(t, repo.Add(ctx, "u1", "p2"))
	require.NoError(t, repo.Add(ctx, "u1", "p1"))
	require.NoError(t, repo.Remove(ctx, "u1", "missing"))

	ids, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)

	require.NoError(t, repo.Remove(ctx, "u1", "p1"))
	ids, err = repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids)

	ids, err = repo.List(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}
