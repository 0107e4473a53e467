package memory

import (
	"context"
	"slices"
	"sync"

	"petshop/internal/domain/wishlist"
)

type wishlistRepo struct {
	mu     sync.RWMutex
	byUser map[string][]string
}

func NewWishlistRepo() wishlist.Repository {
	return &wishlistRepo{
		byUser: make(map[string][]string),
	}
}

func (r *wishlistRepo) List(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string{}, r.byUser[userID]...), nil
}

func (r *wishlistRepo) Add(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.byUser[userID], productID) {
		return nil
	}
	r.byUser[userID] = append(r.byUser[userID], productID)
	return nil
}

func (r *wishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.byUser[userID]
	if i := slices.Index(ids, productID); i >= 0 {
		r.byUser[userID] = slices.Delete(ids, i, i+1)
	}
	return nil
}
