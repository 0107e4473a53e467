package memory

import (
	"context"
	"sync"

	"petshop/internal/domain/catalog"
)

// productRepo guarda el catálogo en orden de import (el orden importa para los empates del sort).
type productRepo struct {
	mu    sync.RWMutex
	list  []catalog.Product
	index map[string]int
}

func NewProductRepo(seed []catalog.Product) catalog.Repository {
	r := &productRepo{}
	r.replace(seed)
	return r
}

func (r *productRepo) All(ctx context.Context) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]catalog.Product(nil), r.list...), nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return r.list[i], nil
}

func (r *productRepo) ReplaceAll(ctx context.Context, products []catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.replace(products)
	return nil
}

// replace asume el lock tomado (o construcción).
// Con ids repetidos, GetByID devuelve el último.
func (r *productRepo) replace(products []catalog.Product) {
	r.list = append([]catalog.Product(nil), products...)
	r.index = make(map[string]int, len(products))
	for i, p := range r.list {
		r.index[p.ID] = i
	}
}
