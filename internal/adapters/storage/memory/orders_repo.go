package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"petshop/internal/domain/orders"
)

type orderRepo struct {
	mu    sync.RWMutex
	byID  map[string]orders.Order
	order []string // ids en orden de creación
}

func NewOrderRepo() orders.Repository {
	return &orderRepo{
		byID: make(map[string]orders.Order),
	}
}

func (r *orderRepo) Create(ctx context.Context, o orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("order id required")
	}
	if _, exists := r.byID[o.ID]; exists {
		return errors.New("order already exists")
	}
	r.byID[o.ID] = cloneOrder(o)
	r.order = append(r.order, o.ID)
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]orders.Order, 0)
	for _, id := range r.order {
		if o := r.byID[id]; o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *orderRepo) Update(ctx context.Context, id string, mutate func(*orders.Order) error) (orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	next := cloneOrder(cur)
	if err := mutate(&next); err != nil {
		return orders.Order{}, err
	}
	next.ID = cur.ID
	next.UserID = cur.UserID

	r.byID[id] = next
	return cloneOrder(next), nil
}

func cloneOrder(o orders.Order) orders.Order {
	o.Items = append([]orders.Item(nil), o.Items...)
	if o.DeliveryAddress != nil {
		a := *o.DeliveryAddress
		o.DeliveryAddress = &a
	}
	return o
}
