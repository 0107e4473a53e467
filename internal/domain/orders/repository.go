package orders

import "context"

type Repository interface {
	Create(ctx context.Context, o Order) error
	GetByID(ctx context.Context, id string) (Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// Update aplica mutate bajo un único lock de escritura. Si mutate falla no se guarda nada.
	Update(ctx context.Context, id string, mutate func(*Order) error) (Order, error)
}
