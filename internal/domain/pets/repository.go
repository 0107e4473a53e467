package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// Update aplica mutate bajo el lock del store (read-modify-write atómico).
	// Si mutate devuelve error no se guarda nada.
	Update(ctx context.Context, id string, mutate func(*Pet) error) (Pet, error)

	// Delete borra solo si la mascota pertenece a ownerUserID.
	Delete(ctx context.Context, ownerUserID, id string) error
}
