package recommendations

import (
	"context"
	"time"

	"petshop/internal/domain/catalog"
	"petshop/internal/domain/pets"
)

type PetFinder interface {
	Get(ctx context.Context, ownerUserID, id string) (pets.Pet, error)
	Breed(id string) (pets.Breed, bool)
}

type ProductSource interface {
	All(ctx context.Context) ([]catalog.Product, error)
}

type Service struct {
	pets     PetFinder
	products ProductSource
	now      func() time.Time
}

func NewService(petFinder PetFinder, products ProductSource) *Service {
	return &Service{
		pets:     petFinder,
		products: products,
		now:      time.Now,
	}
}

// ForPet: si la mascota no existe (o es de otro usuario) devuelve lista vacía y pets.ErrNotFound.
func (s *Service) ForPet(ctx context.Context, userID, petID string) ([]Recommendation, error) {
	pet, err := s.pets.Get(ctx, userID, petID)
	if err != nil {
		return []Recommendation{}, err
	}

	var breed *pets.Breed
	if pet.BreedID != "" {
		if b, ok := s.pets.Breed(pet.BreedID); ok {
			breed = &b
		}
	}

	all, err := s.products.All(ctx)
	if err != nil {
		return []Recommendation{}, err
	}
	return Rank(all, pet, breed, s.now()), nil
}
