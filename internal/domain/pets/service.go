package pets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop/internal/domain/taxonomy"
	"petshop/internal/platform/apperr"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("pet %w", apperr.ErrNotFound)

const DateLayout = "2006-01-02"

type Service struct {
	repo   Repository
	breeds *BreedTable
	now    func() time.Time
}

func NewService(repo Repository, breeds *BreedTable) *Service {
	if breeds == nil {
		breeds = NewBreedTable(nil)
	}
	return &Service{
		repo:   repo,
		breeds: breeds,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name       string
	PetType    taxonomy.PetType
	BreedID    string
	BirthDate  time.Time
	WeightKg   float64
	Gender     Gender
	Allergies  []string
	IsNeutered bool
	Photo      string
	Notes      string
}

// UpdateInput: nil = no tocar. id, dueño y createdAt no se pueden cambiar.
type UpdateInput struct {
	Name       *string
	PetType    *taxonomy.PetType
	BreedID    *string
	BirthDate  *time.Time
	WeightKg   *float64
	Gender     *Gender
	Allergies  *[]string
	IsNeutered *bool
	Photo      *string
	Notes      *string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, apperr.ErrUnauthorized
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		PetType:     in.PetType,
		BreedID:     strings.TrimSpace(in.BreedID),
		BirthDate:   in.BirthDate,
		WeightKg:    in.WeightKg,
		Gender:      in.Gender,
		Allergies:   cleanAllergies(in.Allergies),
		IsNeutered:  in.IsNeutered,
		Photo:       strings.TrimSpace(in.Photo),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.validate(p); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Get devuelve la mascota solo si pertenece a ownerUserID.
// Una mascota ajena se reporta igual que una inexistente.
func (s *Service) Get(ctx context.Context, ownerUserID, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != ownerUserID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Update(ctx context.Context, ownerUserID, id string, in UpdateInput) (Pet, error) {
	return s.repo.Update(ctx, id, func(p *Pet) error {
		if p.OwnerUserID != ownerUserID {
			return ErrNotFound
		}

		next := *p
		if in.Name != nil {
			next.Name = strings.TrimSpace(*in.Name)
		}
		if in.PetType != nil {
			next.PetType = *in.PetType
		}
		if in.BreedID != nil {
			next.BreedID = strings.TrimSpace(*in.BreedID)
		}
		if in.BirthDate != nil {
			next.BirthDate = *in.BirthDate
		}
		if in.WeightKg != nil {
			next.WeightKg = *in.WeightKg
		}
		if in.Gender != nil {
			next.Gender = *in.Gender
		}
		if in.Allergies != nil {
			next.Allergies = cleanAllergies(*in.Allergies)
		}
		if in.IsNeutered != nil {
			next.IsNeutered = *in.IsNeutered
		}
		if in.Photo != nil {
			next.Photo = strings.TrimSpace(*in.Photo)
		}
		if in.Notes != nil {
			next.Notes = strings.TrimSpace(*in.Notes)
		}
		if err := s.validate(next); err != nil {
			return err
		}

		next.UpdatedAt = s.now()
		*p = next
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	return s.repo.Delete(ctx, ownerUserID, id)
}

func (s *Service) Breeds(petType string) []Breed {
	return s.breeds.List(strings.TrimSpace(petType))
}

func (s *Service) Breed(id string) (Breed, bool) {
	return s.breeds.Get(id)
}

func (s *Service) validate(p Pet) error {
	ve := &apperr.ValidationError{Fields: map[string]string{}}
	if p.Name == "" {
		ve.Fields["name"] = "is required"
	}
	if !p.PetType.ValidForPet() {
		ve.Fields["petType"] = "must be one of: dog, cat, bird, fish, rodent, other"
	}
	if p.BreedID != "" {
		if _, ok := s.breeds.Get(p.BreedID); !ok {
			ve.Fields["breedId"] = "unknown breed"
		}
	}
	if p.BirthDate.IsZero() {
		ve.Fields["birthDate"] = "is required"
	} else if p.BirthDate.After(s.now()) {
		ve.Fields["birthDate"] = "must not be in the future"
	}
	if p.WeightKg <= 0 {
		ve.Fields["weight"] = "must be greater than 0"
	}
	if !p.Gender.Valid() {
		ve.Fields["gender"] = "must be one of: male, female"
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

// cleanAllergies recorta espacios y descarta tokens vacíos.
func cleanAllergies(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
