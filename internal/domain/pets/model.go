package pets

import (
	"time"

	"petshop/internal/domain/taxonomy"
)

// Gender define el sexo de la mascota.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// Pet representa el perfil de una mascota. Solo su dueño la ve o la modifica.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	PetType taxonomy.PetType // dog, cat, bird, fish, rodent, other
	BreedID string           // opcional, referencia a la tabla de razas

	BirthDate time.Time
	WeightKg  float64
	Gender    Gender

	// Tokens libres ("Курица", "говядина"...). Se comparan por substring sin mayúsculas.
	Allergies  []string
	IsNeutered bool

	Photo string
	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeYears usa años de 365.25 días.
func (p Pet) AgeYears(now time.Time) float64 {
	return now.Sub(p.BirthDate).Hours() / 24 / 365.25
}

// HasAllergies ignora tokens vacíos.
func (p Pet) HasAllergies() bool {
	for _, a := range p.Allergies {
		if a != "" {
			return true
		}
	}
	return false
}
