// Package taxonomy contiene los tags compartidos entre catálogo, mascotas y recomendaciones.
package taxonomy

// PetType es el tipo de animal. "all" solo aplica a productos (universal).
type PetType string

const (
	PetDog    PetType = "dog"
	PetCat    PetType = "cat"
	PetBird   PetType = "bird"
	PetFish   PetType = "fish"
	PetRodent PetType = "rodent"
	PetOther  PetType = "other"
	PetAll    PetType = "all"
)

// ValidForProduct: dog, cat, bird, fish, rodent, all.
func (t PetType) ValidForProduct() bool {
	switch t {
	case PetDog, PetCat, PetBird, PetFish, PetRodent, PetAll:
		return true
	}
	return false
}

// ValidForPet: dog, cat, bird, fish, rodent, other.
func (t PetType) ValidForPet() bool {
	switch t {
	case PetDog, PetCat, PetBird, PetFish, PetRodent, PetOther:
		return true
	}
	return false
}

type AgeGroup string

const (
	AgePuppy  AgeGroup = "puppy"
	AgeAdult  AgeGroup = "adult"
	AgeSenior AgeGroup = "senior"
	AgeAll    AgeGroup = "all"
)

func (a AgeGroup) Valid() bool {
	switch a {
	case AgePuppy, AgeAdult, AgeSenior, AgeAll:
		return true
	}
	return false
}

type Size string

const (
	SizeXS Size = "xs"
	SizeS  Size = "s"
	SizeM  Size = "m"
	SizeL  Size = "l"
	SizeXL Size = "xl"
)

// Ordinal ubica el tamaño en xs<s<m<l<xl (1..5). 0 si no es válido.
func (s Size) Ordinal() int {
	switch s {
	case SizeXS:
		return 1
	case SizeS:
		return 2
	case SizeM:
		return 3
	case SizeL:
		return 4
	case SizeXL:
		return 5
	}
	return 0
}

func (s Size) Valid() bool { return s.Ordinal() > 0 }
