package pets

import (
	"petshop/internal/domain/taxonomy"
)

// BreedPetType: las razas solo distinguen perro, gato u otro.
type BreedPetType string

const (
	BreedDog   BreedPetType = "dog"
	BreedCat   BreedPetType = "cat"
	BreedOther BreedPetType = "other"
)

type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Breed struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	PetType         BreedPetType  `json:"petType"`
	AverageWeight   WeightRange   `json:"averageWeight"`
	Size            taxonomy.Size `json:"size"`
	CommonAllergies []string      `json:"commonAllergies,omitempty"`
	Characteristics []string      `json:"characteristics,omitempty"`
}

// BreedTable es la tabla de referencia (estática, read-only).
type BreedTable struct {
	list []Breed
	byID map[string]Breed
}

func NewBreedTable(list []Breed) *BreedTable {
	t := &BreedTable{
		list: append([]Breed(nil), list...),
		byID: make(map[string]Breed, len(list)),
	}
	for _, b := range list {
		t.byID[b.ID] = b
	}
	return t
}

func (t *BreedTable) Get(id string) (Breed, bool) {
	if t == nil {
		return Breed{}, false
	}
	b, ok := t.byID[id]
	return b, ok
}

// List filtra por tipo; las razas "other" aparecen siempre.
func (t *BreedTable) List(petType string) []Breed {
	out := make([]Breed, 0, len(t.list))
	for _, b := range t.list {
		if petType == "" || string(b.PetType) == petType || b.PetType == BreedOther {
			out = append(out, b)
		}
	}
	return out
}
