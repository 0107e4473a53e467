// Package recommendations puntúa el catálogo contra el perfil de una mascota.
//
// Cada producto se puntúa de forma independiente (sin normalizar entre productos).
// Tipo de mascota y alergias son filtros duros: si fallan, el producto queda fuera
// sin importar el resto de las reglas.
package recommendations

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"petshop/internal/domain/catalog"
	"petshop/internal/domain/pets"
	"petshop/internal/domain/taxonomy"
)

const (
	MaxResults = 20

	FeatureHypoallergenic = "гипоаллергенный"
	FeatureNeutered       = "для стерилизованных"
)

const (
	pointsExactType    = 30
	pointsUniversal    = 15
	pointsHypo         = 25
	pointsAgeExact     = 20
	pointsAgeAll       = 5
	pointsSizeExact    = 15
	pointsSizeNear     = 5
	pointsBreed        = 10
	pointsNeutered     = 20
	ratingWeight       = 2
	reviewsPerPoint    = 50
	maxReviewPoints    = 10
	pointsInStock      = 5
	penaltyOutOfStock  = -10
	highRatingForLabel = 4.7
)

type Recommendation struct {
	Product catalog.Product `json:"product"`
	Score   int             `json:"score"`
	Reasons []string        `json:"reasons"`
}

// Score devuelve ok=false si el producto queda excluido o su puntaje final es <= 0.
// Cada regla que suma puntos agrega su motivo; las exclusiones no agregan ninguno.
// breed puede ser nil.
func Score(p catalog.Product, pet pets.Pet, breed *pets.Breed, now time.Time) (Recommendation, bool) {
	var score float64
	reasons := make([]string, 0, 6)

	// 1. Tipo de mascota
	switch {
	case p.PetType == "":
	case p.PetType == taxonomy.PetAll:
		score += pointsUniversal
		reasons = append(reasons, "Универсальный товар")
	case p.PetType == pet.PetType:
		score += pointsExactType
		reasons = append(reasons, "Для "+petTypeGenitive(pet.PetType))
	default:
		return Recommendation{}, false
	}

	// 2. Alergias (substring en ambos sentidos, sin mayúsculas)
	allergies := normalizedTokens(pet.Allergies)
	if len(allergies) > 0 && overlaps(normalizedTokens(p.Allergens), allergies, true) {
		return Recommendation{}, false
	}

	// 3. Hipoalergénico
	if len(allergies) > 0 && p.HasFeature(FeatureHypoallergenic) {
		score += pointsHypo
		reasons = append(reasons, "Гипоаллергенный продукт")
	}

	// 4. Edad
	age := AgeGroupFor(pet.AgeYears(now))
	switch p.AgeGroup {
	case age:
		score += pointsAgeExact
		reasons = append(reasons, "Для "+ageGroupGenitive(age))
	case taxonomy.AgeAll:
		score += pointsAgeAll
		reasons = append(reasons, "Для всех возрастов")
	}

	// 5. Talle según peso
	size := SizeFor(pet.PetType, pet.WeightKg)
	if p.Size.Valid() {
		switch d := p.Size.Ordinal() - size.Ordinal(); {
		case d == 0:
			score += pointsSizeExact
			reasons = append(reasons, "Подходящий размер ("+sizeLabel(size)+")")
		case d == 1 || d == -1:
			score += pointsSizeNear
			reasons = append(reasons, "Близкий размер")
		}
	}

	// 6. Alergias típicas de la raza (el producto tiene que declarar alérgenos)
	if breed != nil && len(breed.CommonAllergies) > 0 && len(p.Allergens) > 0 {
		if !overlaps(normalizedTokens(p.Allergens), normalizedTokens(breed.CommonAllergies), false) {
			score += pointsBreed
			reasons = append(reasons, "Подходит для породы")
		}
	}

	// 7. Castrados / esterilizados
	if pet.IsNeutered && p.HasFeature(FeatureNeutered) {
		score += pointsNeutered
		reasons = append(reasons, "Для стерилизованных питомцев")
	}

	// 8. Rating y popularidad
	score += p.Rating * ratingWeight
	score += math.Min(float64(p.ReviewCount)/reviewsPerPoint, maxReviewPoints)
	switch {
	case p.Rating >= highRatingForLabel:
		reasons = append(reasons, "Высокий рейтинг")
	case p.Rating > 0:
		reasons = append(reasons, "Хорошие оценки покупателей")
	}
	if p.ReviewCount > 0 {
		reasons = append(reasons, "Популярный товар")
	}

	// 9. Stock
	if p.InStock {
		score += pointsInStock
		reasons = append(reasons, "Есть в наличии")
	} else {
		score += penaltyOutOfStock
	}

	final := int(math.Round(score))
	if final <= 0 {
		return Recommendation{}, false
	}
	return Recommendation{Product: p, Score: final, Reasons: reasons}, true
}

// Rank puntúa todo el catálogo y devuelve los MaxResults mejores.
// Empates: se respeta el orden del catálogo.
func Rank(products []catalog.Product, pet pets.Pet, breed *pets.Breed, now time.Time) []Recommendation {
	out := make([]Recommendation, 0, len(products))
	for _, p := range products {
		if rec, ok := Score(p, pet, breed, now); ok {
			out = append(out, rec)
		}
	}

	slices.SortStableFunc(out, func(a, b Recommendation) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

// AgeGroupFor usa los mismos cortes para todas las especies: <1 puppy, >=7 senior.
func AgeGroupFor(years float64) taxonomy.AgeGroup {
	switch {
	case years < 1:
		return taxonomy.AgePuppy
	case years >= 7:
		return taxonomy.AgeSenior
	default:
		return taxonomy.AgeAdult
	}
}

// SizeFor: cortes en kg por especie; el resto de especies es siempre m.
func SizeFor(t taxonomy.PetType, weightKg float64) taxonomy.Size {
	var limits [4]float64
	switch t {
	case taxonomy.PetDog:
		limits = [4]float64{5, 10, 25, 40}
	case taxonomy.PetCat:
		limits = [4]float64{3, 4.5, 6, 8}
	default:
		return taxonomy.SizeM
	}

	sizes := [5]taxonomy.Size{taxonomy.SizeXS, taxonomy.SizeS, taxonomy.SizeM, taxonomy.SizeL, taxonomy.SizeXL}
	for i, lim := range limits {
		if weightKg < lim {
			return sizes[i]
		}
	}
	return taxonomy.SizeXL
}

func normalizedTokens(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// overlaps: algún token de product contiene uno de other (y viceversa si both).
func overlaps(product, other []string, both bool) bool {
	for _, a := range product {
		for _, b := range other {
			if strings.Contains(a, b) || (both && strings.Contains(b, a)) {
				return true
			}
		}
	}
	return false
}

func petTypeGenitive(t taxonomy.PetType) string {
	switch t {
	case taxonomy.PetDog:
		return "собак"
	case taxonomy.PetCat:
		return "кошек"
	case taxonomy.PetBird:
		return "птиц"
	case taxonomy.PetFish:
		return "рыб"
	case taxonomy.PetRodent:
		return "грызунов"
	default:
		return "питомцев"
	}
}

func ageGroupGenitive(a taxonomy.AgeGroup) string {
	switch a {
	case taxonomy.AgePuppy:
		return "щенков/котят"
	case taxonomy.AgeSenior:
		return "пожилых"
	default:
		return "взрослых"
	}
}

func sizeLabel(s taxonomy.Size) string {
	switch s {
	case taxonomy.SizeXS:
		return "очень маленький"
	case taxonomy.SizeS:
		return "маленький"
	case taxonomy.SizeM:
		return "средний"
	case taxonomy.SizeL:
		return "большой"
	default:
		return "очень большой"
	}
}
