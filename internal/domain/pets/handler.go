package pets

import (
	"net/http"
	"strings"
	"time"

	"petshop/internal/domain/taxonomy"
	"petshop/internal/middleware"
	"petshop/internal/platform/apperr"
	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"
	"petshop/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		// Tabla de razas (pública)
		pr.Get("/breeds", listBreedsHandler(svc))

		// Mascotas del usuario (owner-only)
		pr.Group(func(g chi.Router) {
			g.Use(middleware.RequireIdentity)
			g.Post("/", createPetHandler(svc, log))
			g.Get("/", listPetsHandler(svc, log))
			g.Get("/{petID}", getPetHandler(svc, log))
			g.Put("/{petID}", updatePetHandler(svc, log))
			g.Delete("/{petID}", deletePetHandler(svc, log))
		})
	})
}

type createPetRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	PetType      string   `json:"petType" validate:"required,oneof=dog cat bird fish rodent other"`
	BreedID      string   `json:"breedId"`
	BirthDate    string   `json:"birthDate" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Weight       float64  `json:"weight" validate:"required,gt=0"`
	Gender       string   `json:"gender" validate:"required,oneof=male female"`
	Allergies    []string `json:"allergies"`
	IsNeutered   bool     `json:"isNeutered"`
	Photo        string   `json:"photo"`
	SpecialNotes string   `json:"specialNotes"`
}

// updatePetRequest: punteros para merge parcial, nil = no tocar.
type updatePetRequest struct {
	Name         *string   `json:"name" validate:"omitempty,max=100"`
	PetType      *string   `json:"petType" validate:"omitempty,oneof=dog cat bird fish rodent other"`
	BreedID      *string   `json:"breedId"`
	BirthDate    *string   `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Weight       *float64  `json:"weight" validate:"omitempty,gt=0"`
	Gender       *string   `json:"gender" validate:"omitempty,oneof=male female"`
	Allergies    *[]string `json:"allergies"`
	IsNeutered   *bool     `json:"isNeutered"`
	Photo        *string   `json:"photo"`
	SpecialNotes *string   `json:"specialNotes"`
}

type petResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	PetType      string    `json:"petType"`
	BreedID      string    `json:"breedId,omitempty"`
	BirthDate    string    `json:"birthDate"`
	Weight       float64   `json:"weight"`
	Gender       string    `json:"gender"`
	Allergies    []string  `json:"allergies"`
	IsNeutered   bool      `json:"isNeutered"`
	Photo        string    `json:"photo,omitempty"`
	SpecialNotes string    `json:"specialNotes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// listBreedsHandler godoc
// @Summary Listar razas
// @Description Razas del tipo pedido más las de tipo "other". Sin petType devuelve todas.
// @Tags pets
// @Produce json
// @Param petType query string false "dog|cat|other"
// @Success 200 {array} Breed
// @Router /pets/breeds [get]
func listBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpjson.Write(w, http.StatusOK, svc.Breeds(r.URL.Query().Get("petType")))
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param body body createPetRequest true "Perfil"
// @Success 201 {object} petResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		bd, err := parseDate(req.BirthDate)
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		p, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			Name:       req.Name,
			PetType:    taxonomy.PetType(req.PetType),
			BreedID:    req.BreedID,
			BirthDate:  bd,
			WeightKg:   req.Weight,
			Gender:     Gender(req.Gender),
			Allergies:  req.Allergies,
			IsNeutered: req.IsNeutered,
			Photo:      req.Photo,
			Notes:      req.SpecialNotes,
		})
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toPetResponse(p))
	}
}

// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Obtener mascota
// @Description Una mascota de otro usuario responde 404.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} map[string]string
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

// @Summary Actualizar mascota (merge parcial)
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param petID path string true "ID de la mascota"
// @Param body body updatePetRequest true "Campos a cambiar"
// @Success 200 {object} petResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		in := UpdateInput{
			Name:       req.Name,
			BreedID:    req.BreedID,
			WeightKg:   req.Weight,
			Allergies:  req.Allergies,
			IsNeutered: req.IsNeutered,
			Photo:      req.Photo,
			Notes:      req.SpecialNotes,
		}
		if req.PetType != nil {
			t := taxonomy.PetType(*req.PetType)
			in.PetType = &t
		}
		if req.Gender != nil {
			g := Gender(*req.Gender)
			in.Gender = &g
		}
		if req.BirthDate != nil {
			bd, err := parseDate(*req.BirthDate)
			if err != nil {
				httpjson.Fail(w, r, log, err)
				return
			}
			in.BirthDate = &bd
		}

		p, err := svc.Update(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"), in)
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

// @Summary Borrar mascota
// @Tags pets
// @Param Authorization header string true "Token (cualquier valor)"
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID")); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperr.Validation("birthDate", "must be YYYY-MM-DD")
	}
	return t, nil
}

func toPetResponse(p Pet) petResponse {
	allergies := p.Allergies
	if allergies == nil {
		allergies = []string{}
	}
	return petResponse{
		ID:           p.ID,
		UserID:       p.OwnerUserID,
		Name:         p.Name,
		PetType:      string(p.PetType),
		BreedID:      p.BreedID,
		BirthDate:    p.BirthDate.Format(DateLayout),
		Weight:       p.WeightKg,
		Gender:       string(p.Gender),
		Allergies:    allergies,
		IsNeutered:   p.IsNeutered,
		Photo:        p.Photo,
		SpecialNotes: p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
