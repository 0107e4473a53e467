package categories

import (
	"net/http"

	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes: todas las rutas de categorías son públicas.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/categories", func(cr chi.Router) {
		cr.Get("/", listCategoriesHandler(svc))
		cr.Get("/slug/{slug}", getCategoryBySlugHandler(svc, log))
		cr.Get("/{categoryID}", getCategoryHandler(svc, log))
	})
}

// @Summary Listar categorías
// @Tags categories
// @Produce json
// @Success 200 {array} Category
// @Router /categories [get]
func listCategoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpjson.Write(w, http.StatusOK, svc.List(r.Context()))
	}
}

// @Summary Obtener categoría
// @Tags categories
// @Produce json
// @Param categoryID path string true "ID de la categoría"
// @Success 200 {object} Category
// @Failure 404 {object} map[string]string
// @Router /categories/{categoryID} [get]
func getCategoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "categoryID"))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, c)
	}
}

// @Summary Obtener categoría por slug
// @Tags categories
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} Category
// @Failure 404 {object} map[string]string
// @Router /categories/slug/{slug} [get]
func getCategoryBySlugHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, c)
	}
}
