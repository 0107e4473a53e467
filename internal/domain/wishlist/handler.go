package wishlist

import (
	"net/http"

	"petshop/internal/middleware"
	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/wishlist", func(wr chi.Router) {
		wr.Use(middleware.RequireIdentity)
		wr.Get("/", listHandler(svc, log))
		wr.Post("/{productID}", addHandler(svc, log))
		wr.Delete("/{productID}", removeHandler(svc, log))
	})
}

// @Summary Productos favoritos
// @Tags wishlist
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Success 200 {array} catalog.Product
// @Router /wishlist [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

// @Summary Agregar a favoritos (idempotente)
// @Tags wishlist
// @Param Authorization header string true "Token (cualquier valor)"
// @Param productID path string true "ID del producto"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /wishlist/{productID} [post]
func addHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Add(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "productID")); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// @Summary Quitar de favoritos
// @Tags wishlist
// @Param Authorization header string true "Token (cualquier valor)"
// @Param productID path string true "ID del producto"
// @Success 204
// @Router /wishlist/{productID} [delete]
func removeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Remove(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "productID")); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
