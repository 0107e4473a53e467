package recommendations

import (
	"net/http"

	"petshop/internal/middleware"
	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.With(middleware.RequireIdentity).Get("/recommendations/{petID}", recommendationsHandler(svc, log))
}

// recommendationsHandler godoc
// @Summary Recomendaciones para una mascota
// @Description Hasta 20 productos ordenados por puntaje, con los motivos de cada uno.
// @Tags recommendations
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} Recommendation
// @Failure 404 {object} map[string]string
// @Router /recommendations/{petID} [get]
func recommendationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.ForPet(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, recs)
	}
}
