package catalog

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"petshop/internal/domain/taxonomy"
	"petshop/internal/platform/apperr"
	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/products", func(pr chi.Router) {
		pr.Get("/", listProductsHandler(svc, log))
		pr.Get("/filters", filterOptionsHandler(svc, log))
		pr.Get("/{productID}", getProductHandler(svc, log))
	})
}

// listProductsHandler godoc
// @Summary Listar productos
// @Description Filtros conjuntivos, orden (price|rating|name|popularity) y paginación 1-indexada. Público.
// @Tags products
// @Produce json
// @Param categoryId query string false "Categoría"
// @Param minPrice query number false "Precio mínimo (inclusive)"
// @Param maxPrice query number false "Precio máximo (inclusive)"
// @Param brand query string false "Marca exacta"
// @Param petType query string false "dog|cat|bird|fish|rodent (incluye 'all')"
// @Param ageGroup query string false "puppy|adult|senior (incluye 'all')"
// @Param minRating query number false "Rating mínimo"
// @Param inStock query bool false "Solo en stock"
// @Param search query string false "Texto en nombre, descripción o marca"
// @Param sortBy query string false "price|rating|name|popularity" default(popularity)
// @Param sortOrder query string false "asc|desc" default(desc)
// @Param page query int false "Página" default(1)
// @Param limit query int false "Tamaño de página" default(12)
// @Success 200 {object} Page
// @Failure 400 {object} map[string]string
// @Router /products [get]
func listProductsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := ParseQuery(r.URL.Query())
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		page, err := svc.List(r.Context(), q)
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, page)
	}
}

// @Summary Opciones de filtro (marcas y rango de precios)
// @Tags products
// @Produce json
// @Success 200 {object} FilterOptions
// @Router /products/filters [get]
func filterOptionsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.FilterOptions(r.Context())
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, opts)
	}
}

// @Summary Obtener producto
// @Tags products
// @Produce json
// @Param productID path string true "ID del producto"
// @Success 200 {object} Product
// @Failure 404 {object} map[string]string
// @Router /products/{productID} [get]
func getProductHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "productID"))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, p)
	}
}

// ParseQuery arma una Query desde los query params. Números mal formados => 400.
func ParseQuery(v url.Values) (Query, error) {
	q := DefaultQuery()
	ve := &apperr.ValidationError{Fields: map[string]string{}}

	q.CategoryID = strings.TrimSpace(v.Get("categoryId"))
	q.Brand = strings.TrimSpace(v.Get("brand"))
	q.PetType = taxonomy.PetType(strings.TrimSpace(v.Get("petType")))
	q.AgeGroup = taxonomy.AgeGroup(strings.TrimSpace(v.Get("ageGroup")))
	q.Search = strings.TrimSpace(v.Get("search"))
	q.InStockOnly = strings.TrimSpace(v.Get("inStock")) == "true"

	if s := strings.TrimSpace(v.Get("minPrice")); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			ve.Fields["minPrice"] = "must be a number"
		} else {
			q.MinPrice = &d
		}
	}
	if s := strings.TrimSpace(v.Get("maxPrice")); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			ve.Fields["maxPrice"] = "must be a number"
		} else {
			q.MaxPrice = &d
		}
	}
	if s := strings.TrimSpace(v.Get("minRating")); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			ve.Fields["minRating"] = "must be a number"
		} else {
			q.MinRating = &f
		}
	}

	if s := strings.TrimSpace(v.Get("sortBy")); s != "" {
		q.SortBy = SortKey(s)
	}
	if s := strings.TrimSpace(v.Get("sortOrder")); s != "" {
		q.SortOrder = SortOrder(s)
	}

	if s := strings.TrimSpace(v.Get("page")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			ve.Fields["page"] = "must be an integer"
		} else {
			q.Page = n
		}
	}
	if s := strings.TrimSpace(v.Get("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			ve.Fields["limit"] = "must be an integer"
		} else {
			q.Limit = n
		}
	}

	if len(ve.Fields) > 0 {
		return Query{}, ve
	}
	return q, q.Validate()
}
