package erp

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"petshop/internal/domain/catalog"
	"petshop/internal/middleware"
	"petshop/internal/platform/apperr"
	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"
	"petshop/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

const maxImportBody = 32 << 20

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/1c", func(er chi.Router) {
		er.Use(middleware.RequireIdentity)
		er.Post("/sync", syncHandler(svc, log))
		er.Get("/status/{orderID}", statusHandler(svc, log))
		er.Post("/catalog/import", importCatalogHandler(svc, log))
	})
}

type syncRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// syncHandler godoc
// @Summary Sincronizar pedido con 1C (mock)
// @Tags 1c
// @Accept json
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param body body syncRequest true "Pedido"
// @Success 200 {object} SyncResult
// @Failure 404 {object} map[string]string
// @Router /1c/sync [post]
func syncHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req syncRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		res, err := svc.SyncOrder(r.Context(), middleware.UserID(r.Context()), req.OrderID)
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, res)
	}
}

// @Summary Estado de sincronización con 1C
// @Tags 1c
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Param orderID path string true "ID del pedido"
// @Success 200 {object} SyncStatus
// @Failure 404 {object} map[string]string
// @Router /1c/status/{orderID} [get]
func statusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Status(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "orderID"))
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, st)
	}
}

// importCatalogHandler godoc
// @Summary Importar catálogo desde 1C
// @Description Reemplaza el catálogo completo. Body: array JSON de productos, o un .xlsx
// @Description (primera hoja, fila 1 = nombres de campo) con Content-Type de spreadsheet.
// @Tags 1c
// @Accept json
// @Accept application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce json
// @Param Authorization header string true "Token (cualquier valor)"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /1c/catalog/import [post]
func importCatalogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBody)

		records, err := readImportBody(r)
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}

		res, err := svc.ImportCatalog(r.Context(), records)
		if err != nil {
			httpjson.Fail(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, res)
	}
}

const invalidImportFormat = "Invalid data format. Expected array of products."

var errBodyTooLarge = fmt.Errorf("%w: limit is %d MB", apperr.ErrTooLarge, maxImportBody>>20)

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func readImportBody(r *http.Request) ([]catalog.Record, error) {
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == catalog.XLSXContentType {
		records, err := catalog.ReadXLSX(r.Body)
		if err != nil {
			if tooLarge(err) {
				return nil, errBodyTooLarge
			}
			return nil, apperr.Validation("body", "invalid xlsx workbook")
		}
		return records, nil
	}

	var raw any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if tooLarge(err) {
			return nil, errBodyTooLarge
		}
		return nil, apperr.Validation("body", invalidImportFormat)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, apperr.Validation("body", invalidImportFormat)
	}

	records := make([]catalog.Record, 0, len(items))
	for _, it := range items {
		// Elementos que no son objeto quedan con todos los defaults.
		rec, _ := it.(map[string]any)
		if rec == nil {
			rec = catalog.Record{}
		}
		records = append(records, rec)
	}
	return records, nil
}
