// Package httpjson reúne los helpers de respuesta JSON que antes estaban duplicados
// en cada handler (writeJSON) y el mapeo de errores de dominio a status HTTP.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"petshop/internal/platform/apperr"
	"petshop/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Error: msg})
}

// Decode lee el body JSON en dst. Un body inválido es un error de validación.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("body", "invalid json")
	}
	return nil
}

// Fail traduce err a la respuesta HTTP que corresponde:
// - *apperr.ValidationError => 400 con detalle por campo
// - apperr.ErrNotFound      => 404 con el mensaje del error
// - apperr.ErrUnauthorized  => 401
// - resto                   => 500 genérico (y se loguea)
func Fail(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	if ve, ok := apperr.IsValidation(err); ok {
		Write(w, http.StatusBadRequest, errorBody{Error: ve.Error(), Fields: ve.Fields})
		return
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, apperr.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	case errors.Is(err, apperr.ErrTooLarge):
		Error(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	if log != nil {
		log.Error("unexpected error", map[string]any{
			"error":      err,
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": chimw.GetReqID(r.Context()),
		})
	}
	Error(w, http.StatusInternalServerError, "internal server error")
}
