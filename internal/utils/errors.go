package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Domain error kinds. Handlers wrap store/service failures in one of these so
// the boundary can pick a status code without inspecting internals.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrExternalService = errors.New("external service failure")
)

type errorBody struct {
	Error string `json:"error"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError maps a domain error to an HTTP status and JSON body.
// Unknown errors become a generic 500 so internals never leak.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		RespondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, ErrValidation), errors.Is(err, gorm.ErrDuplicatedKey):
		RespondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, ErrForbidden):
		RespondJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, ErrInvalidState):
		RespondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, ErrExternalService):
		RespondJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	default:
		RespondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
