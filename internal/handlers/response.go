package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error  string             `json:"error"`
	Fields apperr.FieldErrors `json:"fields,omitempty"`
}

// errBadBody reports a request body that is not valid JSON for the target.
type errBadBody struct {
	err error
}

func (e *errBadBody) Error() string { return "invalid request body: " + e.err.Error() }
func (e *errBadBody) Unwrap() error { return e.err }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps err onto a status code and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *apperr.ValidationError
		cerr *apperr.ConflictError
		nerr *apperr.NotFoundError
		berr *errBadBody
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.As(err, &cerr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "conflicts with existing data", Fields: cerr.Fields})
	case errors.As(err, &nerr):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: nerr.Error()})
	case errors.As(err, &berr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: berr.Error()})
	case errors.Is(err, apperr.ErrAuthenticationRequired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
