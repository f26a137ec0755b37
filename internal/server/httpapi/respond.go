package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dailydo/internal/common"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeUnauthorized emits the single, uniform rejection every failed
// authentication collapses to. The message never says which check failed.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "could not validate credentials"})
}

// writeError maps service sentinels to HTTP statuses. Unknown errors become
// a 500 without leaking internals; the caller is expected to have logged
// the details already.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeUnauthorized(w)
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "No Task found"})
	case errors.Is(err, common.ErrorValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "content must be between 3 and 54 characters"})
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Detail: "already registered"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}
