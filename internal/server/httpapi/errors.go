package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saferide/saferide/internal/common"
)

// errorEnvelope is the body returned on every non-2xx response.
type errorEnvelope struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorEnvelope{Detail: detail})
}

// writeError maps service sentinels to HTTP statuses. Anything unmatched is
// reported as a 500 without leaking the underlying error text.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeErrorDetail(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrorNotFound):
		writeErrorDetail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeErrorDetail(w, http.StatusConflict, "Already exists")
	case errors.Is(err, common.ErrorValidation):
		writeErrorDetail(w, http.StatusUnprocessableEntity, "Validation error")
	default:
		writeErrorDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorDetail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
