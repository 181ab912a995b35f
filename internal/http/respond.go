package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pocketledger/internal/core"
	"pocketledger/internal/storage"
)

var errInvalidDate = errors.New("invalid date, want RFC 3339 or YYYY-MM-DD")

// validationErrs are rejected inputs reported back to the caller verbatim.
var validationErrs = []error{
	core.ErrInvalidAmount,
	core.ErrEmptyCategory,
	core.ErrInvalidType,
	core.ErrZeroDate,
	core.ErrInvalidTheme,
	core.ErrEmptyCurrency,
	core.ErrEmptyLanguage,
	core.ErrDescriptionSize,
	errInvalidDate,
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondError maps domain errors to HTTP statuses: validation failures
// to 422, missing records to 404, everything else to an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	for _, verr := range validationErrs {
		if errors.Is(err, verr) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	slog.Error("Request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
