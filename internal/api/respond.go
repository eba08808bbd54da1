package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fanpulse/internal/core"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", core.ErrInvalidInput)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps a domain error onto a stable HTTP status and code. Caller
// mistakes keep their message; infrastructure failures get a generic one so
// repository internals never leak.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := core.ErrorCode(err)
	message := err.Error()

	var status int
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrRepositoryUnavailable):
		status = http.StatusServiceUnavailable
		message = "storage temporarily unavailable"
		logger.Error("repository failure", "error", err)
	default:
		status = http.StatusInternalServerError
		message = "internal error"
		logger.Error("unclassified failure", "error", err)
	}

	writeJSON(w, status, errorEnvelope{
		Success: false,
		Error:   errorBody{Code: code, Message: message},
	})
}
