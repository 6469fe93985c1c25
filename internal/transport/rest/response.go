package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// statusFor maps a domain error onto its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSignOutFailed):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes err as a JSON error body. Internal details of 5xx
// errors are logged, not returned.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := statusFor(err)

	var ve *domain.ValidationError
	var te *domain.TransitionError
	switch {
	case errors.Is(err, domain.ErrSignOutFailed):
		log.ErrorContext(r.Context(), "sign out failed", slog.String("error", err.Error()))
		writeError(w, status, "sign out failed")
	case errors.As(err, &ve):
		writeJSON(w, status, errorResponse{Error: "validation failed", Fields: ve.Errors})
	case errors.As(err, &te):
		writeError(w, status, te.Error())
	case status == http.StatusUnauthorized:
		writeError(w, status, "unauthorized")
	case status == http.StatusForbidden:
		writeError(w, status, "forbidden")
	case status == http.StatusNotFound:
		writeError(w, status, "not found")
	case status == http.StatusConflict:
		writeError(w, status, "conflict")
	case status == http.StatusServiceUnavailable:
		log.WarnContext(r.Context(), "store unavailable", slog.String("error", err.Error()))
		writeError(w, status, "service unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, status, "internal server error")
	}
}
