package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/adapter/http/middleware"
	"github.com/iho/gobooks/internal/domain"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response. err may be nil.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, dto.NewErrorResponse(message, err))
}

// respondError maps err to a status and writes it. Storage failures are
// answered with a generic message; the use case has already logged them.
func respondError(w http.ResponseWriter, message string, err error) {
	status := mapDomainError(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error", nil)
		return
	}
	writeError(w, status, message, err)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrIOFailure):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSaleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateReference):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a size-limited request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

// actorID returns the authenticated actor when there is one, otherwise the
// id the client named in the body.
func actorID(r *http.Request, fromBody string) string {
	if actor, ok := middleware.ActorFromContext(r.Context()); ok {
		return actor.ID
	}
	return fromBody
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseBoolQuery parses a boolean query parameter; anything unparsable is false.
func parseBoolQuery(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

// parseDateQuery parses a YYYY-MM-DD query parameter. A missing parameter
// yields the zero time.
func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseDate(val)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

// parseDateRange parses the required from/to query parameters.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.IsZero() || to.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from and to are required", domain.ErrValidation)
	}
	return from, to, nil
}

// asOfOrToday is the as_of query parameter, defaulting to today (UTC).
func asOfOrToday(r *http.Request) (time.Time, error) {
	asOf, err := parseDateQuery(r, "as_of")
	if err != nil {
		return time.Time{}, err
	}
	if asOf.IsZero() {
		asOf = domain.NormalizeDate(time.Now().UTC())
	}
	return asOf, nil
}
