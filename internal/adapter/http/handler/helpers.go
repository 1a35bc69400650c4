package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/stockledger/internal/adapter/http/dto"
	"github.com/iho/stockledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrStockCardNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReferenceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStockCardExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNodeCodeExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNegativeStockOnHand):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidShape),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidOccurredDate),
		errors.Is(err, domain.ErrInvalidActorID),
		errors.Is(err, domain.ErrInvalidFreeText),
		errors.Is(err, domain.ErrInvalidReasonName),
		errors.Is(err, domain.ErrInvalidReasonType),
		errors.Is(err, domain.ErrInvalidNodeCode),
		errors.Is(err, domain.ErrInvalidStockCardID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError writes err with the status mapDomainError picks. Internal
// errors are not echoed to the client.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := mapDomainError(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, message, "")
		return
	}
	writeError(w, status, message, err.Error())
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
