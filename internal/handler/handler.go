package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"homeledger/internal/amortization"
	"homeledger/internal/repository"
	"homeledger/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// respondJSON writes v as a JSON response
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps service errors onto HTTP statuses: validation failures
// are 400, missing rows 404, computation edge cases 422, everything else a
// 500 with the prior state left intact.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, amortization.ErrPaymentBelowInterest),
		errors.Is(err, amortization.ErrDoesNotAmortize),
		errors.Is(err, service.ErrLoanPaidOff):
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// parseDate parses a required YYYY-MM-DD value
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", service.ErrInvalidInput)
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", service.ErrInvalidInput, value)
	}
	return date, nil
}

// decodeBody decodes a JSON request body, rejecting malformed input instead
// of coercing it
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	return nil
}
