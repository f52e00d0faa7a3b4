package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"kommotirio/internal/entities"
	apperrors "kommotirio/internal/errors"
)

// Availability
type AvailabilityResponse struct {
	Date     string              `json:"date"`
	Duration int                 `json:"duration_minutes"`
	Slots    []entities.TimeSlot `json:"slots"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps service errors onto HTTP statuses, falling back to 500
// with a generic message so internals never leak.
func respondError(w http.ResponseWriter, err error, fallback string) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, fallback, http.StatusInternalServerError)
}
