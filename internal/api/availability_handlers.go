package api

import (
	"net/http"
	"strconv"
	"time"

	"kommotirio/internal/service"
)

type AvailabilityHandler struct {
	Service *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// CheckAvailability handles GET /api/availability?date=YYYY-MM-DD&duration=90
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid or missing date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil {
		http.Error(w, "Invalid or missing duration", http.StatusBadRequest)
		return
	}

	slots, err := h.Service.CheckAvailability(r.Context(), date, duration)
	if err != nil {
		respondError(w, err, "Error checking availability")
		return
	}

	respondJSON(w, http.StatusOK, AvailabilityResponse{
		Date:     date.Format("2006-01-02"),
		Duration: duration,
		Slots:    slots,
	})
}

// NextAvailable handles GET /api/availability/next?from=YYYY-MM-DD&duration=90&days=14
func (h *AvailabilityHandler) NextAvailable(w http.ResponseWriter, r *http.Request) {
	from := time.Now()
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		parsed, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			http.Error(w, "Invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil {
		http.Error(w, "Invalid or missing duration", http.StatusBadRequest)
		return
	}
	days := 0
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err = strconv.Atoi(daysParam)
		if err != nil {
			http.Error(w, "Invalid days", http.StatusBadRequest)
			return
		}
	}

	slot, err := h.Service.FindNextAvailableSlot(r.Context(), from, duration, days)
	if err != nil {
		respondError(w, err, "Error searching for the next available slot")
		return
	}
	if slot == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"found": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"found": true,
		"date":  slot.Date,
		"time":  slot.Time,
	})
}
