package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"kommotirio/internal/db"
	"kommotirio/internal/entities"
	"kommotirio/internal/repository"
	"kommotirio/internal/schedule"
	"kommotirio/internal/service"
)

type AdminHandler struct {
	Appointments *service.AppointmentService
	BlockedSlots *repository.BlockedSlotRepository
}

func NewAdminHandler(appointments *service.AppointmentService, blockedSlots *repository.BlockedSlotRepository) *AdminHandler {
	return &AdminHandler{Appointments: appointments, BlockedSlots: blockedSlots}
}

func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")
	list, err := h.Appointments.ListAppointments(r.Context(), date, status)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Appointments.ConfirmAppointment(r.Context(), code); err != nil {
		respondError(w, err, "Could not confirm appointment")
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Appointment confirmed"})
}

func (h *AdminHandler) ListBlockedSlots(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.BlockedSlots.List(r.Context())
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	out := make([]entities.BlockedSlotResponse, 0, len(blocks))
	for _, b := range blocks {
		resp := entities.BlockedSlotResponse{
			ID:        b.ID,
			StartDate: b.StartDate.Format("2006-01-02"),
			EndDate:   b.EndDate.Format("2006-01-02"),
			Reason:    b.Reason,
			CreatedAt: b.CreatedAt,
		}
		if b.StartTime.Valid {
			resp.StartTime = b.StartTime.String
		}
		if b.EndTime.Valid {
			resp.EndTime = b.EndTime.String
		}
		out = append(out, resp)
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) CreateBlockedSlot(w http.ResponseWriter, r *http.Request) {
	var req entities.BlockedSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		http.Error(w, "Invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		http.Error(w, "Invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if endDate.Before(startDate) {
		http.Error(w, "end_date must not be before start_date", http.StatusBadRequest)
		return
	}

	// Time bounds come as a pair or not at all; a half-bounded block would
	// silently never match anything.
	if (req.StartTime == "") != (req.EndTime == "") {
		http.Error(w, "start_time and end_time must be given together", http.StatusBadRequest)
		return
	}
	block := &db.BlockedSlot{
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	}
	if req.StartTime != "" {
		from, err := schedule.ParseTimeOfDay(req.StartTime)
		if err != nil {
			http.Error(w, "Invalid start_time, expected HH:MM", http.StatusBadRequest)
			return
		}
		to, err := schedule.ParseTimeOfDay(req.EndTime)
		if err != nil {
			http.Error(w, "Invalid end_time, expected HH:MM", http.StatusBadRequest)
			return
		}
		if from >= to {
			http.Error(w, "start_time must be before end_time", http.StatusBadRequest)
			return
		}
		block.StartTime = sql.NullString{String: from.String(), Valid: true}
		block.EndTime = sql.NullString{String: to.String(), Valid: true}
	}

	if err := h.BlockedSlots.Create(r.Context(), block); err != nil {
		http.Error(w, "Could not create blocked slot", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"id": block.ID})
}

func (h *AdminHandler) DeleteBlockedSlot(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.BlockedSlots.Delete(r.Context(), id); err != nil {
		http.Error(w, "Could not delete blocked slot", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Blocked slot deleted"})
}
