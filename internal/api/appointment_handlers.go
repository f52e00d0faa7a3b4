package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"kommotirio/internal/entities"
	"kommotirio/internal/service"
)

type AppointmentHandler struct {
	Service *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

func (h *AppointmentHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Service.ListServices(r.Context())
	if err != nil {
		http.Error(w, "Could not load services", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, services)
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req entities.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	appointment, err := h.Service.CreateAppointment(r.Context(), &req)
	if err != nil {
		respondError(w, err, "Could not create appointment")
		return
	}
	respondJSON(w, http.StatusCreated, appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	appointment, err := h.Service.GetAppointmentByCode(r.Context(), code, req.Email)
	if err != nil {
		respondError(w, err, "Appointment not found")
		return
	}
	respondJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Service.CancelAppointment(r.Context(), code); err != nil {
		respondError(w, err, "Could not cancel appointment")
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Appointment cancelled"})
}
