package api

import (
	"encoding/json"
	"net/http"

	"kommotirio/internal/entities"
	"kommotirio/internal/service"
)

type ContactHandler struct {
	Service *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{Service: svc}
}

func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req entities.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.SendContactMessage(&req); err != nil {
		respondError(w, err, "Could not send message")
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Message sent"})
}

func (h *ContactHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req entities.NewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.SubscribeNewsletter(r.Context(), &req); err != nil {
		respondError(w, err, "Could not subscribe")
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Subscribed"})
}
