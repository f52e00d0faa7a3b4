package entities

import "time"

type AppointmentResponse struct {
	Code            string    `json:"code"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	ServiceNames    string    `json:"service_names"`
	Status          string    `json:"status"`
	Language        string    `json:"language"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AppointmentsList struct {
	Total        int                   `json:"total"`
	Appointments []AppointmentResponse `json:"appointments"`
}
