package entities

type AppointmentRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date"`       // YYYY-MM-DD
	StartTime     string `json:"start_time"` // HH:MM
	ServiceIDs    []int  `json:"service_ids"`
	Language      string `json:"language"` // "el" or "en"
}
