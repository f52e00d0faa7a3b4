package entities

type ServiceResponse struct {
	ID              int    `json:"id"`
	NameEL          string `json:"name_el"`
	NameEN          string `json:"name_en"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int    `json:"price_cents"`
}
