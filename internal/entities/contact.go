package entities

type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	Language string `json:"language"`
}

type NewsletterRequest struct {
	Email    string `json:"email"`
	Language string `json:"language"`
}
