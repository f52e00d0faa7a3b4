package db

import (
	"database/sql"
	"time"
)

type Appointment struct {
	ID              int
	Code            string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	AppointmentDate time.Time
	StartTime       string // HH:MM
	DurationMinutes int
	ServiceNames    string
	Status          string
	Language        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BlockedSlot is an admin-defined block. The time bounds are optional;
// a block missing either bound carries no time constraint.
type BlockedSlot struct {
	ID        int
	StartDate time.Time
	EndDate   time.Time
	StartTime sql.NullString // HH:MM
	EndTime   sql.NullString // HH:MM
	Reason    string
	CreatedAt time.Time
}

type SalonService struct {
	ID              int
	NameEL          string
	NameEN          string
	Category        string
	DurationMinutes int
	PriceCents      int
}

type NewsletterSubscriber struct {
	ID        int
	Email     string
	Language  string
	CreatedAt time.Time
}
