package entities

// Reasons a slot can be unavailable. The set is closed; the frontend maps
// these onto translated labels.
const (
	ReasonClosed  = "closed"
	ReasonBlocked = "blocked time"
	ReasonBooked  = "already booked"
	ReasonNoFit   = "does not fit in schedule"
)

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type NextAvailableSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}
