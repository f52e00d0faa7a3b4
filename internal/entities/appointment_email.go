package entities

type AppointmentEmailData struct {
	CustomerName    string
	AppointmentCode string
	ServiceNames    string
	DateFormatted   string
	TimeFormatted   string
	CurrentYear     int
	Language        string
	Status          string
}
