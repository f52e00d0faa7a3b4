package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"kommotirio/internal/config"
	"kommotirio/internal/entities"
)

type SenderService struct {
	cfg *config.Config
	loc *time.Location
	log *zap.Logger
}

func NewSenderService(cfg *config.Config, loc *time.Location, log *zap.Logger) *SenderService {
	return &SenderService{cfg: cfg, loc: loc, log: log}
}

// statusTranslation maps an appointment status onto the wording used in
// customer-facing messages.
func statusTranslation(status, language string) string {
	translations := map[string]map[string]string{
		"pending":   {"el": "σε αναμονή επιβεβαίωσης", "en": "awaiting confirmation"},
		"confirmed": {"el": "επιβεβαιωμένο", "en": "confirmed"},
		"cancelled": {"el": "ακυρωμένο", "en": "cancelled"},
	}
	if byLang, ok := translations[status]; ok {
		if t, ok := byLang[language]; ok {
			return t
		}
		return byLang["en"]
	}
	return status
}

// SendAppointmentEmail composes and dispatches the bilingual status email.
// Delivery happens on a background goroutine; the booking flow never waits
// on SendGrid.
func (s *SenderService) SendAppointmentEmail(appt entities.AppointmentResponse, status string) {
	date, errDate := time.ParseInLocation("2006-01-02", appt.Date, s.loc)
	dateFormatted := appt.Date
	if errDate == nil {
		dateFormatted = date.Format("02 Jan 2006")
	}

	emailData := entities.AppointmentEmailData{
		CustomerName:    appt.CustomerName,
		AppointmentCode: appt.Code,
		ServiceNames:    appt.ServiceNames,
		DateFormatted:   dateFormatted,
		TimeFormatted:   appt.StartTime,
		CurrentYear:     time.Now().In(s.loc).Year(),
		Language:        appt.Language,
		Status:          status,
	}

	salonName := s.cfg.Salon.Name

	var emailSubject, plainTextBody string
	switch appt.Language {
	case "el":
		emailSubject = fmt.Sprintf("Το ραντεβού σας στο %s είναι %s - Κωδικός: %s", salonName, status, emailData.AppointmentCode)
		plainTextBody = fmt.Sprintf(
			"Γεια σας %s,\n\nΤο ραντεβού σας στο %s είναι %s.\n\n"+
				"Στοιχεία ραντεβού:\n"+
				"Κωδικός: %s\n"+
				"Υπηρεσίες: %s\n"+
				"Ημερομηνία: %s\n"+
				"Ώρα: %s\n\n"+
				"Ευχαριστούμε που επιλέξατε το %s.\n\n"+
				"%s %d. Με επιφύλαξη παντός δικαιώματος.",
			emailData.CustomerName, salonName, status, emailData.AppointmentCode, emailData.ServiceNames,
			emailData.DateFormatted, emailData.TimeFormatted, salonName, salonName, emailData.CurrentYear,
		)
	default:
		emailSubject = fmt.Sprintf("Your %s appointment is %s - Code: %s", salonName, status, emailData.AppointmentCode)
		plainTextBody = fmt.Sprintf(
			"Hello %s,\n\nYour appointment at %s is %s.\n\n"+
				"Appointment details:\n"+
				"Code: %s\n"+
				"Services: %s\n"+
				"Date: %s\n"+
				"Time: %s\n\n"+
				"Thank you for choosing %s.\n\n"+
				"%s %d. All rights reserved.",
			emailData.CustomerName, salonName, status, emailData.AppointmentCode, emailData.ServiceNames,
			emailData.DateFormatted, emailData.TimeFormatted, salonName, salonName, emailData.CurrentYear,
		)
	}

	htmlBody := fmt.Sprintf(
		"<p>%s</p><p><strong>%s</strong>: %s<br><strong>%s</strong>: %s<br><strong>%s</strong>: %s %s</p>",
		plainFirstLine(appt.Language, emailData.CustomerName),
		label(appt.Language, "code"), emailData.AppointmentCode,
		label(appt.Language, "services"), emailData.ServiceNames,
		label(appt.Language, "when"), emailData.DateFormatted, emailData.TimeFormatted,
	)

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if errEmail := s.sendEmail(toEmail, toName, subject, plainBody, htmlBodyContent); errEmail != nil {
			s.log.Error("async appointment email failed",
				zap.String("code", emailData.AppointmentCode), zap.Error(errEmail))
		}
	}(appt.CustomerEmail, emailData.CustomerName, emailSubject, plainTextBody, htmlBody)
}

func plainFirstLine(language, name string) string {
	if language == "el" {
		return "Γεια σας " + name + ","
	}
	return "Hello " + name + ","
}

func label(language, key string) string {
	labels := map[string]map[string]string{
		"code":     {"el": "Κωδικός", "en": "Code"},
		"services": {"el": "Υπηρεσίες", "en": "Services"},
		"when":     {"el": "Ραντεβού", "en": "Appointment"},
	}
	if byLang, ok := labels[key]; ok {
		if l, ok := byLang[language]; ok {
			return l
		}
		return byLang["en"]
	}
	return key
}

// SendAppointmentSMS sends the short status notification.
func (s *SenderService) SendAppointmentSMS(appt entities.AppointmentResponse, status string) {
	salonName := s.cfg.Salon.Name

	var smsMessage string
	switch appt.Language {
	case "el":
		smsMessage = fmt.Sprintf("%s: Το ραντεβού σας %s είναι %s!\n%s στις %s.\nΠερισσότερα στο email σας.",
			salonName, appt.Code, status, appt.Date, appt.StartTime)
	default:
		smsMessage = fmt.Sprintf("%s: Appointment %s is %s!\n%s at %s.\nMore details in your email.",
			salonName, appt.Code, status, appt.Date, appt.StartTime)
	}

	if errSMS := s.sendSMS(appt.CustomerPhone, smsMessage); errSMS != nil {
		s.log.Error("appointment SMS failed",
			zap.String("code", appt.Code),
			zap.String("to", appt.CustomerPhone),
			zap.Error(errSMS))
	}
}

// SendContactEmail relays a contact-form message to the salon inbox.
func (s *SenderService) SendContactEmail(msg entities.ContactRequest) error {
	subject := fmt.Sprintf("[%s] Νέο μήνυμα από %s", s.cfg.Salon.Name, msg.Name)
	if msg.Language == "en" {
		subject = fmt.Sprintf("[%s] New message from %s", s.cfg.Salon.Name, msg.Name)
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s", msg.Name, msg.Email, msg.Phone, msg.Message)
	htmlBody := fmt.Sprintf("<p><strong>%s</strong> &lt;%s&gt; (%s)</p><p>%s</p>", msg.Name, msg.Email, msg.Phone, msg.Message)
	return s.sendEmail(s.cfg.Salon.ContactEmail, s.cfg.Salon.Name, subject, body, htmlBody)
}

// SendNewsletterWelcome greets a new subscriber in their language.
func (s *SenderService) SendNewsletterWelcome(email, language string) {
	salonName := s.cfg.Salon.Name

	var subject, body string
	switch language {
	case "el":
		subject = fmt.Sprintf("Καλώς ήρθατε στο newsletter του %s", salonName)
		body = fmt.Sprintf("Ευχαριστούμε για την εγγραφή σας στο newsletter του %s! Θα λαμβάνετε νέα και προσφορές μας.", salonName)
	default:
		subject = fmt.Sprintf("Welcome to the %s newsletter", salonName)
		body = fmt.Sprintf("Thank you for subscribing to the %s newsletter! You will receive our news and offers.", salonName)
	}

	go func() {
		if err := s.sendEmail(email, "", subject, body, "<p>"+body+"</p>"); err != nil {
			s.log.Error("async newsletter welcome email failed", zap.String("to", email), zap.Error(err))
		}
	}()
}
