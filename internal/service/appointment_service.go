package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"kommotirio/internal/db"
	"kommotirio/internal/entities"
	apperrors "kommotirio/internal/errors"
	"kommotirio/internal/repository"
	"kommotirio/internal/schedule"
)

const (
	statusPending   = "pending"
	statusConfirmed = "confirmed"
	statusCancelled = "cancelled"
	statusCompleted = "completed"
)

// cancelNoticePeriod is how far before the start a customer can still cancel.
const cancelNoticePeriod = 2 * time.Hour

type AppointmentService struct {
	Repo         *repository.AppointmentRepository
	Catalog      *repository.ServiceRepository
	Availability *AvailabilityService
	Sender       *SenderService
	loc          *time.Location
	log          *zap.Logger
}

func NewAppointmentService(
	repo *repository.AppointmentRepository,
	catalog *repository.ServiceRepository,
	availability *AvailabilityService,
	sender *SenderService,
	loc *time.Location,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		Repo:         repo,
		Catalog:      catalog,
		Availability: availability,
		Sender:       sender,
		loc:          loc,
		log:          log,
	}
}

func (s *AppointmentService) ListServices(ctx context.Context) ([]entities.ServiceResponse, error) {
	services, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.ServiceResponse, 0, len(services))
	for _, sv := range services {
		out = append(out, entities.ServiceResponse{
			ID:              sv.ID,
			NameEL:          sv.NameEL,
			NameEN:          sv.NameEN,
			Category:        sv.Category,
			DurationMinutes: sv.DurationMinutes,
			PriceCents:      sv.PriceCents,
		})
	}
	return out, nil
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, req *entities.AppointmentRequest) (*entities.AppointmentResponse, error) {
	if req.CustomerName == "" || req.CustomerEmail == "" || req.CustomerPhone == "" {
		return nil, apperrors.ErrBadRequest("name, email and phone are required")
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid date, expected YYYY-MM-DD")
	}
	startAt, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid start time, expected HH:MM")
	}
	if startAt.On(date, s.loc).Before(time.Now()) {
		return nil, apperrors.ErrBadRequest("cannot book an appointment in the past")
	}

	durationMinutes, serviceNames, err := s.resolveServices(ctx, req)
	if err != nil {
		return nil, err
	}

	slots, err := s.Availability.CheckAvailability(ctx, date, durationMinutes)
	if err != nil {
		return nil, err
	}
	requested := startAt.String()
	var verdict *entities.TimeSlot
	for i := range slots {
		if slots[i].Time == requested {
			verdict = &slots[i]
			break
		}
	}
	if verdict == nil {
		return nil, apperrors.ErrConflict("requested time is not a bookable slot")
	}
	if !verdict.Available {
		return nil, apperrors.ErrConflict("requested slot is not available: " + verdict.Reason)
	}

	code := fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)

	appointment := &db.Appointment{
		Code:            code,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		AppointmentDate: date,
		StartTime:       requested,
		DurationMinutes: durationMinutes,
		ServiceNames:    serviceNames,
		Status:          statusPending,
		Language:        req.Language,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := s.Repo.CreateAppointment(ctx, appointment); err != nil {
		s.log.Error("error creating appointment in repository", zap.Error(err))
		return nil, err
	}

	resp := s.toResponse(appointment)
	translated := statusTranslation(statusPending, resp.Language)
	s.Sender.SendAppointmentEmail(resp, translated)
	s.Sender.SendAppointmentSMS(resp, translated)

	return &resp, nil
}

// resolveServices sums the catalog durations of the selected services and
// joins their names in the request language. With no services selected the
// default 60-minute duration applies.
func (s *AppointmentService) resolveServices(ctx context.Context, req *entities.AppointmentRequest) (int, string, error) {
	if len(req.ServiceIDs) == 0 {
		return DefaultAppointmentDuration, "", nil
	}
	services, err := s.Catalog.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		return 0, "", err
	}
	if len(services) != len(req.ServiceIDs) {
		return 0, "", apperrors.ErrBadRequest("one or more selected services do not exist")
	}

	total := 0
	names := make([]string, 0, len(services))
	for _, sv := range services {
		total += sv.DurationMinutes
		if req.Language == "el" {
			names = append(names, sv.NameEL)
		} else {
			names = append(names, sv.NameEN)
		}
	}
	if total <= 0 {
		total = DefaultAppointmentDuration
	}
	return total, strings.Join(names, ", "), nil
}

func (s *AppointmentService) GetAppointmentByCode(ctx context.Context, code, email string) (*entities.AppointmentResponse, error) {
	appointment, err := s.Repo.GetByCode(ctx, code, email)
	if err != nil {
		return nil, apperrors.ErrNotFound("appointment not found")
	}
	resp := s.toResponse(appointment)
	return &resp, nil
}

func (s *AppointmentService) CancelAppointment(ctx context.Context, code string) error {
	appointment, err := s.Repo.GetByCodeOnly(ctx, code)
	if err != nil {
		return apperrors.ErrNotFound("appointment not found")
	}
	if appointment.Status == statusCancelled {
		return apperrors.ErrConflict("appointment is already cancelled")
	}

	startAt, err := schedule.ParseTimeOfDay(appointment.StartTime)
	if err == nil {
		start := startAt.On(appointment.AppointmentDate, s.loc)
		if time.Until(start) < cancelNoticePeriod {
			return apperrors.ErrConflict("appointments can only be cancelled more than 2 hours before the start time")
		}
	}

	if _, err := s.Repo.UpdateStatus(ctx, code, statusCancelled); err != nil {
		s.log.Error("error cancelling appointment", zap.String("code", code), zap.Error(err))
		return err
	}

	appointment.Status = statusCancelled
	resp := s.toResponse(appointment)
	translated := statusTranslation(statusCancelled, resp.Language)
	s.Sender.SendAppointmentEmail(resp, translated)
	s.Sender.SendAppointmentSMS(resp, translated)
	return nil
}

// ConfirmAppointment is the admin action that turns a pending booking into a
// confirmed one and notifies the customer.
func (s *AppointmentService) ConfirmAppointment(ctx context.Context, code string) error {
	appointment, err := s.Repo.GetByCodeOnly(ctx, code)
	if err != nil {
		return apperrors.ErrNotFound("appointment not found")
	}
	if appointment.Status != statusPending {
		return apperrors.ErrConflict("only pending appointments can be confirmed")
	}

	if _, err := s.Repo.UpdateStatus(ctx, code, statusConfirmed); err != nil {
		s.log.Error("error confirming appointment", zap.String("code", code), zap.Error(err))
		return err
	}

	appointment.Status = statusConfirmed
	resp := s.toResponse(appointment)
	translated := statusTranslation(statusConfirmed, resp.Language)
	s.Sender.SendAppointmentEmail(resp, translated)
	s.Sender.SendAppointmentSMS(resp, translated)
	return nil
}

func (s *AppointmentService) ListAppointments(ctx context.Context, date, status string) (*entities.AppointmentsList, error) {
	appointments, err := s.Repo.List(ctx, date, status)
	if err != nil {
		return nil, err
	}
	list := &entities.AppointmentsList{
		Total:        len(appointments),
		Appointments: make([]entities.AppointmentResponse, 0, len(appointments)),
	}
	for i := range appointments {
		list.Appointments = append(list.Appointments, s.toResponse(&appointments[i]))
	}
	return list, nil
}

func (s *AppointmentService) toResponse(a *db.Appointment) entities.AppointmentResponse {
	return entities.AppointmentResponse{
		Code:            a.Code,
		CustomerName:    a.CustomerName,
		CustomerEmail:   a.CustomerEmail,
		CustomerPhone:   a.CustomerPhone,
		Date:            a.AppointmentDate.Format("2006-01-02"),
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		ServiceNames:    a.ServiceNames,
		Status:          a.Status,
		Language:        a.Language,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
