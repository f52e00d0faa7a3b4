package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"kommotirio/internal/db"
	"kommotirio/internal/entities"
	apperrors "kommotirio/internal/errors"
	"kommotirio/internal/schedule"
)

const (
	// DefaultSearchHorizonDays bounds the next-available look-ahead.
	DefaultSearchHorizonDays = 14
	// DefaultAppointmentDuration is assumed when a stored appointment
	// carries no usable duration.
	DefaultAppointmentDuration = 60

	dateLayout = "2006-01-02"
)

// BlockedSlotStore and AppointmentStore are the two read-only collaborators
// of the availability engine. Dates are YYYY-MM-DD.
type BlockedSlotStore interface {
	ListCoveringDate(ctx context.Context, date string) ([]db.BlockedSlot, error)
}

type AppointmentStore interface {
	ListActiveForDate(ctx context.Context, date string) ([]db.Appointment, error)
}

type AvailabilityService struct {
	hours        schedule.BusinessHours
	blocks       BlockedSlotStore
	appointments AppointmentStore
	log          *zap.Logger
}

func NewAvailabilityService(hours schedule.BusinessHours, blocks BlockedSlotStore, appointments AppointmentStore, log *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		hours:        hours,
		blocks:       blocks,
		appointments: appointments,
		log:          log,
	}
}

// CandidateSlots exposes the raw slot grid for a date, before any
// block/appointment resolution.
func (s *AvailabilityService) CandidateSlots(date time.Time) []schedule.TimeOfDay {
	return s.hours.CandidateSlots(date)
}

// CheckAvailability returns one verdict per candidate slot for the date. A
// fully closed day yields a single sentinel 00:00 slot. Each unavailable
// slot carries exactly one reason; blocks win over appointment conflicts,
// which win over the not-fitting-before-close check.
//
// Store reads run concurrently and fail open: if one store errors, its
// records are treated as absent so the booking page keeps working.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, date time.Time, durationMinutes int) ([]entities.TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, apperrors.ErrBadRequest("duration must be a positive number of minutes")
	}

	candidates := s.hours.CandidateSlots(date)
	if len(candidates) == 0 {
		return []entities.TimeSlot{
			{Time: schedule.TimeOfDay(0).String(), Available: false, Reason: entities.ReasonClosed},
		}, nil
	}

	day := date.Format(dateLayout)

	var (
		wg           sync.WaitGroup
		blocked      []db.BlockedSlot
		appointments []db.Appointment
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		res, err := s.blocks.ListCoveringDate(ctx, day)
		if err != nil {
			s.log.Warn("blocked slots unavailable, treating day as unblocked",
				zap.String("date", day), zap.Error(err))
			return
		}
		blocked = res
	}()
	go func() {
		defer wg.Done()
		res, err := s.appointments.ListActiveForDate(ctx, day)
		if err != nil {
			s.log.Warn("appointments unavailable, treating day as unbooked",
				zap.String("date", day), zap.Error(err))
			return
		}
		appointments = res
	}()
	wg.Wait()

	closeAt := s.hours.CloseFor(date.Weekday())

	slots := make([]entities.TimeSlot, 0, len(candidates))
	for _, start := range candidates {
		slot := entities.TimeSlot{Time: start.String(), Available: true}
		switch {
		case isBlocked(blocked, start):
			slot.Available = false
			slot.Reason = entities.ReasonBlocked
		case conflictsWithAppointment(appointments, start, durationMinutes):
			slot.Available = false
			slot.Reason = entities.ReasonBooked
		case start.Add(durationMinutes) > closeAt:
			slot.Available = false
			slot.Reason = entities.ReasonNoFit
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// FindNextAvailableSlot walks forward day by day from startDate and returns
// the first (date, time) with a free slot, or nil when the horizon is
// exhausted. Exhaustion is an expected outcome, not an error.
func (s *AvailabilityService) FindNextAvailableSlot(ctx context.Context, startDate time.Time, durationMinutes, horizonDays int) (*entities.NextAvailableSlot, error) {
	if durationMinutes <= 0 {
		return nil, apperrors.ErrBadRequest("duration must be a positive number of minutes")
	}
	if horizonDays <= 0 {
		horizonDays = DefaultSearchHorizonDays
	}

	for i := 0; i < horizonDays; i++ {
		date := startDate.AddDate(0, 0, i)
		slots, err := s.CheckAvailability(ctx, date, durationMinutes)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			if slot.Available {
				return &entities.NextAvailableSlot{
					Date: date.Format(dateLayout),
					Time: slot.Time,
				}, nil
			}
		}
	}
	return nil, nil
}

// isBlocked reports whether a candidate start falls inside an admin block.
// Blocks are half-open on the end bound: a slot starting exactly at the
// block's end time is not blocked. A block missing either time bound never
// matches, so a date-only block does not restrict any slot.
func isBlocked(blocks []db.BlockedSlot, start schedule.TimeOfDay) bool {
	for _, b := range blocks {
		if !b.StartTime.Valid || !b.EndTime.Valid {
			continue
		}
		from, err := schedule.ParseTimeOfDay(b.StartTime.String)
		if err != nil {
			continue
		}
		to, err := schedule.ParseTimeOfDay(b.EndTime.String)
		if err != nil {
			continue
		}
		if start >= from && start < to {
			return true
		}
	}
	return false
}

// conflictsWithAppointment reports whether [start, start+duration) overlaps
// any active appointment's occupied interval, both half-open.
func conflictsWithAppointment(appointments []db.Appointment, start schedule.TimeOfDay, durationMinutes int) bool {
	end := start.Add(durationMinutes)
	for _, a := range appointments {
		apptStart, err := schedule.ParseTimeOfDay(a.StartTime)
		if err != nil {
			continue
		}
		duration := a.DurationMinutes
		if duration <= 0 {
			duration = DefaultAppointmentDuration
		}
		apptEnd := apptStart.Add(duration)
		if start < apptEnd && apptStart < end {
			return true
		}
	}
	return false
}
