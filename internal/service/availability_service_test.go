package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kommotirio/internal/db"
	"kommotirio/internal/entities"
	"kommotirio/internal/schedule"
)

// March 2026: the 1st is a Sunday, so the 3rd is an open Tuesday and the
// 4th a Wednesday with the 18:00 early close.
var (
	testSunday    = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	testTuesday   = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	testWednesday = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
)

type fakeBlockStore struct {
	blocks []db.BlockedSlot
	err    error
}

func (f *fakeBlockStore) ListCoveringDate(ctx context.Context, date string) ([]db.BlockedSlot, error) {
	return f.blocks, f.err
}

type fakeAppointmentStore struct {
	byDate map[string][]db.Appointment
	err    error
}

func (f *fakeAppointmentStore) ListActiveForDate(ctx context.Context, date string) ([]db.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate[date], nil
}

func newTestAvailability(blocks *fakeBlockStore, appointments *fakeAppointmentStore) *AvailabilityService {
	if blocks == nil {
		blocks = &fakeBlockStore{}
	}
	if appointments == nil {
		appointments = &fakeAppointmentStore{}
	}
	return NewAvailabilityService(schedule.DefaultBusinessHours(), blocks, appointments, zap.NewNop())
}

func timedBlock(from, to string) db.BlockedSlot {
	return db.BlockedSlot{
		StartDate: testSunday,
		EndDate:   testSunday.AddDate(0, 1, 0),
		StartTime: sql.NullString{String: from, Valid: true},
		EndTime:   sql.NullString{String: to, Valid: true},
	}
}

func slotByTime(t *testing.T, slots []entities.TimeSlot, at string) entities.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("slot %s not found", at)
	return entities.TimeSlot{}
}

func TestCheckAvailabilityRejectsNonPositiveDuration(t *testing.T) {
	svc := newTestAvailability(nil, nil)

	_, err := svc.CheckAvailability(context.Background(), testTuesday, 0)
	assert.Error(t, err)
	_, err = svc.CheckAvailability(context.Background(), testTuesday, -30)
	assert.Error(t, err)
}

func TestCheckAvailabilityClosedDay(t *testing.T) {
	svc := newTestAvailability(nil, nil)

	slots, err := svc.CheckAvailability(context.Background(), testSunday, 30)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "00:00", slots[0].Time)
	assert.False(t, slots[0].Available)
	assert.Equal(t, entities.ReasonClosed, slots[0].Reason)
}

func TestCheckAvailabilityOpenDayNoConflicts(t *testing.T) {
	svc := newTestAvailability(nil, nil)

	slots, err := svc.CheckAvailability(context.Background(), testTuesday, 30)
	require.NoError(t, err)
	require.Len(t, slots, 22)
	for _, s := range slots {
		assert.True(t, s.Available, "slot %s should be available", s.Time)
		assert.Empty(t, s.Reason)
	}
}

func TestCheckAvailabilityBlockHalfOpenBoundary(t *testing.T) {
	blocks := &fakeBlockStore{blocks: []db.BlockedSlot{timedBlock("12:00", "13:00")}}
	svc := newTestAvailability(blocks, nil)

	slots, err := svc.CheckAvailability(context.Background(), testTuesday, 30)
	require.NoError(t, err)

	noon := slotByTime(t, slots, "12:00")
	assert.False(t, noon.Available)
	assert.Equal(t, entities.ReasonBlocked, noon.Reason)

	half := slotByTime(t, slots, "12:30")
	assert.False(t, half.Available)
	assert.Equal(t, entities.ReasonBlocked, half.Reason)

	// A slot starting exactly at the block's end is not blocked.
	after := slotByTime(t, slots, "13:00")
	assert.True(t, after.Available)
}

func TestCheckAvailabilityDateOnlyBlockIsNoOp(t *testing.T) {
	blocks := &fakeBlockStore{blocks: []db.BlockedSlot{{
		StartDate: testSunday,
		EndDate:   testSunday.AddDate(0, 1, 0),
	}}}
	svc := newTestAvailability(blocks, nil)

	slots, err := svc.CheckAvailability(context.Background(), testTuesday, 30)
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestCheckAvailabilityMalformedBlockIgnored(t *testing.T) {
	blocks := &fakeBlockStore{blocks: []db.BlockedSlot{
		timedBlock("not-a-time", "13:00"),
		timedBlock("12:00", "also-bad"),
	}}
	svc := newTestAvailability(blocks, nil)

	slots, err := svc.CheckAvailability(context.Background(), testTuesday, 30)
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestCheckAvailabilityAppointmentOverlap(t *testing.T) {
	appointments := &fakeAppointmentStore{byDate: map[string][]db.Appointment{
		"2026-03-03": {{StartTime: "10:00", DurationMinutes: 60, Status: "confirmed"}},
	}}
	svc := newTestAvailability(nil, appointments)

	slots, err := svc.CheckAvailability(context.Background(), testTuesday, 30)
	require.NoError(t, err)

	// Ends exactly when the appointment starts: no overlap.
	assert.True(t, slotByTime(t, slots, "09:30").Available)

	ten := slotByTime(t, slots, "10:00")
	assert.False(t, ten.Available)
	assert.Equal(t, entities.ReasonBooked, ten.Reason)

	half := slotByTime(t, slots, "10:30")
	assert.False(t, half.Available)
	assert.Equal(t, entities.ReasonBooked, half.Reason)

	// Starts exactly when the appointment ends: no overlap.
	assert.True(t, slotByTime(t, slots, "11:00").Available)
}

func TestConflictsWithAppointmentOffGridStart(t *testing.T) {
	appointments := []db.Appointment{{StartTime: "10:00", DurationMinutes: 60}}

	nineFortyFive := schedule.TimeOfDay(9*60 + 45)
	assert.True(t, conflictsWithAppointment(appointments, nineFortyFive, 30))

	nineThirty := schedule.TimeOfDay(9*60 + 30)
	assert.False(t, conflictsWithAppointment(appointments, nineThirty, 30))

	eleven := schedule.TimeOfDay(11 * 60)
	assert.False(t, conflictsWithAppointment(appointments, eleven, 30))
}

func TestConflictsWithAppointmentDefaultsDuration(t *testing.T) {
	// Zero stored duration falls back to 60 minutes.
	appointments := []db.Appointment{{StartTime: "10:00"}}

	assert.True(t, conflictsWithAppointment(appointments, schedule.TimeOfDay(10*60+30), 30))
	assert.False(t, conflictsWithAppointment(appointments, schedule.TimeOfDay(11*60), 30))
}

func TestCheckAvailabilityDoesNotFitBeforeClose(t *testing.T) {
	svc := newTestAvailability(nil, nil)

	slots, err := svc.CheckAvailability(context.Background(), testWednesday, 90)
	require.NoError(t, err)

	// Wednesday closes at 18:00; a 90-minute service at 17:00 runs past it.
	five := slotByTime(t, slots, "17:00")
	assert.False(t, five.Available)
	assert.Equal(t, entities.ReasonNoFit, five.Reason)

	// 16:30 + 90 minutes ends exactly at close and still fits.
	assert.True(t, slotByTime(t, slots, "16:30").Available)

	shorter, err := svc.CheckAvailability(context.Background(), testWednesday, 60)
	require.NoError(t, err)
	assert.True(t, slotByTime(t, shorter, "17:00").Available)
}

func TestCheckAvailabilityBlockReasonWins(t *testing.T) {
	blocks := &fakeBlockStore{blocks: []db.BlockedSlot{timedBlock("10:00", "11:00")}}
	appointments := &fakeAppointmentStore{byDate: map[string][]db.Appointment{
		"2026-03-03": {{StartTime: "10:00", DurationMinutes: 60}},
	}}
	svc := newTestAvailability(blocks, appointments)

	slots, err := svc.CheckAvailability(context.Background(), testTuesday, 30)
	require.NoError(t, err)

	ten := slotByTime(t, slots, "10:00")
	assert.False(t, ten.Available)
	assert.Equal(t, entities.ReasonBlocked, ten.Reason)
}

func TestCheckAvailabilityFailsOpenOnStoreErrors(t *testing.T) {
	blocks := &fakeBlockStore{err: errors.New("blocked store down")}
	appointments := &fakeAppointmentStore{err: errors.New("appointment store down")}
	svc := newTestAvailability(blocks, appointments)

	slots, err := svc.CheckAvailability(context.Background(), testTuesday, 30)
	require.NoError(t, err)
	require.Len(t, slots, 22)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestCheckAvailabilityFailsOpenPerStore(t *testing.T) {
	blocks := &fakeBlockStore{err: errors.New("blocked store down")}
	appointments := &fakeAppointmentStore{byDate: map[string][]db.Appointment{
		"2026-03-03": {{StartTime: "10:00", DurationMinutes: 60}},
	}}
	svc := newTestAvailability(blocks, appointments)

	slots, err := svc.CheckAvailability(context.Background(), testTuesday, 30)
	require.NoError(t, err)

	// Appointment data still applies even though blocks failed.
	assert.False(t, slotByTime(t, slots, "10:00").Available)
	assert.True(t, slotByTime(t, slots, "09:00").Available)
}

func TestCheckAvailabilityIdempotent(t *testing.T) {
	blocks := &fakeBlockStore{blocks: []db.BlockedSlot{timedBlock("12:00", "14:00")}}
	appointments := &fakeAppointmentStore{byDate: map[string][]db.Appointment{
		"2026-03-03": {{StartTime: "09:00", DurationMinutes: 90}},
	}}
	svc := newTestAvailability(blocks, appointments)

	first, err := svc.CheckAvailability(context.Background(), testTuesday, 45)
	require.NoError(t, err)
	second, err := svc.CheckAvailability(context.Background(), testTuesday, 45)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindNextAvailableSlotSkipsClosedDays(t *testing.T) {
	svc := newTestAvailability(nil, nil)

	// Starting on a closed Sunday, the first open day is Tuesday.
	slot, err := svc.FindNextAvailableSlot(context.Background(), testSunday, 60, 0)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, "2026-03-03", slot.Date)
	assert.Equal(t, "09:00", slot.Time)
}

func TestFindNextAvailableSlotSkipsBookedMorning(t *testing.T) {
	appointments := &fakeAppointmentStore{byDate: map[string][]db.Appointment{
		"2026-03-03": {{StartTime: "09:00", DurationMinutes: 120}},
	}}
	svc := newTestAvailability(nil, appointments)

	slot, err := svc.FindNextAvailableSlot(context.Background(), testTuesday, 30, 0)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, "2026-03-03", slot.Date)
	assert.Equal(t, "11:00", slot.Time)
}

func TestFindNextAvailableSlotNeverBeforeStart(t *testing.T) {
	svc := newTestAvailability(nil, nil)

	slot, err := svc.FindNextAvailableSlot(context.Background(), testTuesday, 30, 5)
	require.NoError(t, err)
	require.NotNil(t, slot)
	got, err := time.Parse("2006-01-02", slot.Date)
	require.NoError(t, err)
	assert.False(t, got.Before(testTuesday))
}

func TestFindNextAvailableSlotHorizonExhausted(t *testing.T) {
	hours := schedule.BusinessHours{
		Open:         9 * 60,
		Close:        20 * 60,
		SlotInterval: 30,
		ClosedWeekdays: map[time.Weekday]bool{
			time.Sunday: true, time.Monday: true, time.Tuesday: true, time.Wednesday: true,
			time.Thursday: true, time.Friday: true, time.Saturday: true,
		},
	}
	svc := NewAvailabilityService(hours, &fakeBlockStore{}, &fakeAppointmentStore{}, zap.NewNop())

	slot, err := svc.FindNextAvailableSlot(context.Background(), testSunday, 30, 14)
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestFindNextAvailableSlotRejectsNonPositiveDuration(t *testing.T) {
	svc := newTestAvailability(nil, nil)

	_, err := svc.FindNextAvailableSlot(context.Background(), testTuesday, 0, 14)
	assert.Error(t, err)
}
