package schedule

import "time"

// BusinessHours describes the salon's weekly opening calendar. The value is
// built once at startup (or in tests) and never mutated afterwards.
type BusinessHours struct {
	Open           TimeOfDay
	Close          TimeOfDay
	SlotInterval   int // minutes between candidate start times
	ClosedWeekdays map[time.Weekday]bool
	SpecialClosing map[time.Weekday]TimeOfDay
}

// DefaultBusinessHours returns the salon's regular calendar: open 09:00-20:00,
// closed Sunday and Monday, early close at 18:00 on Wednesday and Saturday.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Open:         9 * 60,
		Close:        20 * 60,
		SlotInterval: 30,
		ClosedWeekdays: map[time.Weekday]bool{
			time.Sunday: true,
			time.Monday: true,
		},
		SpecialClosing: map[time.Weekday]TimeOfDay{
			time.Wednesday: 18 * 60,
			time.Saturday:  18 * 60,
		},
	}
}

// IsClosed reports whether the salon is closed for the whole weekday.
func (h BusinessHours) IsClosed(day time.Weekday) bool {
	return h.ClosedWeekdays[day]
}

// CloseFor returns the effective closing time for the weekday,
// applying the early-closing override where one exists.
func (h BusinessHours) CloseFor(day time.Weekday) TimeOfDay {
	if c, ok := h.SpecialClosing[day]; ok {
		return c
	}
	return h.Close
}

// CandidateSlots returns the ordered candidate start times for the date:
// every SlotInterval minutes from Open, strictly before the effective close.
// A closed weekday yields no slots. Whether a requested duration still fits
// before closing is the caller's concern, not the generator's.
func (h BusinessHours) CandidateSlots(date time.Time) []TimeOfDay {
	if h.SlotInterval <= 0 {
		return nil
	}
	day := date.Weekday()
	if h.IsClosed(day) {
		return nil
	}
	closeAt := h.CloseFor(day)

	var slots []TimeOfDay
	for t := h.Open; t < closeAt; t = t.Add(h.SlotInterval) {
		slots = append(slots, t)
	}
	return slots
}
