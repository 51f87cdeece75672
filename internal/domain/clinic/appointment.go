package clinic

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinic/frontdesk/internal/platform/temporal"
)

// Slot is one contiguous time range on a single day. It can only be built
// through NewSlot, so every Slot in the engine has passed the temporal
// checks.
type Slot struct {
	date  time.Time
	start temporal.TimeOfDay
	end   temporal.TimeOfDay
}

// NewSlot validates start and end against business hours and granularity,
// requires end strictly after start, and requires a parseable date. Whether
// the date may lie in the past is the booking caller's decision.
func NewSlot(v *temporal.Validator, date time.Time, start, end temporal.TimeOfDay) (Slot, error) {
	if err := v.ValidateDate(date, temporal.DateOptions{OnlyBasic: true}); err != nil {
		return Slot{}, err
	}
	if err := v.ValidateTimeOfDay(start, nil); err != nil {
		return Slot{}, err
	}
	if err := v.ValidateTimeOfDay(end, &start); err != nil {
		return Slot{}, err
	}
	return Slot{date: temporal.Midnight(date), start: start, end: end}, nil
}

func (s Slot) Date() time.Time               { return s.date }
func (s Slot) StartTime() temporal.TimeOfDay { return s.start }
func (s Slot) EndTime() temporal.TimeOfDay   { return s.end }

// Start is the instant the slot begins.
func (s Slot) Start() time.Time { return s.start.On(s.date) }

// End is the instant the slot ends.
func (s Slot) End() time.Time { return s.end.On(s.date) }

// Duration is the length of the slot.
func (s Slot) Duration() time.Duration { return s.end.Sub(s.start) }

// Appointment is a booked slot. ID only identifies the booking in logs and
// reports; the scheduler addresses appointments by position.
type Appointment struct {
	ID   uuid.UUID
	Slot Slot
}

// IsFuture reports whether the appointment starts strictly after now.
func (a Appointment) IsFuture(now time.Time) bool {
	return a.Slot.Start().After(now)
}

// Booking pairs an appointment with its patient for schedule listings.
type Booking struct {
	Appointment Appointment
	Patient     Patient
}
