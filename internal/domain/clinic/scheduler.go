package clinic

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/frontdesk/internal/platform/temporal"
)

// State is a patient's position in the booking lifecycle.
type State int

const (
	// StateEmpty: no appointment history.
	StateEmpty State = iota
	// StateHasActive: the latest appointment is still in the future.
	StateHasActive
	// StateHasExpiredOnly: history exists, all of it in the past.
	StateHasExpiredOnly
)

func (s State) String() string {
	switch s {
	case StateHasActive:
		return "has-active"
	case StateHasExpiredOnly:
		return "has-expired-only"
	default:
		return "empty"
	}
}

// Scheduler keeps each patient's appointments in booking order. Only the
// last appointment may be in the future, so it doubles as the active one.
type Scheduler struct {
	registry *Registry
	entries  map[string][]Appointment
	clock    temporal.Clock
}

func newScheduler(registry *Registry, clock temporal.Clock) *Scheduler {
	return &Scheduler{
		registry: registry,
		entries:  make(map[string][]Appointment),
		clock:    clock,
	}
}

// State derives the patient's lifecycle state at the current instant.
func (s *Scheduler) State(patientID string) State {
	entry := s.entries[patientID]
	if len(entry) == 0 {
		return StateEmpty
	}
	if entry[len(entry)-1].IsFuture(s.clock.Now()) {
		return StateHasActive
	}
	return StateHasExpiredOnly
}

// HasActiveAppointment reports whether the patient's latest appointment is
// in the future. Patients without history report false.
func (s *Scheduler) HasActiveAppointment(patientID string) bool {
	return s.State(patientID) == StateHasActive
}

// Latest returns the most recently booked appointment.
func (s *Scheduler) Latest(patientID string) (Appointment, error) {
	entry := s.entries[patientID]
	if len(entry) == 0 {
		return Appointment{}, ErrNoScheduleEntry
	}
	return entry[len(entry)-1], nil
}

// History returns a copy of the patient's appointments in booking order.
func (s *Scheduler) History(patientID string) []Appointment {
	entry := s.entries[patientID]
	out := make([]Appointment, len(entry))
	copy(out, entry)
	return out
}

// Book appends slot to the patient's history. A patient with a future
// appointment must cancel it first.
func (s *Scheduler) Book(patientID string, slot Slot) (Appointment, error) {
	if !s.registry.Contains(patientID) {
		return Appointment{}, ErrPatientNotFound
	}
	if s.HasActiveAppointment(patientID) {
		return Appointment{}, ErrAlreadyScheduled
	}

	appt := Appointment{ID: uuid.New(), Slot: slot}
	s.entries[patientID] = append(s.entries[patientID], appt)
	return appt, nil
}

// CancelLatest removes the patient's future appointment, which is always
// the last one booked.
func (s *Scheduler) CancelLatest(patientID string) error {
	if !s.HasActiveAppointment(patientID) {
		return ErrNoActiveAppointment
	}
	entry := s.entries[patientID]
	entry = entry[:len(entry)-1]
	if len(entry) == 0 {
		delete(s.entries, patientID)
		return nil
	}
	s.entries[patientID] = entry
	return nil
}

// FindCancelable resolves the patient whose latest appointment can be
// cancelled. When the latest appointment has exactly the given date and
// start time it returns ErrAlreadyMatchesLatest and no handle; callers treat
// that as "found, nothing to do".
func (s *Scheduler) FindCancelable(patientID string, date time.Time, start temporal.TimeOfDay) (string, error) {
	if !s.registry.Contains(patientID) {
		return "", ErrPatientNotFound
	}
	latest, err := s.Latest(patientID)
	if err != nil {
		return "", ErrNoAppointments
	}
	if temporal.SameDay(latest.Slot.Date(), date) && latest.Slot.StartTime() == start {
		return "", ErrAlreadyMatchesLatest
	}
	if !latest.IsFuture(s.clock.Now()) {
		return "", ErrNoFutureAppointment
	}
	return patientID, nil
}

// ListInRange returns every appointment whose date falls within
// [start, end], ordered by start instant.
func (s *Scheduler) ListInRange(start, end time.Time) []Booking {
	from := temporal.Midnight(start)
	to := temporal.Midnight(end)

	var out []Booking
	for patientID, entry := range s.entries {
		patient, ok := s.registry.Get(patientID)
		if !ok {
			continue
		}
		for _, appt := range entry {
			day := appt.Slot.Date()
			if day.Before(from) || day.After(to) {
				continue
			}
			out = append(out, Booking{Appointment: appt, Patient: patient})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Appointment.Slot.Start(), out[j].Appointment.Slot.Start()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return out[i].Patient.ID < out[j].Patient.ID
	})
	return out
}

func (s *Scheduler) forget(patientID string) {
	delete(s.entries, patientID)
}
