package clinic

import "errors"

// Registry errors.
var (
	ErrInvalidIdentifier    = errors.New("invalid patient identifier")
	ErrDuplicateIdentifier  = errors.New("patient identifier already registered")
	ErrInvalidName          = errors.New("name must have at least 5 characters")
	ErrUnderage             = errors.New("patient must be at least 13 years old")
	ErrNotFound             = errors.New("patient not found")
	ErrHasActiveAppointment = errors.New("patient has a scheduled appointment")
)

// Scheduler errors and outcomes.
var (
	ErrPatientNotFound      = errors.New("patient not registered")
	ErrAlreadyScheduled     = errors.New("patient is already scheduled")
	ErrNoActiveAppointment  = errors.New("patient has no future appointment")
	ErrNoScheduleEntry      = errors.New("patient has no appointments")
	ErrNoAppointments       = errors.New("no appointments scheduled")
	ErrAlreadyMatchesLatest = errors.New("appointment found")
	ErrNoFutureAppointment  = errors.New("no future appointments found")
)
