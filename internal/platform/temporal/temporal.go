// Package temporal parses and validates the calendar dates and times of day
// used for booking: business hours, 15-minute granularity and ordering.
package temporal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted at the input boundary.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// Business hours, as [OpeningHour, ClosingHour).
const (
	OpeningHour = 8
	ClosingHour = 19
	Granularity = 15
)

var (
	ErrUnparseable          = errors.New("invalid value")
	ErrOutsideBusinessHours = errors.New("opening hours are between 8h and 19h")
	ErrNotAfterPrior        = errors.New("time must be after the start time")
	ErrBadGranularity       = errors.New("time must be in 15 minute steps")
	ErrBeforePrior          = errors.New("date must not be before the start date")
	ErrInPast               = errors.New("date must not be in the past")
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// Now implements Clock.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// TimeOfDay is an hour and minute without a date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// At builds a TimeOfDay without validation.
func At(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// Valid reports whether the value is a real clock time.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// After compares hour first, then minute. Equal times are not after.
func (t TimeOfDay) After(o TimeOfDay) bool {
	if t.Hour != o.Hour {
		return t.Hour > o.Hour
	}
	return t.Minute > o.Minute
}

// Sub returns the duration from o to t.
func (t TimeOfDay) Sub(o TimeOfDay) time.Duration {
	return time.Duration((t.Hour*60+t.Minute)-(o.Hour*60+o.Minute)) * time.Minute
}

// On places the time of day on date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTime parses HH:mm.
func ParseTime(raw string) (TimeOfDay, error) {
	parsed, err := time.Parse(TimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: time %q", ErrUnparseable, raw)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// ParseDate parses dd/MM/yyyy as midnight in loc. A nil loc means UTC.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrUnparseable, raw)
	}
	return parsed, nil
}

// FormatDate renders a date as dd/MM/yyyy.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOptions tunes ValidateDate.
type DateOptions struct {
	// OnlyBasic skips the not-in-the-past check, for report ranges.
	OnlyBasic bool
	// Prior, when set, is the earliest acceptable date.
	Prior *time.Time
}

// Validator holds the clock used for checks relative to "now".
type Validator struct {
	Clock Clock
}

// NewValidator creates a Validator reading from clock.
func NewValidator(clock Clock) *Validator {
	return &Validator{Clock: clock}
}

// ValidateTimeOfDay checks that t is a real time inside business hours, on a
// 15-minute boundary and, when prior is given, strictly after prior.
func (v *Validator) ValidateTimeOfDay(t TimeOfDay, prior *TimeOfDay) error {
	if !t.Valid() {
		return ErrUnparseable
	}
	if t.Hour < OpeningHour || t.Hour >= ClosingHour {
		return ErrOutsideBusinessHours
	}
	if prior != nil && !t.After(*prior) {
		return ErrNotAfterPrior
	}
	if t.Minute%Granularity != 0 {
		return ErrBadGranularity
	}
	return nil
}

// ValidateDate checks date against opts. Unless OnlyBasic is set the date,
// taken as an instant at its midnight, must not be before now.
func (v *Validator) ValidateDate(date time.Time, opts DateOptions) error {
	if date.IsZero() {
		return ErrUnparseable
	}
	if opts.Prior != nil && date.Before(*opts.Prior) {
		return ErrBeforePrior
	}
	if opts.OnlyBasic {
		return nil
	}
	if date.Before(v.Clock.Now()) {
		return ErrInPast
	}
	return nil
}
