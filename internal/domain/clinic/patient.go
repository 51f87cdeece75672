package clinic

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/clinic/frontdesk/internal/platform/temporal"
)

const (
	MinNameLength = 5
	MinAge        = 13
)

// Patient is an immutable registration record. The registry hands out
// copies; changing a copy never affects the registry.
type Patient struct {
	ID        string    `json:"cpf"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
}

// Age returns the patient's age in whole years at now.
func (p Patient) Age(now time.Time) int {
	return AgeOn(p.BirthDate, now)
}

// AgeOn returns the number of whole years between birth and now.
func AgeOn(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// ValidateName rejects names shorter than MinNameLength characters.
func ValidateName(name string) error {
	if utf8.RuneCountInString(name) < MinNameLength {
		return ErrInvalidName
	}
	return nil
}

// ValidateBirthDate rejects a missing date and patients younger than MinAge
// at now.
func ValidateBirthDate(birth, now time.Time) error {
	if birth.IsZero() {
		return temporal.ErrUnparseable
	}
	if AgeOn(birth, now) < MinAge {
		return fmt.Errorf("%w: born %s", ErrUnderage, temporal.FormatDate(birth))
	}
	return nil
}
