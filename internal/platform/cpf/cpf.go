// Package cpf validates the 11-digit Brazilian taxpayer number used as the
// patient identifier. The number carries two Modulo-11 check digits.
package cpf

import (
	"errors"
	"fmt"
)

// Length is the number of digits in a CPF.
const Length = 11

// Rejection reasons returned by Validate.
var (
	ErrDuplicate   = errors.New("CPF already registered")
	ErrBadLength   = errors.New("CPF must have 11 digits")
	ErrBlacklisted = errors.New("invalid CPF")
	ErrBadChecksum = errors.New("invalid CPF check digits")
)

// Lookup reports whether an identifier is already taken.
type Lookup interface {
	Contains(id string) bool
}

// Set is a Lookup backed by a map, for callers without a registry.
type Set map[string]struct{}

// Contains implements Lookup.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Validate accepts candidate when it is not taken in existing, has 11
// digits that are not all the same, and both check digits match. A nil
// existing is treated as empty.
func Validate(candidate string, existing Lookup) error {
	if existing != nil && existing.Contains(candidate) {
		return ErrDuplicate
	}
	if len(candidate) != Length {
		return ErrBadLength
	}
	if allSame(candidate) {
		return ErrBlacklisted
	}
	for i := 0; i < Length; i++ {
		if candidate[i] < '0' || candidate[i] > '9' {
			return ErrBadChecksum
		}
	}
	if CheckDigit(candidate, 1) != digit(candidate[9]) {
		return ErrBadChecksum
	}
	if CheckDigit(candidate, 2) != digit(candidate[10]) {
		return ErrBadChecksum
	}
	return nil
}

// CheckDigit computes check digit 1 (position 9) or 2 (position 10) from
// the leading digits of id. id must hold at least 9 or 10 decimal digits
// respectively.
func CheckDigit(id string, which int) int {
	digits := 9
	if which == 2 {
		digits = 10
	}
	sum := 0
	for i := 0; i < digits; i++ {
		sum += digit(id[i]) * (digits + 1 - i)
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

// Format renders a valid-length CPF as 000.000.000-00. Other inputs are
// returned unchanged.
func Format(id string) string {
	if len(id) != Length {
		return id
	}
	return fmt.Sprintf("%s.%s.%s-%s", id[0:3], id[3:6], id[6:9], id[9:11])
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func digit(b byte) int {
	return int(b - '0')
}
