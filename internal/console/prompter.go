// Package console is the interactive front end: it reads operator input,
// re-prompts until the engine's validators accept each field, and drives
// the clinic menus.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/clinic/frontdesk/internal/domain/clinic"
	"github.com/clinic/frontdesk/internal/platform/cpf"
	"github.com/clinic/frontdesk/internal/platform/temporal"
)

// Prompter reads one field at a time, looping until the value is accepted.
// It returns io.EOF when input ends before a value is accepted.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	clinic *clinic.Clinic
}

// NewPrompter creates a Prompter validating against c.
func NewPrompter(in io.Reader, out io.Writer, c *clinic.Clinic) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, clinic: c}
}

// Line prints label and returns the next input line without its newline.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Alert reports a rejection to the operator.
func (p *Prompter) Alert(err error) {
	fmt.Fprintf(p.out, "Error: %s\n\n", err)
}

// Say prints an informational line.
func (p *Prompter) Say(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// NewCPF reads an identifier that is valid and not yet in taken.
func (p *Prompter) NewCPF(taken cpf.Lookup) (string, error) {
	for {
		raw, err := p.Line("CPF: ")
		if err != nil {
			return "", err
		}
		id := strings.TrimSpace(raw)
		if err := cpf.Validate(id, taken); err != nil {
			p.Alert(err)
			continue
		}
		return id, nil
	}
}

// RegisteredCPF reads identifiers until one belongs to a registered patient.
func (p *Prompter) RegisteredCPF() (string, error) {
	for {
		raw, err := p.Line("CPF: ")
		if err != nil {
			return "", err
		}
		id := strings.TrimSpace(raw)
		if p.clinic.Patients.Contains(id) {
			return id, nil
		}
		p.Alert(clinic.ErrPatientNotFound)
	}
}

// Name reads a patient name of acceptable length.
func (p *Prompter) Name() (string, error) {
	for {
		name, err := p.Line("Name: ")
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if err := clinic.ValidateName(name); err != nil {
			p.Alert(err)
			continue
		}
		return name, nil
	}
}

// BirthDate reads a birth date for a patient old enough to register.
func (p *Prompter) BirthDate() (time.Time, error) {
	for {
		raw, err := p.Line("Birth date: ")
		if err != nil {
			return time.Time{}, err
		}
		date, err := temporal.ParseDate(raw, p.clinic.Location())
		if err == nil {
			err = clinic.ValidateBirthDate(date, p.clinic.Now())
		}
		if err != nil {
			p.Alert(err)
			continue
		}
		return date, nil
	}
}

// Date reads a date accepted under opts.
func (p *Prompter) Date(label string, opts temporal.DateOptions) (time.Time, error) {
	for {
		raw, err := p.Line(label)
		if err != nil {
			return time.Time{}, err
		}
		date, err := temporal.ParseDate(raw, p.clinic.Location())
		if err == nil {
			err = p.clinic.Validator.ValidateDate(date, opts)
		}
		if err != nil {
			p.Alert(err)
			continue
		}
		return date, nil
	}
}

// AnyDate reads a date that only has to parse.
func (p *Prompter) AnyDate(label string) (time.Time, error) {
	for {
		raw, err := p.Line(label)
		if err != nil {
			return time.Time{}, err
		}
		date, err := temporal.ParseDate(raw, p.clinic.Location())
		if err != nil {
			p.Alert(err)
			continue
		}
		return date, nil
	}
}

// Time reads a business-hours time, strictly after prior when given.
func (p *Prompter) Time(label string, prior *temporal.TimeOfDay) (temporal.TimeOfDay, error) {
	for {
		raw, err := p.Line(label)
		if err != nil {
			return temporal.TimeOfDay{}, err
		}
		t, err := temporal.ParseTime(raw)
		if err == nil {
			err = p.clinic.Validator.ValidateTimeOfDay(t, prior)
		}
		if err != nil {
			p.Alert(err)
			continue
		}
		return t, nil
	}
}
