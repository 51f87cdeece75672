package console

import (
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clinic/frontdesk/internal/domain/clinic"
	"github.com/clinic/frontdesk/internal/platform/reporting"
	"github.com/clinic/frontdesk/internal/platform/temporal"
)

var errInvalidOption = errors.New("invalid option")

// Session runs the interactive menus against one clinic.
type Session struct {
	clinic   *clinic.Clinic
	prompt   *Prompter
	out      io.Writer
	renderer *reporting.Renderer
	logger   zerolog.Logger
	title    string
}

// NewSession wires a session reading from in and writing to out.
func NewSession(in io.Reader, out io.Writer, c *clinic.Clinic, renderer *reporting.Renderer, logger zerolog.Logger, title string) *Session {
	return &Session{
		clinic:   c,
		prompt:   NewPrompter(in, out, c),
		out:      out,
		renderer: renderer,
		logger:   logger,
		title:    title,
	}
}

// Run shows the main menu until the operator exits or input ends.
func (s *Session) Run() error {
	err := s.mainMenu()
	if errors.Is(err, io.EOF) {
		s.logger.Info().Msg("input closed, leaving session")
		return nil
	}
	return err
}

func (s *Session) mainMenu() error {
	for {
		s.prompt.Say("%s", s.title)
		s.prompt.Say("1 - Patients")
		s.prompt.Say("2 - Schedule")
		s.prompt.Say("3 - Exit")
		opt, err := s.prompt.Line("Option: ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(opt) {
		case "1":
			err = s.patientMenu()
		case "2":
			err = s.scheduleMenu()
		case "3":
			s.prompt.Say("Leaving...")
			return nil
		default:
			s.prompt.Alert(errInvalidOption)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) patientMenu() error {
	for {
		s.prompt.Say("Patients")
		s.prompt.Say("1 - Register patient")
		s.prompt.Say("2 - Delete patient")
		s.prompt.Say("3 - List patients (by CPF)")
		s.prompt.Say("4 - List patients (by name)")
		s.prompt.Say("5 - Back to main menu")
		opt, err := s.prompt.Line("Option: ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(opt) {
		case "1":
			err = s.registerPatient()
		case "2":
			err = s.deletePatient()
		case "3":
			err = s.listPatients(clinic.OrderByID)
		case "4":
			err = s.listPatients(clinic.OrderByName)
		case "5":
			s.prompt.Say("Going back...")
			return nil
		default:
			s.prompt.Alert(errInvalidOption)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) scheduleMenu() error {
	for {
		s.prompt.Say("Schedule")
		s.prompt.Say("1 - Book appointment")
		s.prompt.Say("2 - Cancel appointment")
		s.prompt.Say("3 - List schedule")
		s.prompt.Say("4 - Back to main menu")
		opt, err := s.prompt.Line("Option: ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(opt) {
		case "1":
			err = s.bookAppointment()
		case "2":
			err = s.cancelAppointment()
		case "3":
			err = s.listSchedule()
		case "4":
			s.prompt.Say("Going back...")
			return nil
		default:
			s.prompt.Alert(errInvalidOption)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) registerPatient() error {
	id, err := s.prompt.NewCPF(s.clinic.Patients)
	if err != nil {
		return err
	}
	name, err := s.prompt.Name()
	if err != nil {
		return err
	}
	birth, err := s.prompt.BirthDate()
	if err != nil {
		return err
	}

	if _, err := s.clinic.Patients.Register(id, name, birth); err != nil {
		s.logger.Debug().Err(err).Str("patient", id).Msg("registration rejected")
		s.prompt.Alert(err)
		return nil
	}
	s.logger.Info().Str("patient", id).Msg("patient registered")
	s.prompt.Say("\nPatient registered successfully!\n")
	return nil
}

func (s *Session) deletePatient() error {
	raw, err := s.prompt.Line("CPF: ")
	if err != nil {
		return err
	}
	id := strings.TrimSpace(raw)
	if err := s.clinic.Patients.Delete(id); err != nil {
		s.logger.Debug().Err(err).Str("patient", id).Msg("deletion rejected")
		s.prompt.Alert(err)
		return nil
	}
	s.logger.Info().Str("patient", id).Msg("patient deleted")
	s.prompt.Say("\nPatient deleted successfully!\n")
	return nil
}

func (s *Session) listPatients(order clinic.OrderBy) error {
	patients := s.clinic.Patients.ListOrderedBy(order)
	if err := s.renderer.Patients(s.out, patients, order, s.clinic.Schedule, s.clinic.Now()); err != nil {
		s.logger.Error().Err(err).Msg("render patients")
		s.prompt.Alert(err)
	}
	return nil
}

func (s *Session) bookAppointment() error {
	raw, err := s.prompt.Line("CPF: ")
	if err != nil {
		return err
	}
	id := strings.TrimSpace(raw)
	if !s.clinic.Patients.Contains(id) {
		s.prompt.Alert(clinic.ErrPatientNotFound)
		return nil
	}
	if s.clinic.Schedule.HasActiveAppointment(id) {
		s.prompt.Alert(clinic.ErrAlreadyScheduled)
		return nil
	}

	date, err := s.prompt.Date("Appointment date: ", temporal.DateOptions{})
	if err != nil {
		return err
	}
	start, err := s.prompt.Time("Start time (HH:mm): ", nil)
	if err != nil {
		return err
	}
	end, err := s.prompt.Time("End time (HH:mm): ", &start)
	if err != nil {
		return err
	}

	slot, err := clinic.NewSlot(s.clinic.Validator, date, start, end)
	if err != nil {
		s.prompt.Alert(err)
		return nil
	}
	appt, err := s.clinic.Schedule.Book(id, slot)
	if err != nil {
		s.logger.Debug().Err(err).Str("patient", id).Msg("booking rejected")
		s.prompt.Alert(err)
		return nil
	}
	s.logger.Info().
		Str("patient", id).
		Str("appointment_id", appt.ID.String()).
		Str("date", temporal.FormatDate(slot.Date())).
		Str("start", start.String()).
		Str("end", end.String()).
		Msg("appointment booked")
	s.prompt.Say("Appointment booked")
	return nil
}

func (s *Session) cancelAppointment() error {
	id, err := s.prompt.RegisteredCPF()
	if err != nil {
		return err
	}
	date, err := s.prompt.AnyDate("Appointment date: ")
	if err != nil {
		return err
	}
	start, err := s.prompt.Time("Start time (HH:mm): ", nil)
	if err != nil {
		return err
	}

	handle, err := s.clinic.Schedule.FindCancelable(id, date, start)
	switch {
	case errors.Is(err, clinic.ErrAlreadyMatchesLatest):
		s.prompt.Say("Appointment found")
		return nil
	case errors.Is(err, clinic.ErrNoAppointments):
		s.prompt.Say("No appointments scheduled")
		return nil
	case err != nil:
		s.prompt.Alert(err)
		return nil
	}

	if err := s.clinic.Schedule.CancelLatest(handle); err != nil {
		s.prompt.Alert(err)
		return nil
	}
	s.logger.Info().Str("patient", handle).Msg("appointment cancelled")
	s.prompt.Say("Appointment cancelled successfully!\n")
	return nil
}

func (s *Session) listSchedule() error {
	from, err := s.prompt.Date("Start date: ", temporal.DateOptions{OnlyBasic: true})
	if err != nil {
		return err
	}
	to, err := s.prompt.Date("End date: ", temporal.DateOptions{OnlyBasic: true, Prior: &from})
	if err != nil {
		return err
	}

	bookings := s.clinic.Schedule.ListInRange(from, to)
	if err := s.renderer.Schedule(s.out, bookings, from, to, s.clinic.Now()); err != nil {
		s.logger.Error().Err(err).Msg("render schedule")
		s.prompt.Alert(err)
	}
	return nil
}
