package clinic

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/clinic/frontdesk/internal/platform/cpf"
	"github.com/clinic/frontdesk/internal/platform/temporal"
)

// OrderBy selects the sort key for ListOrderedBy.
type OrderBy string

const (
	OrderByID   OrderBy = "cpf"
	OrderByName OrderBy = "name"
)

// Registry owns the registered patients, keyed by CPF.
type Registry struct {
	patients map[string]Patient
	schedule *Scheduler
	clock    temporal.Clock
	lang     language.Tag
}

func newRegistry(clock temporal.Clock) *Registry {
	return &Registry{
		patients: make(map[string]Patient),
		clock:    clock,
		lang:     language.BrazilianPortuguese,
	}
}

// Contains implements cpf.Lookup.
func (r *Registry) Contains(id string) bool {
	_, ok := r.patients[id]
	return ok
}

// Get returns a copy of the patient registered under id.
func (r *Registry) Get(id string) (Patient, bool) {
	p, ok := r.patients[id]
	return p, ok
}

// Len returns the number of registered patients.
func (r *Registry) Len() int {
	return len(r.patients)
}

// Register validates every field and stores the patient. Nothing is stored
// when any check fails.
func (r *Registry) Register(id, name string, birthDate time.Time) (Patient, error) {
	if err := cpf.Validate(id, r); err != nil {
		if errors.Is(err, cpf.ErrDuplicate) {
			return Patient{}, fmt.Errorf("%w: %w", ErrDuplicateIdentifier, err)
		}
		return Patient{}, fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	}
	if err := ValidateName(name); err != nil {
		return Patient{}, err
	}
	if err := ValidateBirthDate(birthDate, r.clock.Now()); err != nil {
		return Patient{}, err
	}

	p := Patient{ID: id, Name: name, BirthDate: temporal.Midnight(birthDate)}
	r.patients[id] = p
	return p, nil
}

// Delete removes the patient and its schedule entry. Patients with a future
// appointment are kept.
func (r *Registry) Delete(id string) error {
	if !r.Contains(id) {
		return ErrNotFound
	}
	if r.schedule != nil && r.schedule.HasActiveAppointment(id) {
		return ErrHasActiveAppointment
	}
	delete(r.patients, id)
	if r.schedule != nil {
		r.schedule.forget(id)
	}
	return nil
}

// ListOrderedBy returns all patients sorted by CPF (numerically) or by name
// (case-insensitive collation, ties keep CPF order).
func (r *Registry) ListOrderedBy(field OrderBy) []Patient {
	out := make([]Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return numericID(out[i].ID) < numericID(out[j].ID)
	})
	if field != OrderByName {
		return out
	}

	col := collate.New(r.lang, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

func numericID(id string) uint64 {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
