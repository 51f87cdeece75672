// Package clinic is the front-desk engine: the patient registry and the
// appointment scheduler, wired together around a single clock.
//
// The engine is synchronous and holds no locks; one Clinic serves one
// operator session.
package clinic

import (
	"time"

	"github.com/clinic/frontdesk/internal/platform/temporal"
)

// Clinic owns the registry, the scheduler and the validator they share.
type Clinic struct {
	Patients  *Registry
	Schedule  *Scheduler
	Validator *temporal.Validator

	clock temporal.Clock
}

// New builds an empty clinic reading "now" from clock.
func New(clock temporal.Clock) *Clinic {
	registry := newRegistry(clock)
	scheduler := newScheduler(registry, clock)
	registry.schedule = scheduler

	return &Clinic{
		Patients:  registry,
		Schedule:  scheduler,
		Validator: temporal.NewValidator(clock),
		clock:     clock,
	}
}

// Now reads the clinic clock.
func (c *Clinic) Now() time.Time {
	return c.clock.Now()
}

// Location is the time zone dates are interpreted in.
func (c *Clinic) Location() *time.Location {
	return c.clock.Now().Location()
}
