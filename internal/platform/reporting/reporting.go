package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/clinic/frontdesk/internal/domain/clinic"
	"github.com/clinic/frontdesk/internal/platform/temporal"
)

// Format selects how listings are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

const (
	patientRule  = "-----------------------------------------------------------"
	scheduleRule = "------------------------------------------------------------------------"
	indent       = "            "
)

// AppointmentLookup is the read-only part of the scheduler the patient
// listing needs.
type AppointmentLookup interface {
	Latest(patientID string) (clinic.Appointment, error)
}

// PatientReport is the JSON form of the patient listing.
type PatientReport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Order       string        `json:"order"`
	Patients    []PatientItem `json:"patients"`
}

// PatientItem is one patient with its future appointment, if any.
type PatientItem struct {
	CPF       string           `json:"cpf"`
	Name      string           `json:"name"`
	BirthDate string           `json:"birth_date"`
	Age       int              `json:"age"`
	Scheduled *AppointmentItem `json:"scheduled,omitempty"`
}

// AppointmentItem is the JSON form of an appointment.
type AppointmentItem struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ScheduleReport is the JSON form of the schedule listing.
type ScheduleReport struct {
	GeneratedAt  time.Time      `json:"generated_at"`
	From         string         `json:"from"`
	To           string         `json:"to"`
	Appointments []ScheduleItem `json:"appointments"`
}

// ScheduleItem is one appointment with its patient.
type ScheduleItem struct {
	AppointmentItem
	Patient PatientItem `json:"patient"`
}

// Renderer writes patient and schedule listings. It never changes engine
// state.
type Renderer struct {
	format Format
}

// NewRenderer creates a renderer. Unknown formats fall back to text.
func NewRenderer(format Format) *Renderer {
	if format != FormatJSON {
		format = FormatText
	}
	return &Renderer{format: format}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format { return r.format }

// Patients renders patients in the given order, noting each future
// appointment below its patient.
func (r *Renderer) Patients(w io.Writer, patients []clinic.Patient, order clinic.OrderBy, appts AppointmentLookup, now time.Time) error {
	items := make([]PatientItem, 0, len(patients))
	for _, p := range patients {
		item := patientItem(p, now)
		if latest, err := appts.Latest(p.ID); err == nil && latest.IsFuture(now) {
			ai := appointmentItem(latest)
			item.Scheduled = &ai
		}
		items = append(items, item)
	}

	if r.format == FormatJSON {
		return writeJSON(w, PatientReport{GeneratedAt: now, Order: string(order), Patients: items})
	}

	var b strings.Builder
	b.WriteString("Patients:\n")
	b.WriteString(patientRule + "\n")
	fmt.Fprintf(&b, "%-11s %-33s %-10s %s\n", "CPF", "Name", "Birth date", "Age")
	b.WriteString(patientRule + "\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%-11s %-33s %s %d\n", it.CPF, it.Name, it.BirthDate, it.Age)
		if it.Scheduled != nil {
			fmt.Fprintf(&b, "%sScheduled for %s\n", indent, it.Scheduled.Date)
			fmt.Fprintf(&b, "%s%s to %s\n", indent, it.Scheduled.Start, it.Scheduled.End)
		}
	}
	b.WriteString(patientRule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Schedule renders bookings in the order given. Consecutive rows on the
// same date show the date only once.
func (r *Renderer) Schedule(w io.Writer, bookings []clinic.Booking, from, to, now time.Time) error {
	items := make([]ScheduleItem, 0, len(bookings))
	for _, bk := range bookings {
		items = append(items, ScheduleItem{
			AppointmentItem: appointmentItem(bk.Appointment),
			Patient:         patientItem(bk.Patient, now),
		})
	}

	if r.format == FormatJSON {
		return writeJSON(w, ScheduleReport{
			GeneratedAt:  now,
			From:         temporal.FormatDate(from),
			To:           temporal.FormatDate(to),
			Appointments: items,
		})
	}

	var b strings.Builder
	b.WriteString("Schedule:\n")
	b.WriteString(scheduleRule + "\n")
	fmt.Fprintf(&b, "%-10s %-5s %-5s %5s %-24s %s\n", "Date", "Start", "End", "Time", "Name", "Birth date")
	b.WriteString(scheduleRule + "\n")
	prev := ""
	for _, it := range items {
		date := it.Date
		if date == prev {
			date = ""
		}
		prev = it.Date
		fmt.Fprintf(&b, "%-10s %s %s %5s %-24s %s\n",
			date, it.Start, it.End, formatDuration(it.DurationMinutes), it.Patient.Name, it.Patient.BirthDate)
	}
	b.WriteString(scheduleRule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func patientItem(p clinic.Patient, now time.Time) PatientItem {
	return PatientItem{
		CPF:       p.ID,
		Name:      p.Name,
		BirthDate: temporal.FormatDate(p.BirthDate),
		Age:       p.Age(now),
	}
}

func appointmentItem(a clinic.Appointment) AppointmentItem {
	return AppointmentItem{
		ID:              a.ID.String(),
		Date:            temporal.FormatDate(a.Slot.Date()),
		Start:           a.Slot.StartTime().String(),
		End:             a.Slot.EndTime().String(),
		DurationMinutes: int(a.Slot.Duration() / time.Minute),
	}
}

// formatDuration renders minutes as H:MM.
func formatDuration(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
