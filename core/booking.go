package core

import (
	"context"

	"github.com/medease/desktop/internal/types"
	"github.com/medease/desktop/services"
)

// DraftStage is how far an in-progress booking has advanced. Selections
// are monotonic: provider, then date, then one concrete slot. Changing
// an earlier selection drops every later one that depended on it.
type DraftStage int

const (
	DraftEmpty DraftStage = iota
	DraftProviderChosen
	DraftDateChosen
	DraftSlotChosen
	DraftSubmittable
)

// BookingDraft is the transient appointment selection. It lives only in
// memory from the moment the booking view mounts until submission or
// navigation away; it is never persisted, even partially.
type BookingDraft struct {
	Department string
	DoctorID   string
	Reason     string
	Date       string
	TimeSlot   string
}

// Stage derives the draft's position in the selection sequence.
func (d *BookingDraft) Stage() DraftStage {
	switch {
	case d.Department == "" && d.DoctorID == "":
		return DraftEmpty
	case d.Date == "":
		return DraftProviderChosen
	case d.TimeSlot == "":
		return DraftDateChosen
	case d.Reason == "":
		return DraftSlotChosen
	default:
		return DraftSubmittable
	}
}

// ChooseDepartment selects a department. Slot availability is scoped to
// the provider and date pairing, so the chosen doctor and slot no
// longer apply.
func (d *BookingDraft) ChooseDepartment(department string) {
	if d.Department == department {
		return
	}
	d.Department = department
	d.DoctorID = ""
	d.TimeSlot = ""
}

// ChooseDoctor selects a doctor within the current department.
func (d *BookingDraft) ChooseDoctor(doctorID string) {
	if d.DoctorID == doctorID {
		return
	}
	d.DoctorID = doctorID
	d.TimeSlot = ""
}

// ChooseDate selects the appointment date, clearing any slot chosen for
// a previous date.
func (d *BookingDraft) ChooseDate(date string) {
	if d.Date == date {
		return
	}
	d.Date = date
	d.TimeSlot = ""
}

// ChooseSlot selects exactly one time slot for the current pairing.
func (d *BookingDraft) ChooseSlot(slot string) {
	d.TimeSlot = slot
}

// SetReason records the visit reason. It may be entered at any point.
func (d *BookingDraft) SetReason(reason string) {
	d.Reason = reason
}

// Reset returns the draft to empty.
func (d *BookingDraft) Reset() {
	*d = BookingDraft{}
}

// Validate checks the draft is well-formed for submission, naming
// exactly the fields that are missing. A draft that fails validation is
// rejected before any network call.
func (d *BookingDraft) Validate() error {
	var missing []string
	if d.DoctorID == "" {
		missing = append(missing, "doctor")
	}
	if d.Date == "" {
		missing = append(missing, "appointmentDate")
	}
	if d.TimeSlot == "" {
		missing = append(missing, "timeSlot")
	}
	if d.Reason == "" {
		missing = append(missing, "reason")
	}
	if len(missing) > 0 {
		return &services.ValidationError{Fields: missing}
	}
	return nil
}

// BookingManager drives a patient's booking flow: it owns the draft,
// exposes slot availability for the chosen pairing and submits the
// finished draft.
type BookingManager struct {
	Draft        BookingDraft
	patientID    string
	appointments *services.AppointmentService
}

// NewBookingManager creates a manager submitting on behalf of patientID.
func NewBookingManager(patientID string, appointments *services.AppointmentService) *BookingManager {
	return &BookingManager{patientID: patientID, appointments: appointments}
}

// dailySlots is the fixed slot grid offered for every working day. The
// backend does not compute availability; the client offers the grid and
// hides slots already taken for the chosen doctor and date.
var dailySlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "02:00 PM", "02:30 PM",
	"03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM",
}

// AvailableSlots returns the slot grid minus entries conflicting with
// existing appointments for the draft's doctor and date. Cancelled
// appointments do not block a slot.
func (m *BookingManager) AvailableSlots(existing []types.Appointment) []string {
	taken := make(map[string]bool)
	for _, appt := range existing {
		if appt.Status == types.StatusCancelled {
			continue
		}
		if appt.Doctor == m.Draft.DoctorID && appt.Date == m.Draft.Date {
			taken[appt.Time] = true
		}
	}

	out := make([]string, 0, len(dailySlots))
	for _, slot := range dailySlots {
		if !taken[slot] {
			out = append(out, slot)
		}
	}
	return out
}

// Submit validates and sends the draft. On success the draft resets to
// empty; on any failure it is retained unchanged so the user can retry
// without re-entering their selections.
func (m *BookingManager) Submit(ctx context.Context) (types.Appointment, error) {
	if m.patientID == "" {
		return types.Appointment{}, &services.ValidationError{Fields: []string{"patient"}}
	}
	if err := m.Draft.Validate(); err != nil {
		return types.Appointment{}, err
	}

	created, err := m.appointments.Create(ctx, services.CreateAppointmentRequest{
		Patient:    m.patientID,
		Doctor:     m.Draft.DoctorID,
		Department: m.Draft.Department,
		Date:       m.Draft.Date,
		Time:       m.Draft.TimeSlot,
		Reason:     m.Draft.Reason,
	})
	if err != nil {
		return types.Appointment{}, err
	}

	m.Draft.Reset()
	return created, nil
}
