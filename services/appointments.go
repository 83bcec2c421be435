package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/medease/desktop/internal/types"
)

// AppointmentService speaks the backend's appointment endpoints. The
// backend owns the records; this service only submits new bookings and
// re-fetches.
type AppointmentService struct {
	client *Client
}

// NewAppointmentService creates an AppointmentService on the shared client.
func NewAppointmentService(client *Client) *AppointmentService {
	return &AppointmentService{client: client}
}

// CreateAppointmentRequest is the POST /api/appointments payload. The
// four required fields are enforced client-side before the request is
// sent; see BookingDraft.Validate in core.
type CreateAppointmentRequest struct {
	Patient    string `json:"patient"`
	Doctor     string `json:"doctor"`
	Department string `json:"department,omitempty"`
	Date       string `json:"appointmentDate"`
	Time       string `json:"time,omitempty"`
	Reason     string `json:"reason"`
}

// List fetches appointments, optionally filtered (e.g. status, date).
func (s *AppointmentService) List(ctx context.Context, filters url.Values) ([]types.Appointment, error) {
	endpoint := "/api/appointments"
	if len(filters) > 0 {
		endpoint += "?" + filters.Encode()
	}
	var out []types.Appointment
	if err := s.client.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForDoctor fetches the authenticated doctor's appointments.
func (s *AppointmentService) ListForDoctor(ctx context.Context) ([]types.Appointment, error) {
	var out []types.Appointment
	if err := s.client.Get(ctx, "/api/appointments/doctor", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForPatient fetches the authenticated patient's appointments.
func (s *AppointmentService) ListForPatient(ctx context.Context) ([]types.Appointment, error) {
	var out []types.Appointment
	if err := s.client.Get(ctx, "/api/appointments/patient", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single appointment by id.
func (s *AppointmentService) Get(ctx context.Context, id string) (types.Appointment, error) {
	var out types.Appointment
	if err := s.client.Get(ctx, "/api/appointments/"+url.PathEscape(id), &out); err != nil {
		return types.Appointment{}, err
	}
	return out, nil
}

// Create submits a new appointment.
func (s *AppointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (types.Appointment, error) {
	var out types.Appointment
	if err := s.client.Post(ctx, "/api/appointments", req, &out); err != nil {
		return types.Appointment{}, err
	}
	return out, nil
}

// UpdateStatus moves an appointment to a new status, e.g. completing or
// rescheduling it from the staff console.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status types.AppointmentStatus) (types.Appointment, error) {
	body := map[string]string{"status": string(status)}
	var out types.Appointment
	endpoint := "/api/appointments/" + url.PathEscape(id)
	if err := s.client.Put(ctx, endpoint, body, &out); err != nil {
		return types.Appointment{}, fmt.Errorf("update appointment %s: %w", id, err)
	}
	return out, nil
}

// Cancel removes an appointment.
func (s *AppointmentService) Cancel(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/api/appointments/"+url.PathEscape(id))
}
