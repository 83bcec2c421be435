// Package types holds the wire and domain types shared between the
// services layer and the UI. They mirror the MedEase backend contract.
package types

import "strings"

// Role is the closed set of account roles the client understands. The
// backend may emit values outside this set; those parse to RoleUnknown
// and get the default (empty) navigation.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
	RoleUnknown Role = ""
)

// ParseRole normalises a backend-supplied role string.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "doctor":
		return RoleDoctor
	case "patient":
		return RolePatient
	default:
		return RoleUnknown
	}
}

// UserProfile is the authenticated user's identity as returned by
// GET /auth/profile. It is cached alongside the credential and purged
// together with it.
type UserProfile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// FullName returns the display name for the dashboard header.
func (p UserProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,contains=@"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the POST /auth/login response envelope.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// AppointmentStatus is backend-owned; values outside the known set are
// carried through untouched.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusUpcoming  AppointmentStatus = "upcoming"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is the backend's appointment record. The client never
// mutates one directly; it submits drafts and re-fetches.
type Appointment struct {
	ID         string            `json:"id"`
	Patient    string            `json:"patient"`
	Doctor     string            `json:"doctor"`
	Department string            `json:"department"`
	Date       string            `json:"appointmentDate"`
	Time       string            `json:"time"`
	Status     AppointmentStatus `json:"status"`
	Reason     string            `json:"reason"`
}

// Doctor is a staff directory entry.
type Doctor struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Specialty  string `json:"specialty"`
}

// FullName returns the doctor's display name.
func (d Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Patient is a patient directory entry for the admin and staff consoles.
type Patient struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Age       int    `json:"age"`
}

// FullName returns the patient's display name.
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Department is a bookable hospital department.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
