package services

import (
	"context"
	"net/url"

	"github.com/medease/desktop/internal/types"
)

// DirectoryService fetches the hospital's departments, doctors and
// patients. It feeds the booking form cascade and the admin and staff
// console tables.
type DirectoryService struct {
	client *Client
}

// NewDirectoryService creates a DirectoryService on the shared client.
func NewDirectoryService(client *Client) *DirectoryService {
	return &DirectoryService{client: client}
}

// Departments lists the bookable departments.
func (s *DirectoryService) Departments(ctx context.Context) ([]types.Department, error) {
	var out []types.Department
	if err := s.client.Get(ctx, "/api/departments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Doctors lists all doctors.
func (s *DirectoryService) Doctors(ctx context.Context) ([]types.Doctor, error) {
	var out []types.Doctor
	if err := s.client.Get(ctx, "/api/doctors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DoctorsByDepartment lists the doctors attached to one department.
func (s *DirectoryService) DoctorsByDepartment(ctx context.Context, department string) ([]types.Doctor, error) {
	var out []types.Doctor
	endpoint := "/api/doctors?department=" + url.QueryEscape(department)
	if err := s.client.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Patients lists registered patients for the admin and staff consoles.
func (s *DirectoryService) Patients(ctx context.Context) ([]types.Patient, error) {
	var out []types.Patient
	if err := s.client.Get(ctx, "/api/patients", &out); err != nil {
		return nil, err
	}
	return out, nil
}
