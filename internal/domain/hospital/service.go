package hospital

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

// Service manages the facility record and its departments.
type Service struct {
	hospital    *Hospital
	departments *registry.Store[*Department]
	log         zerolog.Logger
}

func NewService(h *Hospital, departments *registry.Store[*Department], log zerolog.Logger) *Service {
	return &Service{hospital: h, departments: departments, log: log}
}

// Hospital returns the facility record.
func (s *Service) Hospital() *Hospital { return s.hospital }

// AddDepartment creates a department and attaches it to the hospital.
func (s *Service) AddDepartment(ctx context.Context, name, description string) (*Department, error) {
	if err := validate.Required("name", name); err != nil {
		return nil, err
	}
	d := &Department{Name: name, Description: description}
	id := s.departments.Create(d)
	s.hospital.Departments = append(s.hospital.Departments, id)
	s.log.Info().Stringer("department_id", id).Str("name", name).Msg("department added")
	return d, nil
}

// Department returns the department for id.
func (s *Service) Department(ctx context.Context, id registry.ID) (*Department, error) {
	return s.departments.Get(id)
}

// Departments returns every department in creation order.
func (s *Service) Departments(ctx context.Context) []*Department {
	return s.departments.List()
}

// AssignDoctor adds the doctor to the department's roster.
func (s *Service) AssignDoctor(ctx context.Context, deptID, doctorID registry.ID) error {
	return s.departments.Update(deptID, func(d *Department) error {
		d.AddDoctor(doctorID)
		return nil
	})
}

// SetHeadDoctor marks a roster member as department head.
func (s *Service) SetHeadDoctor(ctx context.Context, deptID, doctorID registry.ID) error {
	return s.departments.Update(deptID, func(d *Department) error {
		if !d.HasDoctor(doctorID) {
			return fmt.Errorf("doctor %s is not a member of department %s", doctorID, d.Name)
		}
		d.HeadDoctor = doctorID
		return nil
	})
}
