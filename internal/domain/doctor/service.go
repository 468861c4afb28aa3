package doctor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

// Service manages the doctor registry.
type Service struct {
	doctors *registry.Store[*Doctor]
	log     zerolog.Logger
}

func NewService(doctors *registry.Store[*Doctor], log zerolog.Logger) *Service {
	return &Service{doctors: doctors, log: log}
}

// Register validates the fields and stores a new doctor record.
func (s *Service) Register(ctx context.Context, name, specialization, phone, email string) (*Doctor, error) {
	if err := validate.Required("name", name); err != nil {
		return nil, err
	}
	if err := validate.Required("specialization", specialization); err != nil {
		return nil, err
	}
	if err := validate.Phone("phone", phone); err != nil {
		return nil, err
	}
	if err := validate.Email("email", email); err != nil {
		return nil, err
	}

	d := &Doctor{
		Name:           name,
		Specialization: specialization,
		Phone:          phone,
		Email:          email,
	}
	id := s.doctors.Create(d)
	s.log.Info().Stringer("doctor_id", id).Str("name", name).Str("specialization", specialization).Msg("doctor registered")
	return d, nil
}

// Get returns the doctor for id.
func (s *Service) Get(ctx context.Context, id registry.ID) (*Doctor, error) {
	return s.doctors.Get(id)
}

// List returns every doctor in registration order.
func (s *Service) List(ctx context.Context) []*Doctor {
	return s.doctors.List()
}

// SetAvailability records a weekday time slot for the doctor.
func (s *Service) SetAvailability(ctx context.Context, id registry.ID, day time.Weekday, slot string) error {
	return s.doctors.Update(id, func(d *Doctor) error {
		d.SetAvailability(day, slot)
		return nil
	})
}

// DoctorName returns the display name for id.
func (s *Service) DoctorName(ctx context.Context, id registry.ID) (string, error) {
	d, err := s.doctors.Get(id)
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

// AttachPatient records the patient on the doctor's list.
func (s *Service) AttachPatient(ctx context.Context, doctorID, patientID registry.ID) error {
	return s.doctors.Update(doctorID, func(d *Doctor) error {
		d.AddPatient(patientID)
		return nil
	})
}

// IsAvailable reports whether the doctor can take an appointment at t.
func (s *Service) IsAvailable(ctx context.Context, id registry.ID, t time.Time) (bool, error) {
	d, err := s.doctors.Get(id)
	if err != nil {
		return false, err
	}
	return d.IsAvailable(t), nil
}
