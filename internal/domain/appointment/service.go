package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

// PatientDirectory resolves patient ids for existence checks.
type PatientDirectory interface {
	PatientName(ctx context.Context, id registry.ID) (string, error)
}

// DoctorDirectory resolves doctors and their availability.
type DoctorDirectory interface {
	DoctorName(ctx context.Context, id registry.ID) (string, error)
	IsAvailable(ctx context.Context, id registry.ID, t time.Time) (bool, error)
}

// Service manages the appointment registry.
type Service struct {
	appointments *registry.Store[*Appointment]
	patients     PatientDirectory
	doctors      DoctorDirectory
	log          zerolog.Logger
}

func NewService(appointments *registry.Store[*Appointment], patients PatientDirectory, doctors DoctorDirectory, log zerolog.Logger) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		log:          log,
	}
}

// Schedule books an appointment after checking the doctor's availability and
// existing bookings.
func (s *Service) Schedule(ctx context.Context, patientID, doctorID registry.ID, at time.Time, reason string) (*Appointment, error) {
	if err := validate.Required("reason", reason); err != nil {
		return nil, err
	}
	if _, err := s.patients.PatientName(ctx, patientID); err != nil {
		return nil, err
	}
	doctorName, err := s.doctors.DoctorName(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	available, err := s.doctors.IsAvailable(ctx, doctorID, at)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%s is not available at %s", doctorName, at.Format("2006-01-02 15:04"))
	}
	if s.hasConflict(doctorID, at) {
		return nil, fmt.Errorf("%s has another appointment at %s", doctorName, at.Format("2006-01-02 15:04"))
	}

	a := &Appointment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: at,
		Reason:      reason,
		Status:      StatusScheduled,
	}
	id := s.appointments.Create(a)
	s.log.Info().
		Stringer("appointment_id", id).
		Stringer("patient_id", patientID).
		Stringer("doctor_id", doctorID).
		Time("at", at).
		Msg("appointment scheduled")
	return a, nil
}

// Get returns the appointment for id.
func (s *Service) Get(ctx context.Context, id registry.ID) (*Appointment, error) {
	return s.appointments.Get(id)
}

// Reschedule moves an appointment to a new time. Cancelled and completed
// appointments cannot be rescheduled.
func (s *Service) Reschedule(ctx context.Context, id registry.ID, newTime time.Time) error {
	return s.appointments.Update(id, func(a *Appointment) error {
		if a.Status == StatusCancelled || a.Status == StatusCompleted {
			return &InvalidStateError{Op: "reschedule", Status: a.Status}
		}
		if s.hasConflict(a.DoctorID, newTime) {
			return fmt.Errorf("doctor has another appointment at %s", newTime.Format("2006-01-02 15:04"))
		}
		a.ScheduledAt = newTime
		a.Status = StatusRescheduled
		return nil
	})
}

// Cancel marks the appointment cancelled. Cancelling twice is a no-op.
func (s *Service) Cancel(ctx context.Context, id registry.ID) error {
	return s.appointments.Update(id, func(a *Appointment) error {
		if a.Status == StatusCompleted {
			return &InvalidStateError{Op: "cancel", Status: a.Status}
		}
		a.Status = StatusCancelled
		return nil
	})
}

// Complete marks the appointment done, attaching optional notes.
func (s *Service) Complete(ctx context.Context, id registry.ID, notes string) error {
	return s.appointments.Update(id, func(a *Appointment) error {
		if a.Status == StatusCancelled {
			return &InvalidStateError{Op: "complete", Status: a.Status}
		}
		a.Status = StatusCompleted
		if notes != "" {
			a.Notes = notes
		}
		return nil
	})
}

// ForDoctorOn returns the doctor's non-cancelled appointments on the given
// calendar day, in booking order.
func (s *Service) ForDoctorOn(ctx context.Context, doctorID registry.ID, day time.Time) []*Appointment {
	y, m, d := day.Date()
	var result []*Appointment
	for _, a := range s.appointments.List() {
		if a.DoctorID != doctorID || !a.active() {
			continue
		}
		ay, am, ad := a.ScheduledAt.Date()
		if ay == y && am == m && ad == d {
			result = append(result, a)
		}
	}
	return result
}

func (s *Service) hasConflict(doctorID registry.ID, at time.Time) bool {
	for _, a := range s.appointments.List() {
		if a.DoctorID == doctorID && a.active() && a.ScheduledAt.Equal(at) {
			return true
		}
	}
	return false
}
