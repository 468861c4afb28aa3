package diagnosis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

// PatientRecords is the slice of the patient service a diagnosis needs:
// existence checks, the medical history log and the back-reference link.
type PatientRecords interface {
	PatientName(ctx context.Context, id registry.ID) (string, error)
	AppendHistory(ctx context.Context, id registry.ID, note string) error
	LinkDiagnosis(ctx context.Context, patientID, diagnosisID registry.ID) error
}

// DoctorDirectory resolves doctor names for history entries.
type DoctorDirectory interface {
	DoctorName(ctx context.Context, id registry.ID) (string, error)
}

// Service manages the diagnosis registry.
type Service struct {
	diagnoses *registry.Store[*Diagnosis]
	patients  PatientRecords
	doctors   DoctorDirectory
	now       func() time.Time
	log       zerolog.Logger
}

func NewService(diagnoses *registry.Store[*Diagnosis], patients PatientRecords, doctors DoctorDirectory, log zerolog.Logger) *Service {
	return &Service{
		diagnoses: diagnoses,
		patients:  patients,
		doctors:   doctors,
		now:       time.Now,
		log:       log,
	}
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Record stores a new diagnosis, links it to the patient and writes a
// medical-history entry.
func (s *Service) Record(ctx context.Context, patientID, doctorID registry.ID, condition, description string, severity Severity) (*Diagnosis, error) {
	if err := validate.Required("condition", condition); err != nil {
		return nil, err
	}
	if !severity.Valid() {
		return nil, &validate.ValidationError{Field: "severity", Reason: fmt.Sprintf("unknown severity %q", severity)}
	}
	if _, err := s.patients.PatientName(ctx, patientID); err != nil {
		return nil, err
	}
	doctorName, err := s.doctors.DoctorName(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	d := &Diagnosis{
		PatientID:   patientID,
		DoctorID:    doctorID,
		Condition:   condition,
		Description: description,
		Severity:    severity,
		DiagnosedAt: s.now(),
	}
	id := s.diagnoses.Create(d)

	if err := s.patients.LinkDiagnosis(ctx, patientID, id); err != nil {
		return nil, err
	}
	note := fmt.Sprintf("Diagnosed with %s by %s", condition, doctorName)
	if err := s.patients.AppendHistory(ctx, patientID, note); err != nil {
		return nil, err
	}

	s.log.Info().
		Stringer("diagnosis_id", id).
		Stringer("patient_id", patientID).
		Str("condition", condition).
		Str("severity", string(severity)).
		Msg("diagnosis recorded")
	return d, nil
}

// Get returns the diagnosis for id.
func (s *Service) Get(ctx context.Context, id registry.ID) (*Diagnosis, error) {
	return s.diagnoses.Get(id)
}

// Update amends the free-text description and severity of an existing
// diagnosis. The condition itself is immutable; record a new diagnosis
// instead.
func (s *Service) Update(ctx context.Context, id registry.ID, description string, severity Severity) error {
	if !severity.Valid() {
		return &validate.ValidationError{Field: "severity", Reason: fmt.Sprintf("unknown severity %q", severity)}
	}
	return s.diagnoses.Update(id, func(d *Diagnosis) error {
		d.Description = description
		d.Severity = severity
		return nil
	})
}

// PatientDiagnoses returns all diagnoses recorded for a patient, oldest
// first.
func (s *Service) PatientDiagnoses(ctx context.Context, patientID registry.ID) []*Diagnosis {
	var result []*Diagnosis
	for _, d := range s.diagnoses.List() {
		if d.PatientID == patientID {
			result = append(result, d)
		}
	}
	return result
}
