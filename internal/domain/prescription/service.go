package prescription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

// DefaultValidity is how long a prescription may be dispensed after issue
// unless SetExpiry overrides it.
const DefaultValidity = 30 * 24 * time.Hour

// PatientRecords is the slice of the patient service a prescription needs.
type PatientRecords interface {
	PatientName(ctx context.Context, id registry.ID) (string, error)
	AppendHistory(ctx context.Context, id registry.ID, note string) error
	LinkPrescription(ctx context.Context, patientID, prescriptionID registry.ID) error
}

// DoctorDirectory resolves doctor names for history entries.
type DoctorDirectory interface {
	DoctorName(ctx context.Context, id registry.ID) (string, error)
}

// Service manages the prescription registry.
type Service struct {
	prescriptions *registry.Store[*Prescription]
	patients      PatientRecords
	doctors       DoctorDirectory
	now           func() time.Time
	log           zerolog.Logger
}

func NewService(prescriptions *registry.Store[*Prescription], patients PatientRecords, doctors DoctorDirectory, log zerolog.Logger) *Service {
	return &Service{
		prescriptions: prescriptions,
		patients:      patients,
		doctors:       doctors,
		now:           time.Now,
		log:           log,
	}
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Create issues a prescription with at least one medicine, links it to the
// patient and writes a medical-history entry. diagnosisID may be zero when
// the prescription is not tied to a recorded diagnosis.
func (s *Service) Create(ctx context.Context, patientID, doctorID, diagnosisID registry.ID, medicines []Medicine, instructions string) (*Prescription, error) {
	if len(medicines) == 0 {
		return nil, &validate.ValidationError{Field: "medicines", Reason: "at least one medicine is required"}
	}
	for _, m := range medicines {
		if err := validate.Required("medicine name", m.Name); err != nil {
			return nil, err
		}
	}
	if _, err := s.patients.PatientName(ctx, patientID); err != nil {
		return nil, err
	}
	doctorName, err := s.doctors.DoctorName(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	issued := s.now()
	p := &Prescription{
		PatientID:    patientID,
		DoctorID:     doctorID,
		DiagnosisID:  diagnosisID,
		Medicines:    append([]Medicine(nil), medicines...),
		Instructions: instructions,
		IssuedAt:     issued,
		ExpiresAt:    issued.Add(DefaultValidity),
	}
	id := s.prescriptions.Create(p)

	if err := s.patients.LinkPrescription(ctx, patientID, id); err != nil {
		return nil, err
	}
	note := fmt.Sprintf("Prescribed %s by %s", medicineNames(medicines), doctorName)
	if err := s.patients.AppendHistory(ctx, patientID, note); err != nil {
		return nil, err
	}

	s.log.Info().
		Stringer("prescription_id", id).
		Stringer("patient_id", patientID).
		Int("medicines", len(medicines)).
		Msg("prescription issued")
	return p, nil
}

// Get returns the prescription for id.
func (s *Service) Get(ctx context.Context, id registry.ID) (*Prescription, error) {
	return s.prescriptions.Get(id)
}

// AddMedicine appends a medicine to an existing prescription.
func (s *Service) AddMedicine(ctx context.Context, id registry.ID, m Medicine) error {
	if err := validate.Required("medicine name", m.Name); err != nil {
		return err
	}
	return s.prescriptions.Update(id, func(p *Prescription) error {
		p.Medicines = append(p.Medicines, m)
		return nil
	})
}

// RemoveMedicine drops the named medicine from the prescription. Removing
// the last medicine is rejected; cancel the prescription by letting it
// expire instead.
func (s *Service) RemoveMedicine(ctx context.Context, id registry.ID, name string) error {
	return s.prescriptions.Update(id, func(p *Prescription) error {
		idx := -1
		for i, m := range p.Medicines {
			if strings.EqualFold(m.Name, name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("medicine %q is not on prescription %s", name, id)
		}
		if len(p.Medicines) == 1 {
			return &validate.ValidationError{Field: "medicines", Reason: "cannot remove the last medicine"}
		}
		p.Medicines = append(p.Medicines[:idx], p.Medicines[idx+1:]...)
		return nil
	})
}

// SetExpiry overrides the prescription's expiry date.
func (s *Service) SetExpiry(ctx context.Context, id registry.ID, expires time.Time) error {
	return s.prescriptions.Update(id, func(p *Prescription) error {
		if expires.Before(p.IssuedAt) {
			return &validate.ValidationError{Field: "expires", Reason: "must not precede the issue date"}
		}
		p.ExpiresAt = expires
		return nil
	})
}

// IsValid reports whether the prescription may still be dispensed now.
func (s *Service) IsValid(ctx context.Context, id registry.ID) (bool, error) {
	p, err := s.prescriptions.Get(id)
	if err != nil {
		return false, err
	}
	return p.ValidAt(s.now()), nil
}

// PatientPrescriptions returns all prescriptions issued for a patient,
// oldest first.
func (s *Service) PatientPrescriptions(ctx context.Context, patientID registry.ID) []*Prescription {
	var result []*Prescription
	for _, p := range s.prescriptions.List() {
		if p.PatientID == patientID {
			result = append(result, p)
		}
	}
	return result
}

func medicineNames(ms []Medicine) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}
