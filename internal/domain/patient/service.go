package patient

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/hospital"
	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

// DoctorDirectory is the slice of the doctor service the patient service
// needs for admissions.
type DoctorDirectory interface {
	DoctorName(ctx context.Context, id registry.ID) (string, error)
	AttachPatient(ctx context.Context, doctorID, patientID registry.ID) error
}

// Service manages the patient registry and the admission/discharge state
// machine, including the hospital bed counter.
type Service struct {
	patients *registry.Store[*Patient]
	hospital *hospital.Hospital
	doctors  DoctorDirectory
	now      func() time.Time
	log      zerolog.Logger
}

func NewService(patients *registry.Store[*Patient], h *hospital.Hospital, doctors DoctorDirectory, log zerolog.Logger) *Service {
	return &Service{
		patients: patients,
		hospital: h,
		doctors:  doctors,
		now:      time.Now,
		log:      log,
	}
}

// SetClock overrides the time source. Tests only.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Register validates the demographic fields and stores a new outpatient
// record.
func (s *Service) Register(ctx context.Context, name string, age int, gender, phone, email, address string) (*Patient, error) {
	if err := validate.Required("name", name); err != nil {
		return nil, err
	}
	if err := validate.Age("age", age); err != nil {
		return nil, err
	}
	if err := validate.Phone("phone", phone); err != nil {
		return nil, err
	}
	if err := validate.Email("email", email); err != nil {
		return nil, err
	}

	p := &Patient{
		Name:    name,
		Age:     age,
		Gender:  gender,
		Phone:   phone,
		Email:   email,
		Address: address,
		Status:  StatusOutpatient,
	}
	id := s.patients.Create(p)
	s.log.Info().Stringer("patient_id", id).Str("name", name).Msg("patient registered")
	return p, nil
}

// Admit moves the patient to Admitted, assigns the doctor and claims a bed.
// At zero capacity it fails with *hospital.NoBedsAvailableError and leaves
// all state untouched. A Discharged patient may be admitted again; the same
// record starts a new admission cycle.
func (s *Service) Admit(ctx context.Context, patientID, doctorID registry.ID) error {
	p, err := s.patients.Get(patientID)
	if err != nil {
		return err
	}
	if p.Status == StatusAdmitted {
		return &InvalidStateError{Op: "admit", Status: p.Status}
	}
	doctorName, err := s.doctors.DoctorName(ctx, doctorID)
	if err != nil {
		return err
	}
	if err := s.hospital.AllocateBed(); err != nil {
		s.log.Warn().Stringer("patient_id", patientID).Msg("admission rejected: no beds available")
		return err
	}

	now := s.now()
	p.Status = StatusAdmitted
	p.AdmissionDate = &now
	p.DischargeDate = nil
	p.AssignedDoctor = doctorID
	if err := s.doctors.AttachPatient(ctx, doctorID, patientID); err != nil {
		return err
	}
	p.AddHistory(now, "Admitted to "+s.hospital.Name+" under "+doctorName)
	s.log.Info().
		Stringer("patient_id", patientID).
		Stringer("doctor_id", doctorID).
		Int("available_beds", s.hospital.AvailableBeds).
		Msg("patient admitted")
	return nil
}

// Discharge moves an Admitted patient to Discharged and releases the bed.
func (s *Service) Discharge(ctx context.Context, patientID registry.ID) error {
	p, err := s.patients.Get(patientID)
	if err != nil {
		return err
	}
	if p.Status != StatusAdmitted {
		return &InvalidStateError{Op: "discharge", Status: p.Status}
	}

	now := s.now()
	p.Status = StatusDischarged
	p.DischargeDate = &now
	s.hospital.ReleaseBed()
	p.AddHistory(now, "Discharged from hospital")
	s.log.Info().
		Stringer("patient_id", patientID).
		Int("available_beds", s.hospital.AvailableBeds).
		Msg("patient discharged")
	return nil
}

// Get returns the patient for id.
func (s *Service) Get(ctx context.Context, id registry.ID) (*Patient, error) {
	return s.patients.Get(id)
}

// Update carries the optional fields of UpdateInfo; nil fields are left
// unchanged.
type Update struct {
	Name    *string
	Age     *int
	Gender  *string
	Phone   *string
	Email   *string
	Address *string
}

// UpdateInfo applies the non-nil fields of u after validating them.
func (s *Service) UpdateInfo(ctx context.Context, id registry.ID, u Update) error {
	if u.Name != nil {
		if err := validate.Required("name", *u.Name); err != nil {
			return err
		}
	}
	if u.Age != nil {
		if err := validate.Age("age", *u.Age); err != nil {
			return err
		}
	}
	if u.Phone != nil {
		if err := validate.Phone("phone", *u.Phone); err != nil {
			return err
		}
	}
	if u.Email != nil {
		if err := validate.Email("email", *u.Email); err != nil {
			return err
		}
	}
	return s.patients.Update(id, func(p *Patient) error {
		if u.Name != nil {
			p.Name = *u.Name
		}
		if u.Age != nil {
			p.Age = *u.Age
		}
		if u.Gender != nil {
			p.Gender = *u.Gender
		}
		if u.Phone != nil {
			p.Phone = *u.Phone
		}
		if u.Email != nil {
			p.Email = *u.Email
		}
		if u.Address != nil {
			p.Address = *u.Address
		}
		return nil
	})
}

// List returns every patient in registration order.
func (s *Service) List(ctx context.Context) []*Patient {
	return s.patients.List()
}

// SearchByName returns patients whose name contains the query,
// case-insensitively.
func (s *Service) SearchByName(ctx context.Context, query string) []*Patient {
	q := strings.ToLower(query)
	var result []*Patient
	for _, p := range s.patients.List() {
		if strings.Contains(strings.ToLower(p.Name), q) {
			result = append(result, p)
		}
	}
	return result
}

// PatientName returns the display name for id.
func (s *Service) PatientName(ctx context.Context, id registry.ID) (string, error) {
	p, err := s.patients.Get(id)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// AppendHistory adds one timestamped entry to the patient's medical history.
// The billing, diagnosis and prescription services record their side effects
// through this.
func (s *Service) AppendHistory(ctx context.Context, id registry.ID, note string) error {
	return s.patients.Update(id, func(p *Patient) error {
		p.AddHistory(s.now(), note)
		return nil
	})
}

// History returns the medical-history log in append order.
func (s *Service) History(ctx context.Context, id registry.ID) ([]HistoryEntry, error) {
	p, err := s.patients.Get(id)
	if err != nil {
		return nil, err
	}
	return p.History, nil
}

// LinkDiagnosis records a diagnosis reference on the patient.
func (s *Service) LinkDiagnosis(ctx context.Context, patientID, diagnosisID registry.ID) error {
	return s.patients.Update(patientID, func(p *Patient) error {
		p.Diagnoses = append(p.Diagnoses, diagnosisID)
		return nil
	})
}

// LinkPrescription records a prescription reference on the patient.
func (s *Service) LinkPrescription(ctx context.Context, patientID, prescriptionID registry.ID) error {
	return s.patients.Update(patientID, func(p *Patient) error {
		p.Prescriptions = append(p.Prescriptions, prescriptionID)
		return nil
	})
}

// LinkBill records a bill reference on the patient.
func (s *Service) LinkBill(ctx context.Context, patientID, billID registry.ID) error {
	return s.patients.Update(patientID, func(p *Patient) error {
		p.Bills = append(p.Bills, billID)
		return nil
	})
}
