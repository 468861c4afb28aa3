// Package discharge orchestrates the end of a hospital stay: releasing the
// patient, compiling the discharge summary from the other registries and
// booking the follow-up visit.
package discharge

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/diagnosis"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/platform/registry"
)

// PatientRecords is the slice of the patient service discharge needs.
type PatientRecords interface {
	Get(ctx context.Context, id registry.ID) (*patient.Patient, error)
	Discharge(ctx context.Context, id registry.ID) error
}

// DoctorDirectory resolves the assigned doctor for the summary header.
type DoctorDirectory interface {
	Get(ctx context.Context, id registry.ID) (*doctor.Doctor, error)
}

// DiagnosisLog lists a patient's recorded diagnoses.
type DiagnosisLog interface {
	PatientDiagnoses(ctx context.Context, patientID registry.ID) []*diagnosis.Diagnosis
}

// PrescriptionLog lists a patient's prescriptions.
type PrescriptionLog interface {
	PatientPrescriptions(ctx context.Context, patientID registry.ID) []*prescription.Prescription
}

// Scheduler books follow-up appointments.
type Scheduler interface {
	Schedule(ctx context.Context, patientID, doctorID registry.ID, at time.Time, reason string) (*appointment.Appointment, error)
}

// Service coordinates patient discharge across the registries.
type Service struct {
	patients      PatientRecords
	doctors       DoctorDirectory
	diagnoses     DiagnosisLog
	prescriptions PrescriptionLog
	scheduler     Scheduler
	log           zerolog.Logger
}

func NewService(patients PatientRecords, doctors DoctorDirectory, diagnoses DiagnosisLog, prescriptions PrescriptionLog, scheduler Scheduler, log zerolog.Logger) *Service {
	return &Service{
		patients:      patients,
		doctors:       doctors,
		diagnoses:     diagnoses,
		prescriptions: prescriptions,
		scheduler:     scheduler,
		log:           log,
	}
}

// Initiate discharges the patient. Bed release and the history entry happen
// inside the patient service.
func (s *Service) Initiate(ctx context.Context, patientID registry.ID) error {
	if err := s.patients.Discharge(ctx, patientID); err != nil {
		return err
	}
	s.log.Info().Stringer("patient_id", patientID).Msg("discharge initiated")
	return nil
}

// Summary compiles the discharge summary for a patient. It works for any
// patient status, so a summary can be produced before the patient leaves.
func (s *Service) Summary(ctx context.Context, patientID registry.ID) (*Summary, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		PatientName:   p.Name,
		PatientID:     p.ID.String(),
		Age:           p.Age,
		Gender:        p.Gender,
		AdmissionDate: p.AdmissionDate,
		DischargeDate: p.DischargeDate,
		Status:        string(p.Status),
	}
	if !p.AssignedDoctor.IsZero() {
		d, err := s.doctors.Get(ctx, p.AssignedDoctor)
		if err != nil {
			return nil, err
		}
		sum.DoctorName = d.Name
		sum.DoctorSpecialization = d.Specialization
	}
	for _, d := range s.diagnoses.PatientDiagnoses(ctx, patientID) {
		sum.Diagnoses = append(sum.Diagnoses, DiagnosisLine{
			Condition: d.Condition,
			Severity:  string(d.Severity),
		})
	}
	for _, pr := range s.prescriptions.PatientPrescriptions(ctx, patientID) {
		sum.Prescriptions = append(sum.Prescriptions, PrescriptionLine{
			PrescriptionID: pr.ID.String(),
			Medicines:      pr.Medicines,
		})
	}
	return sum, nil
}

// ScheduleFollowUp books a post-discharge visit with the given doctor.
func (s *Service) ScheduleFollowUp(ctx context.Context, patientID, doctorID registry.ID, at time.Time) (*appointment.Appointment, error) {
	a, err := s.scheduler.Schedule(ctx, patientID, doctorID, at, "Post-discharge follow-up")
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Stringer("patient_id", patientID).
		Stringer("appointment_id", a.ID).
		Time("at", at).
		Msg("follow-up scheduled")
	return a, nil
}
