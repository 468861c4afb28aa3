package prescription

import (
	"time"

	"github.com/hms/hms/internal/platform/registry"
)

// Medicine is a single line on a prescription.
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Prescription is a doctor's medicine order for a patient, optionally tied
// to a diagnosis.
type Prescription struct {
	ID           registry.ID `json:"id"`
	PatientID    registry.ID `json:"patient_id"`
	DoctorID     registry.ID `json:"doctor_id"`
	DiagnosisID  registry.ID `json:"diagnosis_id,omitempty"`
	Medicines    []Medicine  `json:"medicines"`
	Instructions string      `json:"instructions,omitempty"`
	IssuedAt     time.Time   `json:"issued_at"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// SetID implements registry.Entity.
func (p *Prescription) SetID(id registry.ID) { p.ID = id }

// ValidAt reports whether the prescription may still be dispensed at t.
func (p *Prescription) ValidAt(t time.Time) bool {
	return !t.After(p.ExpiresAt)
}
