package diagnosis

import (
	"time"

	"github.com/hms/hms/internal/platform/registry"
)

// Severity grades how serious a diagnosed condition is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var validSeverities = map[Severity]bool{
	SeverityLow:      true,
	SeverityMedium:   true,
	SeverityHigh:     true,
	SeverityCritical: true,
}

// Valid reports whether s is one of the known severity grades.
func (s Severity) Valid() bool { return validSeverities[s] }

// Diagnosis records a condition identified for a patient by a doctor.
type Diagnosis struct {
	ID          registry.ID `json:"id"`
	PatientID   registry.ID `json:"patient_id"`
	DoctorID    registry.ID `json:"doctor_id"`
	Condition   string      `json:"condition"`
	Description string      `json:"description,omitempty"`
	Severity    Severity    `json:"severity"`
	DiagnosedAt time.Time   `json:"diagnosed_at"`
}

// SetID implements registry.Entity.
func (d *Diagnosis) SetID(id registry.ID) { d.ID = id }
