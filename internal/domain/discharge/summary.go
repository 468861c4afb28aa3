package discharge

import (
	"fmt"
	"strings"
	"time"

	"github.com/hms/hms/internal/domain/prescription"
)

// DiagnosisLine is one diagnosis row on a discharge summary.
type DiagnosisLine struct {
	Condition string `json:"condition"`
	Severity  string `json:"severity"`
}

// PrescriptionLine is one prescription on a discharge summary.
type PrescriptionLine struct {
	PrescriptionID string                  `json:"prescription_id"`
	Medicines      []prescription.Medicine `json:"medicines"`
}

// Summary is the structured discharge record handed to the patient on the
// way out.
type Summary struct {
	PatientName          string             `json:"patient_name"`
	PatientID            string             `json:"patient_id"`
	Age                  int                `json:"age"`
	Gender               string             `json:"gender"`
	AdmissionDate        *time.Time         `json:"admission_date,omitempty"`
	DischargeDate        *time.Time         `json:"discharge_date,omitempty"`
	Status               string             `json:"status"`
	DoctorName           string             `json:"doctor_name,omitempty"`
	DoctorSpecialization string             `json:"doctor_specialization,omitempty"`
	Diagnoses            []DiagnosisLine    `json:"diagnoses,omitempty"`
	Prescriptions        []PrescriptionLine `json:"prescriptions,omitempty"`
}

// Render formats the summary as the printable document.
func (s *Summary) Render() string {
	var sb strings.Builder
	sb.WriteString("========== DISCHARGE SUMMARY ==========\n")
	fmt.Fprintf(&sb, "Patient Name: %s\n", s.PatientName)
	fmt.Fprintf(&sb, "Patient ID: %s\n", s.PatientID)
	fmt.Fprintf(&sb, "Age: %d\n", s.Age)
	fmt.Fprintf(&sb, "Gender: %s\n", s.Gender)
	sb.WriteString("\n---- HOSPITALIZATION DETAILS ----\n")
	fmt.Fprintf(&sb, "Admission Date: %s\n", formatDate(s.AdmissionDate))
	fmt.Fprintf(&sb, "Discharge Date: %s\n", formatDate(s.DischargeDate))
	fmt.Fprintf(&sb, "Status: %s\n", strings.ToUpper(s.Status))
	if s.DoctorName != "" {
		fmt.Fprintf(&sb, "\nAssigned Doctor: %s (%s)\n", s.DoctorName, s.DoctorSpecialization)
	}
	if len(s.Diagnoses) > 0 {
		sb.WriteString("\n---- DIAGNOSES ----\n")
		for _, d := range s.Diagnoses {
			fmt.Fprintf(&sb, "- %s (Severity: %s)\n", d.Condition, d.Severity)
		}
	}
	if len(s.Prescriptions) > 0 {
		sb.WriteString("\n---- PRESCRIPTIONS ----\n")
		for _, p := range s.Prescriptions {
			fmt.Fprintf(&sb, "Prescription ID: %s\n", p.PrescriptionID)
			for _, m := range p.Medicines {
				fmt.Fprintf(&sb, "  - %s: %s, %s for %s\n", m.Name, m.Dosage, m.Frequency, m.Duration)
			}
		}
	}
	sb.WriteString("========================================\n")
	return sb.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04:05")
}
