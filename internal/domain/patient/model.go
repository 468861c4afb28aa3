package patient

import (
	"fmt"
	"time"

	"github.com/hms/hms/internal/platform/registry"
)

// Status is the admission state of a patient.
type Status string

const (
	StatusOutpatient Status = "outpatient"
	StatusAdmitted   Status = "admitted"
	StatusDischarged Status = "discharged"
)

// InvalidStateError is returned when an operation is attempted from a status
// that forbids it, e.g. discharging a patient who is not admitted.
type InvalidStateError struct {
	Op     string
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: patient status is %s", e.Op, e.Status)
}

// HistoryEntry is one line of the append-only medical-history log.
type HistoryEntry struct {
	At   time.Time `json:"at"`
	Note string    `json:"note"`
}

func (e HistoryEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.At.Format("2006-01-02 15:04:05"), e.Note)
}

// Patient is a patient record. History is append-only; diagnosis,
// prescription and bill references are ids back into their own registries.
type Patient struct {
	ID             registry.ID    `json:"id"`
	Name           string         `json:"name"`
	Age            int            `json:"age"`
	Gender         string         `json:"gender"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	Address        string         `json:"address"`
	Status         Status         `json:"status"`
	AdmissionDate  *time.Time     `json:"admission_date,omitempty"`
	DischargeDate  *time.Time     `json:"discharge_date,omitempty"`
	AssignedDoctor registry.ID    `json:"assigned_doctor,omitempty"`
	History        []HistoryEntry `json:"history"`
	Diagnoses      []registry.ID  `json:"diagnoses,omitempty"`
	Prescriptions  []registry.ID  `json:"prescriptions,omitempty"`
	Bills          []registry.ID  `json:"bills,omitempty"`
}

// SetID implements registry.Entity.
func (p *Patient) SetID(id registry.ID) { p.ID = id }

// AddHistory appends one timestamped entry. Entries are never removed or
// reordered.
func (p *Patient) AddHistory(at time.Time, note string) {
	p.History = append(p.History, HistoryEntry{At: at, Note: note})
}
