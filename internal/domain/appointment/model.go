package appointment

import (
	"fmt"
	"time"

	"github.com/hms/hms/internal/platform/registry"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

// InvalidStateError is returned when an operation is attempted from a status
// that forbids it, e.g. rescheduling a cancelled appointment.
type InvalidStateError struct {
	Op     string
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: appointment status is %s", e.Op, e.Status)
}

// Appointment links a patient and a doctor at a point in time.
type Appointment struct {
	ID          registry.ID `json:"id"`
	PatientID   registry.ID `json:"patient_id"`
	DoctorID    registry.ID `json:"doctor_id"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	Reason      string      `json:"reason"`
	Status      Status      `json:"status"`
	Notes       string      `json:"notes,omitempty"`
}

// SetID implements registry.Entity.
func (a *Appointment) SetID(id registry.ID) { a.ID = id }

// active reports whether the appointment still occupies the doctor's time.
func (a *Appointment) active() bool {
	return a.Status != StatusCancelled
}
