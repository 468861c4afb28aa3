package doctor

import (
	"time"

	"github.com/hms/hms/internal/platform/registry"
)

// Doctor is a practitioner record. Assigned patients are kept as ids; the
// patient registry owns the canonical records.
type Doctor struct {
	ID             registry.ID             `json:"id"`
	Name           string                  `json:"name"`
	Specialization string                  `json:"specialization"`
	Phone          string                  `json:"phone"`
	Email          string                  `json:"email"`
	Department     registry.ID             `json:"department,omitempty"`
	Availability   map[time.Weekday]string `json:"availability,omitempty"`
	Patients       []registry.ID           `json:"patients,omitempty"`
}

// SetID implements registry.Entity.
func (d *Doctor) SetID(id registry.ID) { d.ID = id }

// SetAvailability records the time slot the doctor keeps on the given
// weekday.
func (d *Doctor) SetAvailability(day time.Weekday, slot string) {
	if d.Availability == nil {
		d.Availability = make(map[time.Weekday]string)
	}
	d.Availability[day] = slot
}

// IsAvailable reports whether the doctor can take an appointment at t. A
// doctor with no recorded schedule is always available; otherwise the
// weekday must have a slot.
func (d *Doctor) IsAvailable(t time.Time) bool {
	if len(d.Availability) == 0 {
		return true
	}
	_, ok := d.Availability[t.Weekday()]
	return ok
}

// AddPatient records the assignment; adding twice is a no-op.
func (d *Doctor) AddPatient(patientID registry.ID) {
	for _, id := range d.Patients {
		if id == patientID {
			return
		}
	}
	d.Patients = append(d.Patients, patientID)
}
