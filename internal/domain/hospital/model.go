package hospital

import (
	"fmt"

	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

// NoBedsAvailableError is returned when an admission is attempted while the
// bed counter is at zero.
type NoBedsAvailableError struct {
	Hospital string
}

func (e *NoBedsAvailableError) Error() string {
	return fmt.Sprintf("no beds available in %s", e.Hospital)
}

// Hospital is the single shared facility record. AvailableBeds is the
// admission capacity counter; it never goes negative and never exceeds
// TotalBeds.
type Hospital struct {
	ID            registry.ID `json:"id"`
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	TotalBeds     int         `json:"total_beds"`
	AvailableBeds int         `json:"available_beds"`
	Departments   []registry.ID `json:"departments"`
}

// SetID implements registry.Entity.
func (h *Hospital) SetID(id registry.ID) { h.ID = id }

// New validates the facility fields and returns a Hospital with all beds
// available.
func New(name, address, phone, email string, totalBeds int) (*Hospital, error) {
	if err := validate.Required("name", name); err != nil {
		return nil, err
	}
	if err := validate.Phone("phone", phone); err != nil {
		return nil, err
	}
	if err := validate.Email("email", email); err != nil {
		return nil, err
	}
	if totalBeds <= 0 {
		return nil, &validate.ValidationError{Field: "total_beds", Reason: fmt.Sprintf("must be positive, got %d", totalBeds)}
	}
	return &Hospital{
		Name:          name,
		Address:       address,
		Phone:         phone,
		Email:         email,
		TotalBeds:     totalBeds,
		AvailableBeds: totalBeds,
	}, nil
}

// AllocateBed claims one bed for an admission.
func (h *Hospital) AllocateBed() error {
	if h.AvailableBeds <= 0 {
		return &NoBedsAvailableError{Hospital: h.Name}
	}
	h.AvailableBeds--
	return nil
}

// ReleaseBed returns one bed after a discharge, capped at TotalBeds.
func (h *Hospital) ReleaseBed() {
	h.AvailableBeds++
	if h.AvailableBeds > h.TotalBeds {
		h.AvailableBeds = h.TotalBeds
	}
}

// Department groups doctors under one specialty. Doctor membership is kept
// as ids; the doctor registry owns the canonical records.
type Department struct {
	ID          registry.ID   `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Doctors     []registry.ID `json:"doctors"`
	HeadDoctor  registry.ID   `json:"head_doctor,omitempty"`
}

// SetID implements registry.Entity.
func (d *Department) SetID(id registry.ID) { d.ID = id }

// AddDoctor records doctor membership; adding twice is a no-op.
func (d *Department) AddDoctor(doctorID registry.ID) {
	for _, id := range d.Doctors {
		if id == doctorID {
			return
		}
	}
	d.Doctors = append(d.Doctors, doctorID)
}

// RemoveDoctor drops the doctor from the department and reports whether it
// was a member.
func (d *Department) RemoveDoctor(doctorID registry.ID) bool {
	for i, id := range d.Doctors {
		if id == doctorID {
			d.Doctors = append(d.Doctors[:i], d.Doctors[i+1:]...)
			if d.HeadDoctor == doctorID {
				d.HeadDoctor = registry.ID{}
			}
			return true
		}
	}
	return false
}

// HasDoctor reports department membership.
func (d *Department) HasDoctor(doctorID registry.ID) bool {
	for _, id := range d.Doctors {
		if id == doctorID {
			return true
		}
	}
	return false
}
