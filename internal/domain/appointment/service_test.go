package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/registry"
)

type stubEntity struct{ id registry.ID }

func (s *stubEntity) SetID(id registry.ID) { s.id = id }

type stubPatients struct {
	names map[registry.ID]string
}

func (s *stubPatients) PatientName(_ context.Context, id registry.ID) (string, error) {
	name, ok := s.names[id]
	if !ok {
		return "", &registry.NotFoundError{Kind: "patient", ID: id}
	}
	return name, nil
}

type stubDoctors struct {
	names map[registry.ID]string
	busy  map[registry.ID]bool
}

func (s *stubDoctors) DoctorName(_ context.Context, id registry.ID) (string, error) {
	name, ok := s.names[id]
	if !ok {
		return "", &registry.NotFoundError{Kind: "doctor", ID: id}
	}
	return name, nil
}

func (s *stubDoctors) IsAvailable(_ context.Context, id registry.ID, _ time.Time) (bool, error) {
	if _, ok := s.names[id]; !ok {
		return false, &registry.NotFoundError{Kind: "doctor", ID: id}
	}
	return !s.busy[id], nil
}

func newFixture(t *testing.T) (*Service, registry.ID, registry.ID, *stubDoctors) {
	t.Helper()
	minter := registry.NewStore[*stubEntity]("stub", "X", 1)
	patientID := minter.Create(&stubEntity{})
	doctorID := minter.Create(&stubEntity{})

	patients := &stubPatients{names: map[registry.ID]string{patientID: "John Doe"}}
	doctors := &stubDoctors{
		names: map[registry.ID]string{doctorID: "Dr. Smith"},
		busy:  map[registry.ID]bool{},
	}
	svc := NewService(registry.NewStore[*Appointment]("appointment", "APT", 1000), patients, doctors, zerolog.Nop())
	return svc, patientID, doctorID, doctors
}

func TestScheduleAndGet(t *testing.T) {
	svc, patientID, doctorID, _ := newFixture(t)
	at := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	a, err := svc.Schedule(context.Background(), patientID, doctorID, at, "chest pain")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("status = %s, want %s", a.Status, StatusScheduled)
	}

	got, err := svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.ScheduledAt.Equal(at) || got.Reason != "chest pain" {
		t.Errorf("got %+v", got)
	}
}

func TestScheduleUnknownPatient(t *testing.T) {
	svc, _, doctorID, _ := newFixture(t)
	minter := registry.NewStore[*stubEntity]("stub", "X", 99)
	ghost := minter.Create(&stubEntity{})

	_, err := svc.Schedule(context.Background(), ghost, doctorID, time.Now(), "checkup")
	var nf *registry.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestScheduleUnavailableDoctor(t *testing.T) {
	svc, patientID, doctorID, doctors := newFixture(t)
	doctors.busy[doctorID] = true

	_, err := svc.Schedule(context.Background(), patientID, doctorID, time.Now(), "checkup")
	if err == nil {
		t.Fatal("expected error for unavailable doctor")
	}
}

func TestScheduleConflict(t *testing.T) {
	svc, patientID, doctorID, _ := newFixture(t)
	at := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	if _, err := svc.Schedule(context.Background(), patientID, doctorID, at, "first"); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if _, err := svc.Schedule(context.Background(), patientID, doctorID, at, "second"); err == nil {
		t.Fatal("expected conflict error for same doctor and time")
	}
	// A different slot is fine.
	if _, err := svc.Schedule(context.Background(), patientID, doctorID, at.Add(time.Hour), "second"); err != nil {
		t.Fatalf("Schedule at free slot: %v", err)
	}
}

func TestReschedule(t *testing.T) {
	svc, patientID, doctorID, _ := newFixture(t)
	at := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	a, err := svc.Schedule(context.Background(), patientID, doctorID, at, "checkup")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	moved := at.Add(2 * time.Hour)
	if err := svc.Reschedule(context.Background(), a.ID, moved); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	got, _ := svc.Get(context.Background(), a.ID)
	if got.Status != StatusRescheduled || !got.ScheduledAt.Equal(moved) {
		t.Errorf("got status %s at %s", got.Status, got.ScheduledAt)
	}
}

func TestRescheduleCancelled(t *testing.T) {
	svc, patientID, doctorID, _ := newFixture(t)
	a, err := svc.Schedule(context.Background(), patientID, doctorID, time.Now(), "checkup")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if err := svc.Cancel(context.Background(), a.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	err = svc.Reschedule(context.Background(), a.ID, time.Now().Add(time.Hour))
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}
}

func TestCompleteAndCancelRules(t *testing.T) {
	svc, patientID, doctorID, _ := newFixture(t)
	a, err := svc.Schedule(context.Background(), patientID, doctorID, time.Now(), "checkup")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if err := svc.Complete(context.Background(), a.ID, "prescribed rest"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	got, _ := svc.Get(context.Background(), a.ID)
	if got.Status != StatusCompleted || got.Notes != "prescribed rest" {
		t.Errorf("got %+v", got)
	}

	// Neither cancel nor reschedule after completion.
	var ise *InvalidStateError
	if err := svc.Cancel(context.Background(), a.ID); !errors.As(err, &ise) {
		t.Errorf("Cancel after complete: %v, want InvalidStateError", err)
	}
	if err := svc.Reschedule(context.Background(), a.ID, time.Now()); !errors.As(err, &ise) {
		t.Errorf("Reschedule after complete: %v, want InvalidStateError", err)
	}
}

func TestCompleteCancelled(t *testing.T) {
	svc, patientID, doctorID, _ := newFixture(t)
	a, err := svc.Schedule(context.Background(), patientID, doctorID, time.Now(), "checkup")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if err := svc.Cancel(context.Background(), a.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	err = svc.Complete(context.Background(), a.ID, "")
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}
}

func TestForDoctorOn(t *testing.T) {
	svc, patientID, doctorID, _ := newFixture(t)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	morning, err := svc.Schedule(context.Background(), patientID, doctorID, day.Add(9*time.Hour), "morning")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if _, err := svc.Schedule(context.Background(), patientID, doctorID, day.Add(11*time.Hour), "late"); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	cancelled, err := svc.Schedule(context.Background(), patientID, doctorID, day.Add(14*time.Hour), "cancelled")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if err := svc.Cancel(context.Background(), cancelled.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := svc.Schedule(context.Background(), patientID, doctorID, day.AddDate(0, 0, 1), "next day"); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	got := svc.ForDoctorOn(context.Background(), doctorID, day)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != morning.ID {
		t.Errorf("first appointment = %s, want %s", got[0].ID, morning.ID)
	}
}
