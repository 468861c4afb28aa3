package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

func newTestService() *Service {
	return NewService(registry.NewStore[*Doctor]("doctor", "DR", 1), zerolog.Nop())
}

func TestRegister(t *testing.T) {
	svc := newTestService()

	d, err := svc.Register(context.Background(), "Dr. Rajesh Kumar", "Cardiologist", "555-2001", "rajesh@citymedical.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID.String() != "DR1" {
		t.Errorf("expected DR1, got %s", d.ID)
	}

	got, err := svc.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Dr. Rajesh Kumar" {
		t.Errorf("expected name round-trip, got %s", got.Name)
	}
}

func TestRegister_Invalid(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		err  error
	}{
		{"empty name", func() error { _, err := svc.Register(ctx, "", "GP", "555-2001", "a@b.com"); return err }()},
		{"empty specialization", func() error { _, err := svc.Register(ctx, "Dr. X", "", "555-2001", "a@b.com"); return err }()},
		{"bad phone", func() error { _, err := svc.Register(ctx, "Dr. X", "GP", "ring me", "a@b.com"); return err }()},
		{"bad email", func() error { _, err := svc.Register(ctx, "Dr. X", "GP", "555-2001", "nope"); return err }()},
	}
	for _, tc := range cases {
		var ve *validate.ValidationError
		if !errors.As(tc.err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, tc.err)
		}
	}
}

func TestAvailability(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	d, _ := svc.Register(ctx, "Dr. Priya Singh", "Orthopedic Surgeon", "555-2002", "priya@citymedical.com")

	monday := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	// No schedule recorded: always available.
	ok, err := svc.IsAvailable(ctx, d.ID, monday)
	if err != nil || !ok {
		t.Fatalf("expected available with empty schedule, got %v %v", ok, err)
	}

	if err := svc.SetAvailability(ctx, d.ID, time.Monday, "09:00-13:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ok, _ := svc.IsAvailable(ctx, d.ID, monday); !ok {
		t.Error("expected available on Monday")
	}
	if ok, _ := svc.IsAvailable(ctx, d.ID, tuesday); ok {
		t.Error("expected unavailable on Tuesday")
	}
}

func TestAttachPatient(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	d, _ := svc.Register(ctx, "Dr. Amit Patel", "General Physician", "555-2003", "amit@citymedical.com")

	ids := registry.NewStore[*Doctor]("patient", "PAT", 1)
	p := ids.Create(&Doctor{})

	if err := svc.AttachPatient(ctx, d.ID, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AttachPatient(ctx, d.ID, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.Get(ctx, d.ID)
	if len(got.Patients) != 1 {
		t.Errorf("expected attach to be idempotent, got %d entries", len(got.Patients))
	}
}

func TestDoctorName_NotFound(t *testing.T) {
	svc := newTestService()
	other := newTestService()
	d, _ := other.Register(context.Background(), "Dr. Ghost", "GP", "555-0000", "ghost@x.com")

	_, err := svc.DoctorName(context.Background(), d.ID)
	var nf *registry.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
