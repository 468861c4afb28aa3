package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/registry"
	"github.com/hms/hms/internal/platform/validate"
)

// PatientDirectory is the slice of the patient service the billing service
// needs: existence checks, the medical-history side channel and the bill
// back-reference.
type PatientDirectory interface {
	PatientName(ctx context.Context, id registry.ID) (string, error)
	AppendHistory(ctx context.Context, id registry.ID, note string) error
	LinkBill(ctx context.Context, patientID, billID registry.ID) error
}

// Service owns the bill registry and the payment lifecycle. Every mutating
// call appends exactly one entry to the owning patient's medical history.
type Service struct {
	bills    *registry.Store[*Bill]
	patients PatientDirectory
	currency string
	now      func() time.Time
	log      zerolog.Logger
}

func NewService(bills *registry.Store[*Bill], patients PatientDirectory, currency string, log zerolog.Logger) *Service {
	return &Service{
		bills:    bills,
		patients: patients,
		currency: currency,
		now:      time.Now,
		log:      log,
	}
}

// SetClock overrides the time source. Tests only.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// GenerateBill creates a zeroed Pending bill for the patient and links it to
// the patient record.
func (s *Service) GenerateBill(ctx context.Context, patientID registry.ID) (*Bill, error) {
	if _, err := s.patients.PatientName(ctx, patientID); err != nil {
		return nil, err
	}

	b := &Bill{
		PatientID:     patientID,
		BillDate:      s.now(),
		PaymentStatus: PaymentPending,
	}
	id := s.bills.Create(b)
	if err := s.patients.LinkBill(ctx, patientID, id); err != nil {
		return nil, err
	}
	if err := s.patients.AppendHistory(ctx, patientID, fmt.Sprintf("Bill %s generated", id)); err != nil {
		return nil, err
	}
	s.log.Info().Stringer("bill_id", id).Stringer("patient_id", patientID).Msg("bill generated")
	return b, nil
}

// Get returns the bill for id.
func (s *Service) Get(ctx context.Context, id registry.ID) (*Bill, error) {
	return s.bills.Get(id)
}

// AddCharge appends a service line item and recomputes the totals.
func (s *Service) AddCharge(ctx context.Context, billID registry.ID, service string, cost float64) error {
	if err := validate.Required("service", service); err != nil {
		return err
	}
	if err := validate.Amount("cost", cost); err != nil {
		return err
	}
	return s.mutate(ctx, billID, fmt.Sprintf("Charge added to bill %s: %s (%s %.2f)", billID, service, s.currency, cost),
		func(b *Bill) error {
			b.Services = append(b.Services, LineItem{Service: service, Cost: cost})
			return nil
		})
}

// AddMedicineCost adds to the bill's medicine total.
func (s *Service) AddMedicineCost(ctx context.Context, billID registry.ID, cost float64) error {
	if err := validate.Amount("cost", cost); err != nil {
		return err
	}
	return s.mutate(ctx, billID, fmt.Sprintf("Medicine cost of %s %.2f added to bill %s", s.currency, cost, billID),
		func(b *Bill) error {
			b.MedicinesCost += cost
			return nil
		})
}

// AddRoomCharges adds to the bill's room-charge total.
func (s *Service) AddRoomCharges(ctx context.Context, billID registry.ID, cost float64) error {
	if err := validate.Amount("cost", cost); err != nil {
		return err
	}
	return s.mutate(ctx, billID, fmt.Sprintf("Room charges of %s %.2f added to bill %s", s.currency, cost, billID),
		func(b *Bill) error {
			b.RoomCharges += cost
			return nil
		})
}

// SetConsultationFee sets the bill's consultation fee.
func (s *Service) SetConsultationFee(ctx context.Context, billID registry.ID, fee float64) error {
	if err := validate.Amount("fee", fee); err != nil {
		return err
	}
	return s.mutate(ctx, billID, fmt.Sprintf("Consultation fee of %s %.2f set on bill %s", s.currency, fee, billID),
		func(b *Bill) error {
			b.ConsultationFee = fee
			return nil
		})
}

// ProcessPayment records a payment against the bill. Overpayment is
// rejected; the pending amount never goes negative and the payment status
// never regresses.
func (s *Service) ProcessPayment(ctx context.Context, billID registry.ID, amount float64) error {
	b, err := s.bills.Get(billID)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return &InvalidPaymentError{Amount: amount, Pending: b.PendingAmount, Reason: "amount must be positive"}
	}
	if amount > b.PendingAmount {
		return &InvalidPaymentError{
			Amount:  amount,
			Pending: b.PendingAmount,
			Reason:  fmt.Sprintf("exceeds pending amount of %.2f", b.PendingAmount),
		}
	}
	return s.mutate(ctx, billID, fmt.Sprintf("Payment of %s %.2f received against bill %s", s.currency, amount, billID),
		func(b *Bill) error {
			b.PaidAmount += amount
			return nil
		})
}

// mutate applies fn to the bill, restores the invariants and records the
// history entry on the owning patient.
func (s *Service) mutate(ctx context.Context, billID registry.ID, note string, fn func(*Bill) error) error {
	var patientID registry.ID
	err := s.bills.Update(billID, func(b *Bill) error {
		if err := fn(b); err != nil {
			return err
		}
		b.recalculate()
		patientID = b.PatientID
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.patients.AppendHistory(ctx, patientID, note); err != nil {
		return err
	}
	s.log.Debug().Stringer("bill_id", billID).Str("note", note).Msg("bill updated")
	return nil
}

// Receipt returns the read-only projection of the bill's current state.
func (s *Service) Receipt(ctx context.Context, billID registry.ID) (*Receipt, error) {
	b, err := s.bills.Get(billID)
	if err != nil {
		return nil, err
	}
	patientName, err := s.patients.PatientName(ctx, b.PatientID)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		ReceiptNumber:   uuid.NewString(),
		BillID:          b.ID.String(),
		PatientName:     patientName,
		BillDate:        b.BillDate,
		Services:        append([]LineItem(nil), b.Services...),
		ConsultationFee: b.ConsultationFee,
		MedicinesCost:   b.MedicinesCost,
		RoomCharges:     b.RoomCharges,
		TotalAmount:     b.TotalAmount,
		PaidAmount:      b.PaidAmount,
		PendingAmount:   b.PendingAmount,
		PaymentStatus:   b.PaymentStatus,
		Currency:        s.currency,
	}, nil
}

// Report aggregates every bill belonging to the patient.
func (s *Service) Report(ctx context.Context, patientID registry.ID) (*Report, error) {
	patientName, err := s.patients.PatientName(ctx, patientID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		PatientID:   patientID.String(),
		PatientName: patientName,
	}
	for _, b := range s.bills.List() {
		if b.PatientID != patientID {
			continue
		}
		report.TotalBills++
		report.TotalCharged += b.TotalAmount
		report.TotalPaid += b.PaidAmount
		report.TotalPending += b.PendingAmount
		report.Bills = append(report.Bills, BillSummary{
			BillID:        b.ID.String(),
			Date:          b.BillDate,
			Amount:        b.TotalAmount,
			Paid:          b.PaidAmount,
			Pending:       b.PendingAmount,
			PaymentStatus: b.PaymentStatus,
		})
	}
	return report, nil
}
