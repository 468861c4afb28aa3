package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/hms/hms/internal/platform/registry"
)

// PaymentStatus classifies a bill's payment progress. It is derived from
// paid vs total and, under the no-overpayment no-refund policy, only moves
// forward: Pending -> Partial -> Complete.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentComplete PaymentStatus = "complete"
)

// InvalidPaymentError is returned for non-positive payments and for
// payments exceeding the pending amount.
type InvalidPaymentError struct {
	Amount  float64
	Pending float64
	Reason  string
}

func (e *InvalidPaymentError) Error() string {
	return fmt.Sprintf("invalid payment of %.2f: %s", e.Amount, e.Reason)
}

// LineItem is one billed service.
type LineItem struct {
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
}

// Bill is a billing record for one patient. TotalAmount, PendingAmount and
// PaymentStatus are recomputed after every mutation and hold:
//
//	TotalAmount   = sum(line items) + MedicinesCost + ConsultationFee + RoomCharges
//	PendingAmount = TotalAmount - PaidAmount
type Bill struct {
	ID              registry.ID   `json:"id"`
	PatientID       registry.ID   `json:"patient_id"`
	BillDate        time.Time     `json:"bill_date"`
	Services        []LineItem    `json:"services"`
	MedicinesCost   float64       `json:"medicines_cost"`
	ConsultationFee float64       `json:"consultation_fee"`
	RoomCharges     float64       `json:"room_charges"`
	TotalAmount     float64       `json:"total_amount"`
	PaidAmount      float64       `json:"paid_amount"`
	PendingAmount   float64       `json:"pending_amount"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
}

// SetID implements registry.Entity.
func (b *Bill) SetID(id registry.ID) { b.ID = id }

// recalculate restores the bill invariants after a mutation.
func (b *Bill) recalculate() {
	var services float64
	for _, li := range b.Services {
		services += li.Cost
	}
	b.TotalAmount = services + b.MedicinesCost + b.ConsultationFee + b.RoomCharges
	b.PendingAmount = b.TotalAmount - b.PaidAmount

	switch {
	case b.PaidAmount == 0:
		b.PaymentStatus = PaymentPending
	case b.PaidAmount >= b.TotalAmount:
		b.PaymentStatus = PaymentComplete
	default:
		b.PaymentStatus = PaymentPartial
	}
}

// Receipt is the read-only projection of a bill's current state.
type Receipt struct {
	ReceiptNumber   string        `json:"receipt_number"`
	BillID          string        `json:"bill_id"`
	PatientName     string        `json:"patient_name"`
	BillDate        time.Time     `json:"bill_date"`
	Services        []LineItem    `json:"services"`
	ConsultationFee float64       `json:"consultation_fee"`
	MedicinesCost   float64       `json:"medicines_cost"`
	RoomCharges     float64       `json:"room_charges"`
	TotalAmount     float64       `json:"total_amount"`
	PaidAmount      float64       `json:"paid_amount"`
	PendingAmount   float64       `json:"pending_amount"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	Currency        string        `json:"currency"`
}

// Render formats the receipt for display.
func (r *Receipt) Render() string {
	var sb strings.Builder
	sb.WriteString("========== HOSPITAL BILL RECEIPT ==========\n")
	fmt.Fprintf(&sb, "Receipt No: %s\n", r.ReceiptNumber)
	fmt.Fprintf(&sb, "Bill ID: %s\n", r.BillID)
	fmt.Fprintf(&sb, "Patient: %s\n", r.PatientName)
	fmt.Fprintf(&sb, "Bill Date: %s\n", r.BillDate.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n---- CHARGES BREAKDOWN ----\n")
	fmt.Fprintf(&sb, "Consultation Fee: %s %.2f\n", r.Currency, r.ConsultationFee)
	fmt.Fprintf(&sb, "Medicines Cost: %s %.2f\n", r.Currency, r.MedicinesCost)
	fmt.Fprintf(&sb, "Room Charges: %s %.2f\n", r.Currency, r.RoomCharges)
	if len(r.Services) > 0 {
		sb.WriteString("Services:\n")
		for _, li := range r.Services {
			fmt.Fprintf(&sb, "  - %s: %s %.2f\n", li.Service, r.Currency, li.Cost)
		}
	}
	sb.WriteString("\n---- PAYMENT SUMMARY ----\n")
	fmt.Fprintf(&sb, "Total Amount: %s %.2f\n", r.Currency, r.TotalAmount)
	fmt.Fprintf(&sb, "Paid Amount: %s %.2f\n", r.Currency, r.PaidAmount)
	fmt.Fprintf(&sb, "Pending Amount: %s %.2f\n", r.Currency, r.PendingAmount)
	fmt.Fprintf(&sb, "Payment Status: %s\n", strings.ToUpper(string(r.PaymentStatus)))
	sb.WriteString("==========================================\n")
	return sb.String()
}

// BillSummary is one row of a patient's billing report.
type BillSummary struct {
	BillID        string        `json:"bill_id"`
	Date          time.Time     `json:"date"`
	Amount        float64       `json:"amount"`
	Paid          float64       `json:"paid"`
	Pending       float64       `json:"pending"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// Report aggregates every bill of one patient.
type Report struct {
	PatientID    string        `json:"patient_id"`
	PatientName  string        `json:"patient_name"`
	TotalBills   int           `json:"total_bills"`
	TotalCharged float64       `json:"total_charged"`
	TotalPaid    float64       `json:"total_paid"`
	TotalPending float64       `json:"total_pending"`
	Bills        []BillSummary `json:"bills"`
}
