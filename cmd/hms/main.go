package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/diagnosis"
	"github.com/hms/hms/internal/domain/discharge"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/hospital"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/platform/registry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms",
		Short: "Hospital Management System",
	}

	rootCmd.AddCommand(demoCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a full admission-to-discharge walkthrough",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

// app bundles the wired services. Everything shares the in-memory
// registries built in newApp.
type app struct {
	cfg           *config.Config
	hospital      *hospital.Service
	doctors       *doctor.Service
	patients      *patient.Service
	appointments  *appointment.Service
	diagnoses     *diagnosis.Service
	prescriptions *prescription.Service
	billing       *billing.Service
	discharge     *discharge.Service
}

func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	h, err := hospital.New(cfg.HospitalName, cfg.HospitalAddress, cfg.HospitalPhone, cfg.HospitalEmail, cfg.TotalBeds)
	if err != nil {
		return nil, err
	}

	hospitalSvc := hospital.NewService(h, registry.NewStore[*hospital.Department]("department", "D", 1), logger)
	doctorSvc := doctor.NewService(registry.NewStore[*doctor.Doctor]("doctor", "DR", 1), logger)
	patientSvc := patient.NewService(registry.NewStore[*patient.Patient]("patient", "PAT", 1), h, doctorSvc, logger)
	appointmentSvc := appointment.NewService(registry.NewStore[*appointment.Appointment]("appointment", "APT", 1000), patientSvc, doctorSvc, logger)
	diagnosisSvc := diagnosis.NewService(registry.NewStore[*diagnosis.Diagnosis]("diagnosis", "DIG", 5000), patientSvc, doctorSvc, logger)
	prescriptionSvc := prescription.NewService(registry.NewStore[*prescription.Prescription]("prescription", "PRE", 8000), patientSvc, doctorSvc, logger)
	billingSvc := billing.NewService(registry.NewStore[*billing.Bill]("bill", "BIL", 9000), patientSvc, cfg.Currency, logger)
	dischargeSvc := discharge.NewService(patientSvc, doctorSvc, diagnosisSvc, prescriptionSvc, appointmentSvc, logger)

	return &app{
		cfg:           cfg,
		hospital:      hospitalSvc,
		doctors:       doctorSvc,
		patients:      patientSvc,
		appointments:  appointmentSvc,
		diagnoses:     diagnosisSvc,
		prescriptions: prescriptionSvc,
		billing:       billingSvc,
		discharge:     dischargeSvc,
	}, nil
}

func runDemo() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build services")
	}

	ctx := context.Background()
	logger.Info().Str("hospital", cfg.HospitalName).Int("beds", cfg.TotalBeds).Msg("hospital ready")

	// Departments and staff.
	cardiology, err := a.hospital.AddDepartment(ctx, "Cardiology", "Heart and vascular care")
	if err != nil {
		return err
	}
	orthopedics, err := a.hospital.AddDepartment(ctx, "Orthopedics", "Bone and joint care")
	if err != nil {
		return err
	}

	drSmith, err := a.doctors.Register(ctx, "Dr. Smith", "Cardiology", "555-2001", "smith@citymedical.com")
	if err != nil {
		return err
	}
	drJones, err := a.doctors.Register(ctx, "Dr. Jones", "Orthopedics", "555-2002", "jones@citymedical.com")
	if err != nil {
		return err
	}
	if err := a.hospital.AssignDoctor(ctx, cardiology.ID, drSmith.ID); err != nil {
		return err
	}
	if err := a.hospital.SetHeadDoctor(ctx, cardiology.ID, drSmith.ID); err != nil {
		return err
	}
	if err := a.hospital.AssignDoctor(ctx, orthopedics.ID, drJones.ID); err != nil {
		return err
	}
	for day := time.Monday; day <= time.Friday; day++ {
		if err := a.doctors.SetAvailability(ctx, drSmith.ID, day, "09:00-17:00"); err != nil {
			return err
		}
	}

	// Patient registration and admission.
	john, err := a.patients.Register(ctx, "John Doe", 45, "male", "555-3001", "john.doe@example.com", "7 Elm St")
	if err != nil {
		return err
	}
	if err := a.patients.Admit(ctx, john.ID, drSmith.ID); err != nil {
		return err
	}

	// Consultation.
	visit, err := a.appointments.Schedule(ctx, john.ID, drSmith.ID, nextWeekday(time.Monday, 10), "Chest pain and shortness of breath")
	if err != nil {
		return err
	}
	if err := a.appointments.Complete(ctx, visit.ID, "ECG and blood work ordered"); err != nil {
		return err
	}

	if _, err := a.diagnoses.Record(ctx, john.ID, drSmith.ID, "Hypertension", "Stage 2, confirmed over two readings", diagnosis.SeverityHigh); err != nil {
		return err
	}
	if _, err := a.prescriptions.Create(ctx, john.ID, drSmith.ID, registry.ID{}, []prescription.Medicine{
		{Name: "Amlodipine", Dosage: "5mg", Frequency: "once daily", Duration: "30 days"},
		{Name: "Losartan", Dosage: "50mg", Frequency: "once daily", Duration: "30 days"},
	}, "Take with food; recheck blood pressure weekly"); err != nil {
		return err
	}

	// Billing.
	bill, err := a.billing.GenerateBill(ctx, john.ID)
	if err != nil {
		return err
	}
	if err := a.billing.SetConsultationFee(ctx, bill.ID, cfg.ConsultationFee); err != nil {
		return err
	}
	if err := a.billing.AddCharge(ctx, bill.ID, "ECG", 350); err != nil {
		return err
	}
	if err := a.billing.AddCharge(ctx, bill.ID, "Blood Panel", 200); err != nil {
		return err
	}
	if err := a.billing.AddMedicineCost(ctx, bill.ID, 420); err != nil {
		return err
	}
	if err := a.billing.AddRoomCharges(ctx, bill.ID, 1200); err != nil {
		return err
	}
	if err := a.billing.ProcessPayment(ctx, bill.ID, 2000); err != nil {
		return err
	}

	receipt, err := a.billing.Receipt(ctx, bill.ID)
	if err != nil {
		return err
	}
	fmt.Print(receipt.Render())

	// Settle the balance.
	outstanding, err := a.billing.Get(ctx, bill.ID)
	if err != nil {
		return err
	}
	if err := a.billing.ProcessPayment(ctx, bill.ID, outstanding.PendingAmount); err != nil {
		return err
	}

	// Discharge and follow-up.
	if err := a.discharge.Initiate(ctx, john.ID); err != nil {
		return err
	}
	summary, err := a.discharge.Summary(ctx, john.ID)
	if err != nil {
		return err
	}
	fmt.Print(summary.Render())

	if _, err := a.discharge.ScheduleFollowUp(ctx, john.ID, drSmith.ID, nextWeekday(time.Monday, 9).AddDate(0, 0, 28)); err != nil {
		return err
	}

	// Medical history and billing report.
	history, err := a.patients.History(ctx, john.ID)
	if err != nil {
		return err
	}
	fmt.Println("---- MEDICAL HISTORY ----")
	for _, entry := range history {
		fmt.Println(entry)
	}

	report, err := a.billing.Report(ctx, john.ID)
	if err != nil {
		return err
	}
	fmt.Println("---- BILLING REPORT ----")
	fmt.Printf("Patient: %s (%s)\n", report.PatientName, report.PatientID)
	fmt.Printf("Bills: %d  Charged: %s %.2f  Paid: %s %.2f  Pending: %s %.2f\n",
		report.TotalBills,
		cfg.Currency, report.TotalCharged,
		cfg.Currency, report.TotalPaid,
		cfg.Currency, report.TotalPending)

	logger.Info().Msg("demo complete")
	return nil
}

// nextWeekday returns the next occurrence of the given weekday at the given
// hour, always in the future.
func nextWeekday(day time.Weekday, hour int) time.Time {
	now := time.Now()
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	for t.Weekday() != day || !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
