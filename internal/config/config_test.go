package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("TOTAL_BEDS")
	os.Unsetenv("CONSULTATION_FEE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TotalBeds != 100 {
		t.Errorf("expected default 100 beds, got %d", cfg.TotalBeds)
	}
	if cfg.ConsultationFee != 500.0 {
		t.Errorf("expected default consultation fee 500, got %.2f", cfg.ConsultationFee)
	}
	if cfg.Currency != "Rs." {
		t.Errorf("expected default currency Rs., got %s", cfg.Currency)
	}
	if cfg.HospitalName == "" {
		t.Error("expected a default hospital name")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("TOTAL_BEDS", "25")
	os.Setenv("HOSPITAL_NAME", "General Hospital")
	defer os.Unsetenv("TOTAL_BEDS")
	defer os.Unsetenv("HOSPITAL_NAME")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TotalBeds != 25 {
		t.Errorf("expected 25 beds, got %d", cfg.TotalBeds)
	}
	if cfg.HospitalName != "General Hospital" {
		t.Errorf("expected General Hospital, got %s", cfg.HospitalName)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := &Config{HospitalName: "X", TotalBeds: 1, ConsultationFee: 0, LogLevel: "info"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		cfg  Config
	}{
		{"no beds", Config{HospitalName: "X", TotalBeds: 0, LogLevel: "info"}},
		{"negative fee", Config{HospitalName: "X", TotalBeds: 1, ConsultationFee: -1, LogLevel: "info"}},
		{"empty name", Config{TotalBeds: 1, LogLevel: "info"}},
		{"bad log level", Config{HospitalName: "X", TotalBeds: 1, LogLevel: "loud"}},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
