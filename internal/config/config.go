package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string  `mapstructure:"ENV"`
	LogLevel        string  `mapstructure:"LOG_LEVEL"`
	HospitalName    string  `mapstructure:"HOSPITAL_NAME"`
	HospitalAddress string  `mapstructure:"HOSPITAL_ADDRESS"`
	HospitalPhone   string  `mapstructure:"HOSPITAL_PHONE"`
	HospitalEmail   string  `mapstructure:"HOSPITAL_EMAIL"`
	TotalBeds       int     `mapstructure:"TOTAL_BEDS"`
	ConsultationFee float64 `mapstructure:"CONSULTATION_FEE"`
	Currency        string  `mapstructure:"CURRENCY"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HOSPITAL_NAME", "City Medical Center")
	v.SetDefault("HOSPITAL_ADDRESS", "123 Main St, City")
	v.SetDefault("HOSPITAL_PHONE", "555-1000")
	v.SetDefault("HOSPITAL_EMAIL", "info@citymedical.com")
	v.SetDefault("TOTAL_BEDS", 100)
	v.SetDefault("CONSULTATION_FEE", 500.0)
	v.SetDefault("CURRENCY", "Rs.")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("HOSPITAL_NAME")
	v.BindEnv("HOSPITAL_ADDRESS")
	v.BindEnv("HOSPITAL_PHONE")
	v.BindEnv("HOSPITAL_EMAIL")
	v.BindEnv("TOTAL_BEDS")
	v.BindEnv("CONSULTATION_FEE")
	v.BindEnv("CURRENCY")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run with.
func (c *Config) Validate() error {
	if c.HospitalName == "" {
		return fmt.Errorf("HOSPITAL_NAME must not be empty")
	}
	if c.TotalBeds <= 0 {
		return fmt.Errorf("TOTAL_BEDS must be positive, got %d", c.TotalBeds)
	}
	if c.ConsultationFee < 0 {
		return fmt.Errorf("CONSULTATION_FEE must not be negative, got %.2f", c.ConsultationFee)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}
