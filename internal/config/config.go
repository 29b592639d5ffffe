// Package config loads runtime configuration from environment variables and
// an optional .env file.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// Config holds all runtime configuration. The mail password is deliberately
// absent: it is prompted at send time and never persisted.
type Config struct {
	// Database
	DBPath string `mapstructure:"GOODS_DB_PATH"`

	// SMTP endpoint and account identity
	SMTPHost   string `mapstructure:"SMTP_HOST"`
	SMTPPort   int    `mapstructure:"SMTP_PORT"`
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`

	// Business
	ReviewIntervalDays int    `mapstructure:"REVIEW_INTERVAL_DAYS"`
	ExportPath         string `mapstructure:"EXPORT_PATH"`
}

// Load reads configuration from environment variables and, when present, a
// .env file in the working directory (or the explicit file given).
func Load(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(".")
	}
	v.AutomaticEnv()

	// Registering every key (even empty ones) lets AutomaticEnv feed them
	// through Unmarshal.
	v.SetDefault("GOODS_DB_PATH", "")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 465)
	v.SetDefault("ADMIN_EMAIL", "autoadmfactor@gmail.com")
	v.SetDefault("REVIEW_INTERVAL_DAYS", 3)
	v.SetDefault("EXPORT_PATH", "stock_report.xlsx")

	// Missing .env is fine; explicit files must exist.
	if err := v.ReadInConfig(); err != nil {
		if file != "" {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values that the rest of the program assumes.
func (c *Config) Validate() error {
	if c.ReviewIntervalDays < 0 {
		return fmt.Errorf("review interval %d: %w", c.ReviewIntervalDays, types.ErrValidation)
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("smtp port %d: %w", c.SMTPPort, types.ErrValidation)
	}
	if c.AdminEmail == "" {
		return fmt.Errorf("admin email empty: %w", types.ErrValidation)
	}
	return nil
}
