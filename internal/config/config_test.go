package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "autoadmfactor@gmail.com", cfg.AdminEmail)
	assert.Equal(t, 3, cfg.ReviewIntervalDays)
	assert.Equal(t, "stock_report.xlsx", cfg.ExportPath)
	assert.Empty(t, cfg.DBPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("REVIEW_INTERVAL_DAYS", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com", cfg.SMTPHost)
	assert.Equal(t, 7, cfg.ReviewIntervalDays)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "stock.env")
	content := "SMTP_PORT=2525\nADMIN_EMAIL=ops@example.com\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, "ops@example.com", cfg.AdminEmail)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative interval", func(c *Config) { c.ReviewIntervalDays = -1 }},
		{"zero port", func(c *Config) { c.SMTPPort = 0 }},
		{"port out of range", func(c *Config) { c.SMTPPort = 70000 }},
		{"empty admin email", func(c *Config) { c.AdminEmail = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				SMTPHost:           "smtp.gmail.com",
				SMTPPort:           465,
				AdminEmail:         "autoadmfactor@gmail.com",
				ReviewIntervalDays: 3,
			}
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), types.ErrValidation)
		})
	}
}
