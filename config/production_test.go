package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *ProductionConfig {
	return &ProductionConfig{
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			Name:     "kagami",
			User:     "postgres",
			Password: "secret",
		},
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
		Logging:    LoggingConfig{Level: "info", Output: "stdout"},
		Deployment: DeploymentConfig{BaseURL: "https://qr.example.com"},
		ShortCode:  ShortCodeConfig{Length: 10, MaxAttempts: 5},
		Tracking:   TrackingConfig{Workers: 4, QueueSize: 1024, WriteTimeout: 5 * time.Second},
		QR:         QRConfig{Size: 512},
	}
}

func TestValidateProductionConfig(t *testing.T) {
	t.Run("valid postgres config", func(t *testing.T) {
		require.NoError(t, ValidateProductionConfig(validConfig()))
	})

	t.Run("sqlite does not need credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database = DatabaseConfig{Driver: "sqlite", SQLitePath: "kagami.db"}
		require.NoError(t, ValidateProductionConfig(cfg))
	})

	t.Run("collects every problem", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "mysql"
		cfg.Deployment.BaseURL = "qr.example.com"
		cfg.ShortCode.Length = 3
		cfg.Tracking.Workers = 0
		cfg.Logging.Level = "trace"

		err := ValidateProductionConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DRIVER")
		assert.Contains(t, err.Error(), "BASE_URL")
		assert.Contains(t, err.Error(), "SHORT_CODE_LENGTH")
		assert.Contains(t, err.Error(), "TRACKING_WORKERS")
		assert.Contains(t, err.Error(), "LOG_LEVEL")
	})

	t.Run("missing postgres password", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Password = ""
		err := ValidateProductionConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PASSWORD is required")
	})
}

func TestLoadProductionConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("BASE_URL", "https://qr.example.com/")
	t.Setenv("SHORT_CODE_LENGTH", "12")
	t.Setenv("TRACKING_WRITE_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://qr.example.com", cfg.Deployment.BaseURL)
	assert.Equal(t, 12, cfg.ShortCode.Length)
	assert.Equal(t, 5, cfg.ShortCode.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Tracking.WriteTimeout)
	assert.Equal(t, "X-Vercel-IP-Country", cfg.Tracking.CountryHeader)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Security.AllowedOrigins)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("KAGAMI_TEST_FROM_FILE=file\nKAGAMI_TEST_PRESET=file\n"), 0o600))

	t.Setenv("KAGAMI_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("KAGAMI_TEST_FROM_FILE") })

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "file", os.Getenv("KAGAMI_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("KAGAMI_TEST_PRESET"))

	require.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
}
