package configs

import (
	"os"
	"strings"
	"testing"
)

// setupTestEnv sets the required secrets, which config.yaml leaves empty
func setupTestEnv() {
	os.Setenv("LINE_CHANNEL_SECRET", "test")
	os.Setenv("LINE_CHANNEL_TOKEN", "test")
	os.Setenv("GEMINI_API_KEY", "test")
}

// cleanupTestEnv cleans up environment variables after tests
func cleanupTestEnv() {
	for _, key := range []string{
		"LINE_CHANNEL_SECRET", "LINE_CHANNEL_TOKEN", "GEMINI_API_KEY",
		"SESSION_TIMEOUT", "SESSION_SWEEP_INTERVAL", "QUERY_USE_SESSION", "POSTGRES_ENABLED", "LOG_LEVEL",
		"GEMINI_TEMPERATURE", "ADMIN_ENABLED",
	} {
		os.Unsetenv(key)
	}
}

// TestConfigFileDefaults tests the values shipped in config.yaml
func TestConfigFileDefaults(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "")
	cfg := GetViper()

	if cfg.Session.Timeout != 60 {
		t.Errorf("Expected Session.Timeout to be 60, got %d", cfg.Session.Timeout)
	}
	if cfg.Session.SweepInterval != 10 {
		t.Errorf("Expected Session.SweepInterval to be 10, got %d", cfg.Session.SweepInterval)
	}
	if cfg.Upload.PollInterval != 2 || cfg.Upload.PollCeiling != 60 {
		t.Errorf("Expected upload polling 2s/60s, got %d/%d", cfg.Upload.PollInterval, cfg.Upload.PollCeiling)
	}
	if len(cfg.Conversion.Commands) != 2 || cfg.Conversion.Commands[0] != "libreoffice" {
		t.Errorf("Expected libreoffice then soffice, got %v", cfg.Conversion.Commands)
	}
	if cfg.Citation.MaxStores != 10000 {
		t.Errorf("Expected Citation.MaxStores to be 10000, got %d", cfg.Citation.MaxStores)
	}
	if !cfg.Query.UseSession {
		t.Error("Expected Query.UseSession to default to true")
	}
	if cfg.Postgres.Enabled {
		t.Error("Expected the ingestion log database to be disabled by default")
	}
	if cfg.Admin.Enabled || cfg.App.CorsAllowedOrigins != "" {
		t.Error("Expected the admin API and CORS to be off by default")
	}
	if cfg.Gemini.Temperature == nil || *cfg.Gemini.Temperature != 0.7 {
		t.Errorf("Expected Gemini.Temperature to be 0.7, got %v", cfg.Gemini.Temperature)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

// TestEnvironmentOverrides tests that env vars replace file values
func TestEnvironmentOverrides(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("SESSION_TIMEOUT", "45")
	os.Setenv("QUERY_USE_SESSION", "false")
	os.Setenv("POSTGRES_ENABLED", "true")

	InitViper(".", "")
	cfg := GetViper()

	if cfg.Session.Timeout != 45 {
		t.Errorf("Expected Session.Timeout to be 45, got %d", cfg.Session.Timeout)
	}
	if cfg.Query.UseSession {
		t.Error("Expected Query.UseSession to be overridden to false")
	}
	if !cfg.Postgres.Enabled {
		t.Error("Expected Postgres.Enabled to be overridden to true")
	}
}

// TestSessionZeroValuesRequireApplicationDefaults tests that zero values pass through for the wiring layer
func TestSessionZeroValuesRequireApplicationDefaults(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("SESSION_TIMEOUT", "0")
	os.Setenv("SESSION_SWEEP_INTERVAL", "0")

	InitViper(".", "")
	cfg := GetViper()

	if cfg.Session.Timeout != 0 || cfg.Session.SweepInterval != 0 {
		t.Errorf("Expected zero session values, got %d/%d", cfg.Session.Timeout, cfg.Session.SweepInterval)
	}
}

// TestValidateRequiresSecrets tests that missing credentials are reported
func TestValidateRequiresSecrets(t *testing.T) {
	cleanupTestEnv()

	InitViper(".", "")
	err := GetViper().Validate()
	if err == nil {
		t.Fatal("Expected validation error for missing credentials")
	}

	for _, field := range []string{"ChannelSecret", "ChannelToken", "APIKey"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected %s in validation error, got %v", field, err)
		}
	}
}

// TestValidateRejectsUnknownLogLevel tests range checks on optional keys
func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("LOG_LEVEL", "verbose")

	InitViper(".", "")
	if err := GetViper().Validate(); err == nil {
		t.Error("Expected validation error for log level verbose")
	}
}

// TestZeroTemperatureIsKept tests that an explicit zero survives loading and validation
func TestZeroTemperatureIsKept(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("GEMINI_TEMPERATURE", "0")

	InitViper(".", "")
	cfg := GetViper()

	if cfg.Gemini.Temperature == nil || *cfg.Gemini.Temperature != 0 {
		t.Errorf("Expected Gemini.Temperature to be 0, got %v", cfg.Gemini.Temperature)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

// TestValidateRejectsTemperatureOutOfRange tests the temperature bounds
func TestValidateRejectsTemperatureOutOfRange(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("GEMINI_TEMPERATURE", "3")

	InitViper(".", "")
	if err := GetViper().Validate(); err == nil {
		t.Error("Expected validation error for temperature 3")
	}
}
