package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewRotatorAppliesDefaults(t *testing.T) {
	rotator := NewRotator(Options{File: "bot.log"})

	if rotator.MaxSize != 10 {
		t.Errorf("expected default MaxSize 10, got %d", rotator.MaxSize)
	}
	if rotator.MaxBackups != 5 {
		t.Errorf("expected default MaxBackups 5, got %d", rotator.MaxBackups)
	}
	if rotator.MaxAge != 30 {
		t.Errorf("expected default MaxAge 30, got %d", rotator.MaxAge)
	}
}

func TestInitWritesToRotatingFile(t *testing.T) {
	defer logrus.SetOutput(os.Stdout)

	path := filepath.Join(t.TempDir(), "bot.log")
	rotator := Init(Options{Level: "warn", File: path})
	if rotator == nil {
		t.Fatal("expected a rotator when a file is configured")
	}
	defer rotator.Close()

	if logrus.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", logrus.GetLevel())
	}

	logrus.Warn("store handle cache miss")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log file to contain the entry")
	}
}

func TestInitDebugRaisesLevel(t *testing.T) {
	defer logrus.SetOutput(os.Stdout)

	if rotator := Init(Options{Level: "info", Debug: true}); rotator != nil {
		t.Error("expected no rotator without a file")
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", logrus.GetLevel())
	}
}
