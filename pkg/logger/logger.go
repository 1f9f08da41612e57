package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options struct
type Options struct {
	Level      string
	Debug      bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init configures the global logrus logger.
// Debug keeps the human readable text formatter, otherwise logs are JSON.
// When File is set, logs are also written to a rotating file.
func Init(opts Options) *lumberjack.Logger {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if opts.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if opts.Debug {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}

	if opts.File == "" {
		logrus.SetOutput(os.Stdout)
		return nil
	}

	rotator := NewRotator(opts)
	logrus.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return rotator
}

// NewRotator builds the rotating file sink, applying defaults for zero values
func NewRotator(opts Options) *lumberjack.Logger {
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := opts.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 5
	}
	maxAge := opts.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 30
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize, // Megabytes
		MaxBackups: maxBackups,
		MaxAge:     maxAge, // Days
		Compress:   true,
	}
}
