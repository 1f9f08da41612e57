package converter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

var _ output.DocumentConverter = (*LibreOfficeConverter)(nil)

// DefaultCommands is the lookup order of converter binaries
var DefaultCommands = []string{"libreoffice", "soffice"}

const (
	defaultDocumentTimeout     = 60 * time.Second
	defaultPresentationTimeout = 120 * time.Second
	// waitDelay bounds how long Wait blocks on pipes held open by orphaned children after a kill
	waitDelay = 2 * time.Second
)

// Options struct - converter settings, zero values use defaults
type Options struct {
	Commands            []string
	DocumentTimeout     time.Duration
	PresentationTimeout time.Duration
}

// LibreOfficeConverter struct - Output adapter running a headless office suite
type LibreOfficeConverter struct {
	commands            []string
	documentTimeout     time.Duration
	presentationTimeout time.Duration
	lookPath            func(file string) (string, error)
}

// NewLibreOfficeConverter func - Create converter
func NewLibreOfficeConverter(opts Options) *LibreOfficeConverter {
	c := &LibreOfficeConverter{
		commands:            opts.Commands,
		documentTimeout:     opts.DocumentTimeout,
		presentationTimeout: opts.PresentationTimeout,
		lookPath:            exec.LookPath,
	}
	if len(c.commands) == 0 {
		c.commands = DefaultCommands
	}
	if c.documentTimeout <= 0 {
		c.documentTimeout = defaultDocumentTimeout
	}
	if c.presentationTimeout <= 0 {
		c.presentationTimeout = defaultPresentationTimeout
	}
	return c
}

// Convert func - Convert sourcePath to toExt next to the input file
func (c *LibreOfficeConverter) Convert(ctx context.Context, sourcePath, fromExt, toExt string) domain.ConversionJob {
	job := domain.ConversionJob{
		SourcePath:   sourcePath,
		TargetFormat: toExt,
	}

	binary, ok := c.findBinary()
	if !ok {
		job.Failure = &domain.ConversionError{
			Reason: domain.ConversionToolNotInstalled,
			Detail: "none of " + strings.Join(c.commands, ", ") + " found on PATH",
		}
		return job
	}

	outDir := filepath.Dir(sourcePath)
	outputPath := domain.SwapExtension(sourcePath, toExt)
	if err := os.Remove(outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		job.Failure = &domain.ConversionError{Reason: domain.ConversionException, Detail: err.Error()}
		return job
	}

	timeout := c.timeoutFor(fromExt)
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary,
		"--headless",
		"--convert-to", strings.TrimPrefix(toExt, "."),
		"--outdir", outDir,
		sourcePath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	logrus.Infof("Converting %s to %s with %s", filepath.Base(sourcePath), toExt, binary)
	err := cmd.Run()

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		discardOutput(outputPath)
		job.Failure = &domain.ConversionError{Reason: domain.ConversionTimeout, Detail: "exceeded " + timeout.String()}
		return job
	case err != nil:
		discardOutput(outputPath)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			job.Failure = &domain.ConversionError{Reason: domain.ConversionNonZeroExit, Detail: strings.TrimSpace(stderr.String())}
		} else {
			job.Failure = &domain.ConversionError{Reason: domain.ConversionException, Detail: err.Error()}
		}
		return job
	}

	if _, statErr := os.Stat(outputPath); statErr != nil {
		job.Failure = &domain.ConversionError{Reason: domain.ConversionNonZeroExit, Detail: "converter produced no output file"}
		return job
	}

	job.OutputPath = outputPath
	return job
}

// discardOutput removes a full or partial output left by a failed run
func discardOutput(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("Failed to remove conversion output %s: %v", path, err)
	}
}

func (c *LibreOfficeConverter) findBinary() (string, bool) {
	for _, name := range c.commands {
		if path, err := c.lookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

func (c *LibreOfficeConverter) timeoutFor(fromExt string) time.Duration {
	if strings.EqualFold(fromExt, ".ppt") {
		return c.presentationTimeout
	}
	return c.documentTimeout
}
