package domain

import "fmt"

// ConversionReason tags why a conversion failed
type ConversionReason string

const (
	// ConversionToolNotInstalled - no converter binary found on PATH
	ConversionToolNotInstalled ConversionReason = "tool_not_installed"
	// ConversionTimeout - the converter exceeded its bounded wait
	ConversionTimeout ConversionReason = "timeout"
	// ConversionNonZeroExit - the converter exited with an error status or produced no output
	ConversionNonZeroExit ConversionReason = "non_zero_exit"
	// ConversionException - any other local failure
	ConversionException ConversionReason = "exception"
)

// ConversionError is the failure payload of a conversion job
type ConversionError struct {
	Reason ConversionReason
	Detail string
}

func (e *ConversionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("conversion failed: %s", e.Reason)
	}
	return fmt.Sprintf("conversion failed: %s: %s", e.Reason, e.Detail)
}

// Unwrap lets errors.Is match ErrConversionFailed
func (e *ConversionError) Unwrap() error {
	return ErrConversionFailed
}

// ConversionJob is scoped to one file's handling and never persisted
type ConversionJob struct {
	SourcePath   string
	TargetFormat string
	OutputPath   string
	Failure      *ConversionError
}

// Succeeded reports whether the job produced an output file
func (j ConversionJob) Succeeded() bool {
	return j.Failure == nil && j.OutputPath != ""
}

// Err returns the failure as an error, nil on success
func (j ConversionJob) Err() error {
	if j.Failure == nil {
		return nil
	}
	return j.Failure
}
