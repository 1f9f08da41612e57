package domain

import "errors"

// Failure taxonomy of the knowledge core. Every remote-call failure is converted into one
// of these before it reaches the transport layer.

var (
	// ErrInputRejected indicates an unsupported upload format
	ErrInputRejected = errors.New("input rejected")

	// ErrConversionFailed indicates the legacy-format conversion did not produce a file
	ErrConversionFailed = errors.New("conversion failed")

	// ErrUploadTimeout indicates the upload operation did not finish before the polling ceiling
	ErrUploadTimeout = errors.New("upload timeout")

	// ErrStoreNotFound indicates no backend store is bound to the logical store
	ErrStoreNotFound = errors.New("store not found")

	// ErrRemoteFault indicates an unexpected failure of a remote call
	ErrRemoteFault = errors.New("remote fault")

	// ErrStaleReference indicates a citation index that is not valid for the current answer
	ErrStaleReference = errors.New("stale reference")

	// ErrStoreInconsistent indicates documents exist but the store handle could not be resolved
	ErrStoreInconsistent = errors.New("store inconsistent")

	// ErrInvalidRequest indicates a malformed request (bad postback payload)
	ErrInvalidRequest = errors.New("invalid request")

	// ErrIngestionLogDisabled indicates no database is configured for the ingestion log
	ErrIngestionLogDisabled = errors.New("ingestion log disabled")
)
