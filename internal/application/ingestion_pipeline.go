package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"
	"line-knowledge-bot/pkg/metrics"
	"line-knowledge-bot/pkg/poller"

	"github.com/sirupsen/logrus"
)

// Upload polling defaults
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollCeiling  = 60 * time.Second
)

// IngestionPipeline struct - takes a staged file through format gate, conversion and upload
type IngestionPipeline struct {
	resolver     *StoreResolver
	store        output.DocumentStore
	converter    output.DocumentConverter
	stager       output.FileStager
	records      output.IngestionRepository // optional
	pollInterval time.Duration
	pollCeiling  time.Duration
}

// NewIngestionPipeline func - Creates new ingestion pipeline. records may be nil.
func NewIngestionPipeline(
	resolver *StoreResolver,
	store output.DocumentStore,
	converter output.DocumentConverter,
	stager output.FileStager,
	records output.IngestionRepository,
	pollInterval, pollCeiling time.Duration,
) *IngestionPipeline {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if pollCeiling <= 0 {
		pollCeiling = DefaultPollCeiling
	}
	return &IngestionPipeline{
		resolver:     resolver,
		store:        store,
		converter:    converter,
		stager:       stager,
		records:      records,
		pollInterval: pollInterval,
		pollCeiling:  pollCeiling,
	}
}

// Ingest func - Use case: ingest a staged file into the store of a logical id.
// The staged file (and any converted copy) is removed on every path.
func (p *IngestionPipeline) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	defer p.remove(req.FilePath)

	ext := domain.FileExtension(req.DisplayName)
	log := logrus.WithFields(logrus.Fields{"logical_id": req.LogicalID, "file": req.DisplayName})

	if !domain.IsAcceptedFormat(ext) {
		err := fmt.Errorf("%w: unsupported extension %q", domain.ErrInputRejected, ext)
		p.record(req, ext, domain.IngestionOutcomeRejected, err)
		return nil, err
	}

	uploadPath, displayName := req.FilePath, req.DisplayName
	converted := false

	if target, ok := domain.ConversionTarget(ext); ok {
		job := p.converter.Convert(ctx, req.FilePath, ext, target)
		if job.OutputPath != "" {
			defer p.remove(job.OutputPath)
		}
		if !job.Succeeded() {
			metrics.ConversionOutcome(string(job.Failure.Reason))
			log.Warnf("Conversion failed: %v", job.Err())
			p.record(req, ext, domain.IngestionOutcomeConversionFailed, job.Err())
			return nil, job.Err()
		}
		metrics.ConversionOutcome("succeeded")
		uploadPath = job.OutputPath
		displayName = domain.SwapExtension(req.DisplayName, target)
		converted = true
	}

	handle, err := p.resolver.EnsureExists(ctx, req.LogicalID)
	if err != nil {
		p.record(req, ext, domain.IngestionOutcomeFailed, err)
		return nil, err
	}

	ref, err := p.store.Upload(ctx, handle, uploadPath, displayName)
	if err != nil {
		p.record(req, ext, domain.IngestionOutcomeFailed, err)
		return nil, err
	}

	err = poller.Until(ctx, p.pollInterval, p.pollCeiling, func(ctx context.Context) (bool, error) {
		return p.store.PollOperation(ctx, ref)
	})
	if errors.Is(err, poller.ErrTimeout) {
		err = fmt.Errorf("%w: operation %s still pending after %s", domain.ErrUploadTimeout, ref.Name, p.pollCeiling)
		p.record(req, ext, domain.IngestionOutcomeTimeout, err)
		return nil, err
	}
	if err != nil {
		p.record(req, ext, domain.IngestionOutcomeFailed, err)
		return nil, err
	}

	log.Infof("Uploaded as %s into %s", displayName, handle)
	p.record(req, ext, domain.IngestionOutcomeSucceeded, nil)

	return &domain.IngestResult{
		Handle:      handle,
		DisplayName: displayName,
		Converted:   converted,
	}, nil
}

func (p *IngestionPipeline) remove(path string) {
	if err := p.stager.Remove(path); err != nil {
		logrus.Warnf("Failed to remove staged file: %v", err)
	}
}

func (p *IngestionPipeline) record(req domain.IngestRequest, ext string, outcome domain.IngestionOutcome, cause error) {
	metrics.IngestionOutcome(string(outcome))
	if p.records == nil {
		return
	}

	record := &domain.IngestionRecord{
		LogicalID:   string(req.LogicalID),
		DisplayName: req.DisplayName,
		SourceExt:   ext,
		Outcome:     outcome,
	}
	if cause != nil {
		record.Reason = cause.Error()
	}
	if _, err := p.records.CreateRecord(record); err != nil {
		logrus.Warnf("Failed to write ingestion record: %v", err)
	}
}
