package output

import (
	"context"

	"line-knowledge-bot/internal/domain"
)

// DocumentConverter interface - Output port
// Converts legacy office formats through an external tool. It never returns a raw
// error: the outcome is tagged on the returned job.
type DocumentConverter interface {
	Convert(ctx context.Context, sourcePath, fromExt, toExt string) domain.ConversionJob
}
