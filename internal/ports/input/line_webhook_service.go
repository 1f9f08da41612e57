package input

import (
	"context"

	"line-knowledge-bot/internal/domain"
)

// LineWebhookService interface - Input port (use case)
// Defines what the application can do with LINE webhook events
type LineWebhookService interface {
	// HandleWebhook processes incoming webhook events from LINE
	HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error
}
