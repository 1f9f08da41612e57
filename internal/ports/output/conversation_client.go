package output

import (
	"context"

	"line-knowledge-bot/internal/domain"
)

// ConversationClient interface - Output port
// Defines what the application needs from the hosted generation service.
type ConversationClient interface {
	// CreateConversation opens a conversational-memory context with a fixed system
	// instruction. A non-empty handle binds the store as a retrieval tool for this
	// context only.
	CreateConversation(ctx context.Context, systemPrompt string, handle domain.StoreHandle) (domain.Conversation, error)

	// Generate answers a single stateless query, grounded on the store when a handle is given
	Generate(ctx context.Context, query string, handle domain.StoreHandle) (*domain.Answer, error)

	// DescribeImage returns a description of an image
	DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}
