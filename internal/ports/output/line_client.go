package output

import (
	"io"

	"line-knowledge-bot/internal/domain"
)

// LineClient interface - Output port
// Defines what the application needs from LINE messaging platform
type LineClient interface {
	// ReplyMessage sends reply messages to LINE user via reply token
	ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)

	// PushMessage sends push messages to LINE user directly
	PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)

	// GetProfile gets the display name of a user
	GetProfile(userID string) (string, error)

	// GetMessageContent opens the binary content (file, image) of a message.
	// The caller closes the returned reader.
	GetMessageContent(messageID string) (io.ReadCloser, error)
}
