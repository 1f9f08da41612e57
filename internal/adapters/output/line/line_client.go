package line

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

var _ output.LineClient = (*LineClientAdapter)(nil)

// LineClientAdapter struct - Output adapter for LINE messaging platform
type LineClientAdapter struct {
	client   *messaging_api.MessagingApiAPI
	blob     *messaging_api.MessagingApiBlobAPI
	location *time.Location
}

// NewLineClientAdapter func - Creates new LINE client adapter
func NewLineClientAdapter(channelToken string) (*LineClientAdapter, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: %w", err)
	}

	blob, err := messaging_api.NewMessagingApiBlobAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging blob API client: %w", err)
	}

	return &LineClientAdapter{
		client:   client,
		blob:     blob,
		location: time.Local,
	}, nil
}

// ReplyMessage - Sends reply messages to LINE user via reply token
func (a *LineClientAdapter) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	messages := a.convertMessages(request.Messages)
	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages to send")
	}

	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: request.ReplyToken,
		Messages:   messages,
	}

	_, err := a.client.ReplyMessage(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send reply message: %w", err)
	}

	logrus.Infof("Successfully sent reply message with token: %s", request.ReplyToken)

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Reply message sent successfully",
	}, nil
}

// PushMessage - Sends push messages to LINE user directly
func (a *LineClientAdapter) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	messages := a.convertMessages(request.Messages)
	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages to send")
	}

	req := &messaging_api.PushMessageRequest{
		To:       request.To,
		Messages: messages,
	}

	_, err := a.client.PushMessage(req, "")
	if err != nil {
		return nil, fmt.Errorf("failed to send push message: %w", err)
	}

	logrus.Infof("Successfully sent push message to: %s", request.To)

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Push message sent successfully",
	}, nil
}

// GetProfile - Gets the display name of a user
func (a *LineClientAdapter) GetProfile(userID string) (string, error) {
	profile, err := a.client.GetProfile(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user profile: %w", err)
	}

	return profile.DisplayName, nil
}

// GetMessageContent - Opens the binary content of a file or image message
func (a *LineClientAdapter) GetMessageContent(messageID string) (io.ReadCloser, error) {
	resp, err := a.blob.GetMessageContent(messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message content: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to get message content: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

func (a *LineClientAdapter) convertMessages(in []domain.LineOutgoingMessage) []messaging_api.MessageInterface {
	messages := make([]messaging_api.MessageInterface, 0, len(in))

	for _, msg := range in {
		lineMsg, err := a.convertToLineMessage(msg)
		if err != nil {
			logrus.Errorf("Failed to convert message: %v", err)
			continue
		}
		messages = append(messages, lineMsg)
	}
	return messages
}

// convertToLineMessage - Helper function to convert domain message to LINE SDK message
func (a *LineClientAdapter) convertToLineMessage(msg domain.LineOutgoingMessage) (messaging_api.MessageInterface, error) {
	switch msg.Type {
	case domain.LineMessageTypeText:
		return &messaging_api.TextMessage{
			Text:       msg.Text,
			QuickReply: buildQuickReply(msg.QuickReply),
		}, nil

	case domain.LineMessageTypeFlex:
		if msg.Carousel == nil {
			return nil, fmt.Errorf("flex message without carousel")
		}
		return &messaging_api.FlexMessage{
			AltText:    msg.Text,
			Contents:   buildDocumentCarousel(msg.Carousel, a.location),
			QuickReply: buildQuickReply(msg.QuickReply),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported message type: %s", msg.Type)
	}
}
