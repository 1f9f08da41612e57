package http

import (
	"bytes"
	"net/http"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/input"

	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sirupsen/logrus"
)

// LineWebhookHandler struct - Primary/Driving adapter for LINE webhook
type LineWebhookHandler struct {
	service       input.LineWebhookService
	channelSecret string
}

// NewLineWebhookHandler func - Creates new LINE webhook handler
func NewLineWebhookHandler(service input.LineWebhookService, channelSecret string) *LineWebhookHandler {
	return &LineWebhookHandler{
		service:       service,
		channelSecret: channelSecret,
	}
}

// HandleWebhook func - Handles incoming LINE webhook requests
// @Summary LINE Webhook
// @Description Handles webhook events from LINE Messaging API
// @Tags LINE
// @Accept application/json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /webhook/line [post]
func (h *LineWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	// Convert Fiber request to http.Request for LINE SDK
	body := c.Body()
	httpReq, err := http.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(body))
	if err != nil {
		logrus.Errorf("Failed to create http request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal error",
		})
	}

	c.Request().Header.VisitAll(func(key, value []byte) {
		httpReq.Header.Set(string(key), string(value))
	})

	// Parse and validate webhook request
	cb, err := webhook.ParseRequest(h.channelSecret, httpReq)
	if err != nil {
		logrus.Errorf("Failed to parse webhook request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid signature or request",
		})
	}

	domainEvents := make([]domain.LineWebhookEvent, 0, len(cb.Events))
	for _, event := range cb.Events {
		domainEvent := h.convertToDomainEvent(event)
		if domainEvent != nil {
			domainEvents = append(domainEvents, *domainEvent)
		}
	}

	webhookReq := domain.LineWebhookRequest{
		Destination: cb.Destination,
		Events:      domainEvents,
	}

	if err := h.service.HandleWebhook(c.UserContext(), webhookReq); err != nil {
		logrus.Errorf("Failed to handle webhook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to process webhook",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
	})
}

// convertToDomainEvent - Converts LINE SDK event to domain event
func (h *LineWebhookHandler) convertToDomainEvent(event webhook.EventInterface) *domain.LineWebhookEvent {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return h.convertMessageEvent(e)
	case webhook.PostbackEvent:
		return h.convertPostbackEvent(e)
	case webhook.FollowEvent:
		return &domain.LineWebhookEvent{
			Type:       domain.LineEventTypeFollow,
			ReplyToken: e.ReplyToken,
			Source:     h.convertSource(e.Source),
		}
	case webhook.JoinEvent:
		return &domain.LineWebhookEvent{
			Type:       domain.LineEventTypeJoin,
			ReplyToken: e.ReplyToken,
			Source:     h.convertSource(e.Source),
		}
	case webhook.UnfollowEvent:
		return &domain.LineWebhookEvent{
			Type:   domain.LineEventTypeUnfollow,
			Source: h.convertSource(e.Source),
		}
	default:
		logrus.Warnf("Unsupported event type: %T", event)
		return nil
	}
}

// convertMessageEvent - Converts message event
func (h *LineWebhookHandler) convertMessageEvent(event webhook.MessageEvent) *domain.LineWebhookEvent {
	domainEvent := &domain.LineWebhookEvent{
		Type:       domain.LineEventTypeMessage,
		ReplyToken: event.ReplyToken,
		Source:     h.convertSource(event.Source),
	}

	switch msg := event.Message.(type) {
	case webhook.TextMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:       msg.Id,
			Type:     domain.LineMessageTypeText,
			Text:     msg.Text,
			Mentions: convertMentions(msg.Mention),
		}
	case webhook.FileMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:       msg.Id,
			Type:     domain.LineMessageTypeFile,
			FileName: msg.FileName,
			FileSize: int64(msg.FileSize),
		}
	case webhook.ImageMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeImage,
		}
	case webhook.StickerMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:        msg.Id,
			Type:      domain.LineMessageTypeSticker,
			PackageID: msg.PackageId,
			StickerID: msg.StickerId,
		}
	default:
		logrus.Warnf("Unsupported message type: %T", msg)
		return nil
	}

	return domainEvent
}

// convertPostbackEvent - Converts postback event
func (h *LineWebhookHandler) convertPostbackEvent(event webhook.PostbackEvent) *domain.LineWebhookEvent {
	domainEvent := &domain.LineWebhookEvent{
		Type:       domain.LineEventTypePostback,
		ReplyToken: event.ReplyToken,
		Source:     h.convertSource(event.Source),
	}
	if event.Postback != nil {
		domainEvent.Postback = &domain.LinePostback{Data: event.Postback.Data}
	}
	return domainEvent
}

func convertMentions(mention *webhook.Mention) []domain.LineMention {
	if mention == nil {
		return nil
	}

	mentions := make([]domain.LineMention, 0, len(mention.Mentionees))
	for _, m := range mention.Mentionees {
		switch mentionee := m.(type) {
		case webhook.UserMentionee:
			mentions = append(mentions, domain.LineMention{
				UserID: mentionee.UserId,
				IsSelf: mentionee.IsSelf,
				Index:  int(mentionee.Index),
				Length: int(mentionee.Length),
			})
		case webhook.AllMentionee:
			// @All is not a bot mention; its span is still stripped
			mentions = append(mentions, domain.LineMention{
				Index:  int(mentionee.Index),
				Length: int(mentionee.Length),
			})
		}
	}
	return mentions
}

// convertSource - Converts event source
func (h *LineWebhookHandler) convertSource(source webhook.SourceInterface) domain.LineSource {
	switch s := source.(type) {
	case webhook.UserSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeUser,
			UserID: s.UserId,
		}
	case webhook.GroupSource:
		return domain.LineSource{
			Type:    domain.LineSourceTypeGroup,
			UserID:  s.UserId,
			GroupID: s.GroupId,
		}
	case webhook.RoomSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeRoom,
			UserID: s.UserId,
			RoomID: s.RoomId,
		}
	default:
		return domain.LineSource{}
	}
}
