package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// IngestRequest struct - Domain ingestion request DTO
	IngestRequest struct {
		FilePath    string
		LogicalID   LogicalStoreID
		DisplayName string
	}

	// IngestResult struct - Domain ingestion result DTO
	IngestResult struct {
		Handle      StoreHandle
		DisplayName string
		Converted   bool
	}

	// AskRequest struct - Domain query request DTO
	AskRequest struct {
		UserID    string
		LogicalID LogicalStoreID
		Query     string
		// Stateless bypasses the session cache even when sessions are enabled.
		Stateless bool
	}

	// QueryIngestionRequest struct - Domain ingestion log query DTO
	QueryIngestionRequest struct {
		ID        *uuid.UUID
		LogicalID *string
		Outcome   *string

		Limit      *int
		Page       *int
		OrderBy    *string
		Asc        *bool
		Pagination *Pagination
		SortMethod *SortMethod
	}

	// Pagination struct
	Pagination struct {
		Limit  int
		Offset int
	}

	// SortMethod struct
	SortMethod struct {
		Asc     bool
		OrderBy string
	}

	// IngestionResponse struct - Domain ingestion log response DTO
	IngestionResponse struct {
		ID          *uuid.UUID       `json:"id,omitempty"`
		LogicalID   string           `json:"logical_id"`
		DisplayName string           `json:"display_name"`
		SourceExt   string           `json:"source_ext"`
		Outcome     IngestionOutcome `json:"outcome"`
		Reason      string           `json:"reason,omitempty"`
		CreatedAt   *time.Time       `json:"created_at,omitempty"`
	}

	// IngestionListResponse struct - Domain ingestion log list DTO
	IngestionListResponse struct {
		Records     []IngestionResponse
		CurrentPage *int
		PerPage     *int
		TotalItem   *int64
	}

	// LineWebhookRequest struct - Domain LINE webhook request DTO
	LineWebhookRequest struct {
		// Destination is the bot's own user ID
		Destination string
		Events      []LineWebhookEvent
	}

	// LineReplyMessageRequest struct - Domain LINE reply message request DTO
	LineReplyMessageRequest struct {
		ReplyToken string
		Messages   []LineOutgoingMessage
	}

	// LinePushMessageRequest struct - Domain LINE push message request DTO
	LinePushMessageRequest struct {
		To       string
		Messages []LineOutgoingMessage
	}

	// LineOutgoingMessage struct - Domain LINE outgoing message DTO
	LineOutgoingMessage struct {
		Type       LineMessageType
		Text       string
		QuickReply []QuickAction
		Carousel   *DocumentCarousel // For flex
	}

	// LineMessageResponse struct - Domain LINE API response DTO
	LineMessageResponse struct {
		Status  string
		Message string
	}

	// QuickAction struct - a selectable postback action attached to a reply
	QuickAction struct {
		Label string
		Data  string
	}

	// DocumentCarousel struct - one page of the document listing
	DocumentCarousel struct {
		Documents  []CarouselDocument
		Page       int
		TotalPages int
		TotalDocs  int
		PrevData   string
		NextData   string
	}

	// CarouselDocument struct - a listed document with its delete postback
	CarouselDocument struct {
		Document   DocumentDescriptor
		DeleteData string
	}
)

// Reply is the normalized reply payload handed back to the transport
type Reply struct {
	Text         string
	QuickActions []QuickAction
	Carousel     *DocumentCarousel
}

// TextMessage converts the reply to an outgoing LINE message
func (r Reply) TextMessage() LineOutgoingMessage {
	if r.Carousel != nil {
		return LineOutgoingMessage{
			Type:     LineMessageTypeFlex,
			Text:     r.Text,
			Carousel: r.Carousel,
		}
	}
	return LineOutgoingMessage{
		Type:       LineMessageTypeText,
		Text:       r.Text,
		QuickReply: r.QuickActions,
	}
}
