package domain

import (
	"strings"
	"time"
	"unicode/utf16"
)

// LineEventType represents the type of webhook event from LINE
type LineEventType string

const (
	// LineEventTypeMessage - Message event
	LineEventTypeMessage LineEventType = "message"
	// LineEventTypeFollow - Follow event
	LineEventTypeFollow LineEventType = "follow"
	// LineEventTypeUnfollow - Unfollow event
	LineEventTypeUnfollow LineEventType = "unfollow"
	// LineEventTypeJoin - Join event
	LineEventTypeJoin LineEventType = "join"
	// LineEventTypeLeave - Leave event
	LineEventTypeLeave LineEventType = "leave"
	// LineEventTypePostback - Postback event
	LineEventTypePostback LineEventType = "postback"
)

// LineMessageType represents the type of message
type LineMessageType string

const (
	// LineMessageTypeText - Text message
	LineMessageTypeText LineMessageType = "text"
	// LineMessageTypeImage - Image message
	LineMessageTypeImage LineMessageType = "image"
	// LineMessageTypeVideo - Video message
	LineMessageTypeVideo LineMessageType = "video"
	// LineMessageTypeAudio - Audio message
	LineMessageTypeAudio LineMessageType = "audio"
	// LineMessageTypeFile - File message
	LineMessageTypeFile LineMessageType = "file"
	// LineMessageTypeLocation - Location message
	LineMessageTypeLocation LineMessageType = "location"
	// LineMessageTypeSticker - Sticker message
	LineMessageTypeSticker LineMessageType = "sticker"
	// LineMessageTypeFlex - Flex message (outgoing only)
	LineMessageTypeFlex LineMessageType = "flex"
)

// LineSourceType represents the source type of the event
type LineSourceType string

const (
	// LineSourceTypeUser - User source
	LineSourceTypeUser LineSourceType = "user"
	// LineSourceTypeGroup - Group source
	LineSourceTypeGroup LineSourceType = "group"
	// LineSourceTypeRoom - Room source
	LineSourceTypeRoom LineSourceType = "room"
)

// LineWebhookEvent represents a LINE webhook event (domain entity)
type LineWebhookEvent struct {
	ID         string
	Type       LineEventType
	Timestamp  time.Time
	Source     LineSource
	ReplyToken string
	Message    *LineMessage
	Postback   *LinePostback
}

// LineSource represents the source of the event
type LineSource struct {
	Type    LineSourceType
	UserID  string
	GroupID string
	RoomID  string
}

// LogicalStoreID derives the knowledge store identity of the conversation source.
// One store per individual user, group or room.
func (s LineSource) LogicalStoreID() LogicalStoreID {
	switch s.Type {
	case LineSourceTypeUser:
		return LogicalStoreID("user_" + s.UserID)
	case LineSourceTypeGroup:
		return LogicalStoreID("group_" + s.GroupID)
	case LineSourceTypeRoom:
		return LogicalStoreID("room_" + s.RoomID)
	default:
		return LogicalStoreID("unknown_" + s.UserID)
	}
}

// ReplyTarget returns the push destination for the source: the group or room when
// the event came from one, otherwise the user.
func (s LineSource) ReplyTarget() string {
	switch s.Type {
	case LineSourceTypeGroup:
		return s.GroupID
	case LineSourceTypeRoom:
		return s.RoomID
	default:
		return s.UserID
	}
}

// IsMultiParty reports whether the source is a group or a room
func (s LineSource) IsMultiParty() bool {
	return s.Type == LineSourceTypeGroup || s.Type == LineSourceTypeRoom
}

// LineMessage represents a message from LINE
type LineMessage struct {
	ID        string
	Type      LineMessageType
	Text      string
	FileName  string // For file
	FileSize  int64  // For file
	PackageID string // For sticker
	StickerID string // For sticker
	Mentions  []LineMention
}

// LineMention is a single mentionee of a text message.
// Index and Length locate the mention in the text, counted in UTF-16 code units.
type LineMention struct {
	UserID string
	IsSelf bool
	Index  int
	Length int
}

// MentionsBot reports whether the bot is one of the mentionees. botUserID is the
// webhook destination, used when the platform does not flag the self mention.
func (m *LineMessage) MentionsBot(botUserID string) bool {
	if m == nil {
		return false
	}
	for _, mention := range m.Mentions {
		if mention.IsSelf {
			return true
		}
		if botUserID != "" && mention.UserID == botUserID {
			return true
		}
	}
	return false
}

// TextWithoutMentions returns the text with every mention span removed, trimmed
func (m *LineMessage) TextWithoutMentions() string {
	if m == nil {
		return ""
	}
	if len(m.Mentions) == 0 {
		return strings.TrimSpace(m.Text)
	}

	units := utf16.Encode([]rune(m.Text))
	drop := make([]bool, len(units))
	for _, mention := range m.Mentions {
		for i := mention.Index; i < mention.Index+mention.Length && i < len(units); i++ {
			if i >= 0 {
				drop[i] = true
			}
		}
	}

	kept := make([]uint16, 0, len(units))
	for i, u := range units {
		if !drop[i] {
			kept = append(kept, u)
		}
	}
	return strings.TrimSpace(string(utf16.Decode(kept)))
}

// LinePostback represents the payload of a postback event
type LinePostback struct {
	Data string
}
