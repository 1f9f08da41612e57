package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"
	"line-knowledge-bot/pkg/metrics"

	"google.golang.org/genai"
)

var _ output.ConversationClient = (*ConversationClient)(nil)

const imagePrompt = "請詳細描述這張圖片的內容。"

// ConversationClient struct - Output adapter for Gemini chats and generation
type ConversationClient struct {
	client *Client
}

// NewConversationClient func - Create conversation adapter
func NewConversationClient(client *Client) *ConversationClient {
	return &ConversationClient{client: client}
}

// CreateConversation func - Open a chat with a fixed system instruction
func (c *ConversationClient) CreateConversation(ctx context.Context, systemPrompt string, handle domain.StoreHandle) (domain.Conversation, error) {
	cfg := c.generateConfig(handle)
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	chat, err := c.client.genai.Chats.Create(ctx, c.client.model, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w: %v", domain.ErrRemoteFault, err)
	}
	return &chatConversation{chat: chat}, nil
}

// Generate func - Answer a single query without conversation memory
func (c *ConversationClient) Generate(ctx context.Context, query string, handle domain.StoreHandle) (*domain.Answer, error) {
	defer metrics.ObserveRemote("generate", time.Now())

	resp, err := c.client.genai.Models.GenerateContent(ctx, c.client.model, genai.Text(query), c.generateConfig(handle))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w: %v", domain.ErrRemoteFault, err)
	}
	return answerFromResponse(resp), nil
}

// DescribeImage func - Describe an image
func (c *ConversationClient) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	defer metrics.ObserveRemote("describe_image", time.Now())

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(imagePrompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	resp, err := c.client.genai.Models.GenerateContent(ctx, c.client.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("describe image: %w: %v", domain.ErrRemoteFault, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("describe image: %w: empty response", domain.ErrRemoteFault)
	}
	return text, nil
}

func (c *ConversationClient) generateConfig(handle domain.StoreHandle) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.client.temperature),
	}
	if handle != "" {
		cfg.Tools = []*genai.Tool{
			{FileSearch: &genai.FileSearch{FileSearchStoreNames: []string{string(handle)}}},
		}
	}
	return cfg
}

// chatConversation adapts a Gemini chat to domain.Conversation
type chatConversation struct {
	chat *genai.Chat
}

func (c *chatConversation) Send(ctx context.Context, text string) (*domain.Answer, error) {
	defer metrics.ObserveRemote("chat_send", time.Now())

	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return nil, fmt.Errorf("send chat message: %w: %v", domain.ErrRemoteFault, err)
	}
	return answerFromResponse(resp), nil
}
