package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/input"
	"line-knowledge-bot/internal/ports/output"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

var _ input.LineWebhookService = (*LineWebhookService)(nil)

// maxImageBytes bounds the image content read into memory
const maxImageBytes = 10 << 20

var errContentTooLarge = errors.New("content exceeds size limit")

var listFilesKeywords = []string{
	"list files", "show files", "my files",
	"列出檔案", "列出文件", "顯示檔案", "顯示文件", "查看檔案", "查看文件",
	"檔案列表", "文件列表", "有哪些檔案", "有哪些文件", "我的檔案", "我的文件",
}

// LineWebhookDeps struct - collaborators of the webhook service
type LineWebhookDeps struct {
	LineClient    output.LineClient
	Conversations output.ConversationClient
	Stager        output.FileStager
	Queries       *QueryOrchestrator
	Catalog       *DocumentCatalog
	Ingestion     *IngestionPipeline
	Sessions      *SessionManager
}

// LineWebhookService struct - Application service routing LINE webhook events
type LineWebhookService struct {
	lineClient    output.LineClient
	conversations output.ConversationClient
	stager        output.FileStager
	queries       *QueryOrchestrator
	catalog       *DocumentCatalog
	ingestion     *IngestionPipeline
	sessions      *SessionManager
}

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(deps LineWebhookDeps) *LineWebhookService {
	return &LineWebhookService{
		lineClient:    deps.LineClient,
		conversations: deps.Conversations,
		stager:        deps.Stager,
		queries:       deps.Queries,
		catalog:       deps.Catalog,
		ingestion:     deps.Ingestion,
		sessions:      deps.Sessions,
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	for _, event := range request.Events {
		logrus.Infof("Received LINE event: type=%s, source=%s, userID=%s",
			event.Type, event.Source.Type, event.Source.UserID)

		var err error
		switch event.Type {
		case domain.LineEventTypeMessage:
			err = s.handleMessageEvent(ctx, event, request.Destination)
		case domain.LineEventTypePostback:
			err = s.handlePostbackEvent(ctx, event)
		case domain.LineEventTypeFollow, domain.LineEventTypeJoin:
			err = s.handleFollowEvent(event)
		default:
			logrus.Infof("Unhandled event type: %s", event.Type)
		}

		if err != nil {
			logrus.Errorf("Failed to handle %s event: %v", event.Type, err)
			return err
		}
	}

	return nil
}

// handleMessageEvent - routes by message type
func (s *LineWebhookService) handleMessageEvent(ctx context.Context, event domain.LineWebhookEvent, botUserID string) error {
	if event.Message == nil {
		return nil
	}

	switch event.Message.Type {
	case domain.LineMessageTypeText:
		return s.handleTextMessage(ctx, event, botUserID)
	case domain.LineMessageTypeFile:
		return s.handleFileMessage(ctx, event)
	case domain.LineMessageTypeImage:
		return s.handleImageMessage(ctx, event)
	default:
		logrus.Infof("Ignoring message: type=%s", event.Message.Type)
		return nil
	}
}

func (s *LineWebhookService) handleTextMessage(ctx context.Context, event domain.LineWebhookEvent, botUserID string) error {
	if event.Source.IsMultiParty() && !event.Message.MentionsBot(botUserID) {
		logrus.Debugf("Bot not mentioned in %s, skipping", event.Source.Type)
		return nil
	}

	text := event.Message.TextWithoutMentions()
	logicalID := event.Source.LogicalStoreID()

	var reply domain.Reply
	switch {
	case strings.HasPrefix(text, "/"):
		reply = s.handleCommand(text, domain.NewSessionKey(event.Source.UserID, logicalID))
	case isListFilesIntent(text):
		reply = s.catalog.List(ctx, logicalID, 1)
	default:
		reply = s.queries.Ask(ctx, domain.AskRequest{
			UserID:    event.Source.UserID,
			LogicalID: logicalID,
			Query:     text,
		})
	}

	return s.reply(event.ReplyToken, reply)
}

// handleCommand - Business logic for command processing, scoped to the session of the current chat
func (s *LineWebhookService) handleCommand(text string, key domain.SessionKey) domain.Reply {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return domain.Reply{Text: msgHelp}
	}

	command := strings.ToLower(parts[0])

	switch command {
	case "/help":
		return domain.Reply{Text: msgHelp}

	case "/clear":
		if s.sessions.Clear(key) {
			return domain.Reply{Text: msgSessionCleared}
		}
		return domain.Reply{Text: msgNoSession}

	case "/session":
		info, ok := s.sessions.Info(key)
		if !ok {
			return domain.Reply{Text: msgNoSession}
		}
		return domain.Reply{Text: sessionInfoMessage(info, int(s.sessions.Timeout().Minutes()))}

	default:
		return domain.Reply{Text: fmt.Sprintf(msgUnknownCommand, command)}
	}
}

func (s *LineWebhookService) handleFileMessage(ctx context.Context, event domain.LineWebhookEvent) error {
	fileName := event.Message.FileName
	ext := domain.FileExtension(fileName)

	if !domain.IsAcceptedFormat(ext) {
		logrus.Warnf("Unsupported file format: %s (%s)", fileName, ext)
		return s.reply(event.ReplyToken, domain.Reply{Text: unsupportedFormatMessage(ext)})
	}

	if err := s.reply(event.ReplyToken, domain.Reply{Text: msgProcessingFile}); err != nil {
		return err
	}

	target := event.Source.ReplyTarget()
	path, err := s.stage(event.Message.ID, ext)
	if err != nil {
		logrus.Errorf("Failed to download file %s: %v", fileName, err)
		return s.push(target, domain.Reply{Text: msgDownloadFailed})
	}

	logicalID := event.Source.LogicalStoreID()
	result, err := s.ingestion.Ingest(ctx, domain.IngestRequest{
		FilePath:    path,
		LogicalID:   logicalID,
		DisplayName: fileName,
	})
	if err != nil {
		logrus.WithField("logical_id", logicalID).Errorf("Ingestion of %s failed: %v", fileName, err)
		return s.push(target, domain.Reply{Text: ingestionFailureMessage(fileName, err)})
	}

	return s.push(target, domain.Reply{
		Text: uploadSucceededMessage(result.DisplayName),
		QuickActions: []domain.QuickAction{
			{Label: labelSummary, Data: queryData(summaryPrompt(result.DisplayName))},
			{Label: labelKeyPoints, Data: queryData(keyPointsPrompt(result.DisplayName))},
			{Label: labelListFiles, Data: listFilesData(1, logicalID)},
		},
	})
}

func (s *LineWebhookService) handleImageMessage(ctx context.Context, event domain.LineWebhookEvent) error {
	if err := s.reply(event.ReplyToken, domain.Reply{Text: msgAnalyzingImage}); err != nil {
		return err
	}

	target := event.Source.ReplyTarget()
	data, err := s.download(event.Message.ID, maxImageBytes)
	if err != nil {
		logrus.Errorf("Failed to download image %s: %v", event.Message.ID, err)
		if errors.Is(err, errContentTooLarge) {
			return s.push(target, domain.Reply{Text: msgImageTooLarge})
		}
		return s.push(target, domain.Reply{Text: msgImageDownload})
	}

	mimeType := mimetype.Detect(data).String()
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}

	description, err := s.conversations.DescribeImage(ctx, data, mimeType)
	if err != nil {
		logrus.Errorf("Failed to describe image: %v", err)
		return s.push(target, domain.Reply{Text: msgImageFailed})
	}

	return s.push(target, domain.Reply{Text: imageResultMessage(description)})
}

// handlePostbackEvent - Business logic for quick actions and carousel buttons
func (s *LineWebhookService) handlePostbackEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	if event.Postback == nil {
		return nil
	}

	logicalID := event.Source.LogicalStoreID()
	pb, err := parsePostback(event.Postback.Data)
	if err != nil {
		logrus.Warnf("Invalid postback %q: %v", event.Postback.Data, err)
		return s.reply(event.ReplyToken, domain.Reply{Text: msgActionFailed})
	}

	var reply domain.Reply
	switch pb.Action {
	case actionQuery:
		reply = s.queries.Ask(ctx, domain.AskRequest{
			UserID:    event.Source.UserID,
			LogicalID: logicalID,
			Query:     pb.Prompt,
			Stateless: true,
		})

	case actionListFiles:
		if pb.Store != "" && pb.Store != string(logicalID) {
			logrus.Warnf("Postback store %s does not match source store %s", pb.Store, logicalID)
		}
		reply = s.catalog.List(ctx, logicalID, max(pb.Page, 1))

	case actionViewCitation:
		reply = s.queries.ViewCitation(logicalID, pb.Num)

	case actionDeleteFile:
		reply = s.catalog.Delete(ctx, logicalID, pb.DocName)

	default:
		logrus.Warnf("Unknown postback action: %s", pb.Action)
		reply = domain.Reply{Text: msgUnknownAction}
	}

	return s.reply(event.ReplyToken, reply)
}

// handleFollowEvent - greets new friends and joined groups
func (s *LineWebhookService) handleFollowEvent(event domain.LineWebhookEvent) error {
	logrus.Infof("Followed or joined: source=%s, target=%s", event.Source.Type, event.Source.ReplyTarget())

	welcome := domain.Reply{Text: welcomeMessage(s.displayName(event.Source))}
	if event.ReplyToken != "" {
		return s.reply(event.ReplyToken, welcome)
	}
	return s.push(event.Source.ReplyTarget(), welcome)
}

// displayName looks up the profile of a 1:1 source; groups and lookup failures get no name
func (s *LineWebhookService) displayName(source domain.LineSource) string {
	if source.Type != domain.LineSourceTypeUser || source.UserID == "" {
		return ""
	}
	name, err := s.lineClient.GetProfile(source.UserID)
	if err != nil {
		logrus.Warnf("Failed to get profile of %s: %v", source.UserID, err)
		return ""
	}
	return name
}

func (s *LineWebhookService) stage(messageID, ext string) (string, error) {
	content, err := s.lineClient.GetMessageContent(messageID)
	if err != nil {
		return "", err
	}
	defer content.Close()

	return s.stager.Stage(content, ext)
}

func (s *LineWebhookService) download(messageID string, limit int64) ([]byte, error) {
	content, err := s.lineClient.GetMessageContent(messageID)
	if err != nil {
		return nil, err
	}
	defer content.Close()

	data, err := io.ReadAll(io.LimitReader(content, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", errContentTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, errors.New("empty content")
	}
	return data, nil
}

func (s *LineWebhookService) reply(replyToken string, reply domain.Reply) error {
	if replyToken == "" {
		return nil
	}
	_, err := s.lineClient.ReplyMessage(domain.LineReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   []domain.LineOutgoingMessage{reply.TextMessage()},
	})
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

func (s *LineWebhookService) push(to string, reply domain.Reply) error {
	_, err := s.lineClient.PushMessage(domain.LinePushMessageRequest{
		To:       to,
		Messages: []domain.LineOutgoingMessage{reply.TextMessage()},
	})
	if err != nil {
		return fmt.Errorf("failed to send push message: %w", err)
	}
	return nil
}

func isListFilesIntent(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range listFilesKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func ingestionFailureMessage(fileName string, err error) string {
	var convErr *domain.ConversionError
	switch {
	case errors.As(err, &convErr):
		return conversionFailedMessage(fileName, convErr.Reason)
	case errors.Is(err, domain.ErrInputRejected):
		return unsupportedFormatMessage(domain.FileExtension(fileName))
	case errors.Is(err, domain.ErrUploadTimeout):
		return msgUploadTimeout
	default:
		return msgUploadFailed
	}
}
