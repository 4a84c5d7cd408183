package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/menu-assistant/internal/config"
	"github.com/spec-kit/menu-assistant/internal/domain"
	"github.com/spec-kit/menu-assistant/internal/events"
	"github.com/spec-kit/menu-assistant/internal/integrations/openrouter"
	"github.com/spec-kit/menu-assistant/internal/menu"
	apperrors "github.com/spec-kit/menu-assistant/pkg/util"
)

// fallbackLimit bounds the catalogue slice sent when retrieval matches
// nothing, so the prompt never goes out without menu context.
const fallbackLimit = 200

// CompletionClient forwards an assembled conversation to the external
// completion API.
type CompletionClient interface {
	ChatCompletion(ctx context.Context, model string, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, json.RawMessage, error)
}

// MenuProvider supplies the flat deduplicated catalogue.
type MenuProvider interface {
	Load() []domain.MenuItem
}

// ChatService orchestrates one chat turn end-to-end: menu retrieval, prompt
// assembly, upstream call, and the hallucination guard on the reply.
type ChatService struct {
	menu       MenuProvider
	client     CompletionClient
	upstream   config.UpstreamConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ChatDependencies encapsulates collaborators for the chat service.
type ChatDependencies struct {
	Menu       MenuProvider
	Client     CompletionClient
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ChatResult is one completed chat turn.
type ChatResult struct {
	Reply string
	Raw   json.RawMessage
}

// NewChatService builds the service.
func NewChatService(upstream config.UpstreamConfig, deps ChatDependencies) *ChatService {
	return &ChatService{
		menu:       deps.Menu,
		client:     deps.Client,
		upstream:   upstream,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ValidateMessages checks the conversation shape. The handler runs this before
// the quota middleware so a malformed request never consumes a message.
func ValidateMessages(messages []domain.ChatMessage) error {
	if len(messages) == 0 {
		return apperrors.NewInvalidInput("expected messages array in body")
	}
	for _, m := range messages {
		if !domain.ValidRole(m.Role) {
			return apperrors.NewInvalidInput("invalid message role")
		}
	}
	return nil
}

// Complete runs one chat turn against the upstream completion API.
func (s *ChatService) Complete(ctx context.Context, messages []domain.ChatMessage) (ChatResult, error) {
	if err := ValidateMessages(messages); err != nil {
		return ChatResult{}, err
	}

	catalogue := s.menu.Load()
	query := domain.LastUserText(messages)

	toSend := menu.RetrieveRelevant(catalogue, query, menu.DefaultMaxResults)
	if len(toSend) == 0 {
		if len(catalogue) > fallbackLimit {
			toSend = catalogue[:fallbackLimit]
		} else {
			toSend = catalogue
		}
	}

	menuText := menu.Format(toSend, true)
	s.logger.Debug("menu context assembled",
		zap.Int("total", len(catalogue)),
		zap.Int("sent", len(toSend)),
	)

	assembled := make([]domain.ChatMessage, 0, len(messages)+1)
	assembled = append(assembled, domain.ChatMessage{
		Role:    domain.RoleSystem,
		Content: buildSystemPrompt(menuText),
	})
	assembled = append(assembled, messages...)

	reply, raw, err := s.client.ChatCompletion(ctx, s.upstream.Model, assembled, s.upstream.Temperature, s.upstream.MaxTokens)
	if err != nil {
		var statusErr *openrouter.HTTPStatusError
		if errors.As(err, &statusErr) {
			s.publish(ctx, events.New(events.EventUpstreamFailed, events.UpstreamFailedPayload{Status: statusErr.StatusCode}))
			return ChatResult{}, apperrors.NewUpstreamError(statusErr.StatusCode, statusErr.Body)
		}
		return ChatResult{}, apperrors.NewInternalError(err)
	}

	reply = guardReply(reply, catalogue)

	s.publish(ctx, events.New(events.EventChatCompleted, events.ChatCompletedPayload{
		MenuItemsSent: len(toSend),
		ReplyChars:    len(reply),
	}))

	return ChatResult{Reply: reply, Raw: raw}, nil
}

func (s *ChatService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
