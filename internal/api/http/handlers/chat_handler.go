package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-assistant/internal/api/dto"
	"github.com/spec-kit/menu-assistant/internal/auth"
	"github.com/spec-kit/menu-assistant/internal/domain"
	"github.com/spec-kit/menu-assistant/internal/service"
	apperrors "github.com/spec-kit/menu-assistant/pkg/util"
)

const chatMessagesKey = "chat_messages"

// ChatHandler exposes the chat completion proxy.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ValidateBody parses and validates the conversation ahead of the quota
// middleware. Rejecting malformed input here keeps a 400 from consuming a
// message, which matters when the quota counter lives server-side.
func (h *ChatHandler) ValidateBody(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("expected messages array in body")
	}
	if err := service.ValidateMessages(req.Messages); err != nil {
		return err
	}
	c.Locals(chatMessagesKey, req.Messages)
	return c.Next()
}

// Completion handles POST /menu-assistant (and the legacy /deepseek alias).
// Quota verification runs in the preceding middleware; the rotated token is
// echoed back so the client can persist it for the next turn.
func (h *ChatHandler) Completion(c *fiber.Ctx) error {
	messages, ok := c.Locals(chatMessagesKey).([]domain.ChatMessage)
	if !ok {
		var req dto.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewInvalidInput("expected messages array in body")
		}
		messages = req.Messages
	}

	result, err := h.chat.Complete(c.UserContext(), messages)
	if err != nil {
		return err
	}

	resp := dto.ChatResponse{Reply: result.Reply, Raw: result.Raw}
	if info, ok := auth.TokenInfoFromContext(c); ok {
		verify := dto.NewVerifyResponse(info)
		resp.Token = &verify
	}
	return c.JSON(resp)
}
