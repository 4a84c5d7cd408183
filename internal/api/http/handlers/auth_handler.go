package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-assistant/internal/api/dto"
	"github.com/spec-kit/menu-assistant/internal/auth"
	"github.com/spec-kit/menu-assistant/internal/service"
)

// AuthHandler exposes the quota-token endpoints.
type AuthHandler struct {
	tokens *service.TokenService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Token handles POST /auth/token. No auth header required; this is the entry
// point for anonymous clients.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	// an empty body is a plain first-time issue request
	_ = c.BodyParser(&req)

	info, err := h.tokens.IssueOrRefresh(c.UserContext(), req.Token, req.Refresh, auth.FingerprintFromRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTokenResponse(info))
}

// Verify handles POST /auth/verify: validates the bearer token and consumes
// exactly one message.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c)
	if err != nil {
		return err
	}

	info, err := h.tokens.VerifyAndConsume(c.UserContext(), token, auth.FingerprintFromRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVerifyResponse(info))
}
