package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-assistant/internal/domain"
	apperrors "github.com/spec-kit/menu-assistant/pkg/util"
)

const tokenInfoKey = "quota_token_info"

// QuotaVerifier consumes one message from a quota token.
type QuotaVerifier interface {
	VerifyAndConsume(ctx context.Context, token, fingerprint string) (domain.TokenInfo, error)
}

// QuotaMiddleware enforces the message quota on chat routes. When token
// enforcement is disabled it passes every request through unchanged (legacy
// behavior).
type QuotaMiddleware struct {
	verifier QuotaVerifier
	required bool
}

// NewQuotaMiddleware constructs middleware.
func NewQuotaMiddleware(verifier QuotaVerifier, required bool) *QuotaMiddleware {
	return &QuotaMiddleware{verifier: verifier, required: required}
}

// Handle verifies and consumes the bearer token, storing the rotated token
// info for the handler to echo back.
func (m *QuotaMiddleware) Handle(c *fiber.Ctx) error {
	if !m.required {
		return c.Next()
	}

	token, err := BearerToken(c)
	if err != nil {
		return err
	}

	info, err := m.verifier.VerifyAndConsume(c.UserContext(), token, FingerprintFromRequest(c))
	if err != nil {
		return err
	}

	c.Locals(tokenInfoKey, info)
	return c.Next()
}

// TokenInfoFromContext retrieves the consumed token info, if any.
func TokenInfoFromContext(c *fiber.Ctx) (domain.TokenInfo, bool) {
	val := c.Locals(tokenInfoKey)
	if val == nil {
		return domain.TokenInfo{}, false
	}
	info, ok := val.(domain.TokenInfo)
	return info, ok
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.NewInvalidToken("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewInvalidToken("invalid authorization header")
	}
	return parts[1], nil
}
