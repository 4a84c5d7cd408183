package dto

import "github.com/spec-kit/menu-assistant/internal/domain"

// TokenRequest payload for POST /auth/token. Both fields are optional.
type TokenRequest struct {
	Token   string `json:"token"`
	Refresh bool   `json:"refresh"`
}

// TokenResponse is returned by the issue/refresh endpoint.
type TokenResponse struct {
	Token         string `json:"token"`
	MessagesUsed  int    `json:"messagesUsed"`
	MessagesLimit int    `json:"messagesLimit"`
	ResetAt       int64  `json:"resetAt"`
	ExpiresIn     int64  `json:"expiresIn"`
}

// VerifyResponse is returned after a successful consume; the token field
// carries the rotated token the client must persist.
type VerifyResponse struct {
	Token             string `json:"token"`
	MessagesUsed      int    `json:"messagesUsed"`
	MessagesLimit     int    `json:"messagesLimit"`
	ResetAt           int64  `json:"resetAt"`
	MessagesRemaining int    `json:"messagesRemaining"`
}

// NewTokenResponse maps token info to the issue/refresh shape.
func NewTokenResponse(info domain.TokenInfo) TokenResponse {
	return TokenResponse{
		Token:         info.Token,
		MessagesUsed:  info.MessagesUsed,
		MessagesLimit: info.MessagesLimit,
		ResetAt:       info.ResetAt,
		ExpiresIn:     info.ExpiresIn,
	}
}

// NewVerifyResponse maps token info to the consume shape.
func NewVerifyResponse(info domain.TokenInfo) VerifyResponse {
	return VerifyResponse{
		Token:             info.Token,
		MessagesUsed:      info.MessagesUsed,
		MessagesLimit:     info.MessagesLimit,
		ResetAt:           info.ResetAt,
		MessagesRemaining: info.MessagesRemaining,
	}
}
