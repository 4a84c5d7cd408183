package dto

import (
	"encoding/json"

	"github.com/spec-kit/menu-assistant/internal/domain"
)

// ChatRequest payload for the chat completion proxy.
type ChatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// ChatResponse relays the assistant reply. Token carries the rotated quota
// token when enforcement is on; Raw is the upstream document for diagnostics.
type ChatResponse struct {
	Reply string          `json:"reply"`
	Raw   json.RawMessage `json:"raw,omitempty"`
	Token *VerifyResponse `json:"token,omitempty"`
}
