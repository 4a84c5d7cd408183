package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/menu-assistant/internal/auth"
	"github.com/spec-kit/menu-assistant/internal/config"
	"github.com/spec-kit/menu-assistant/internal/domain"
	"github.com/spec-kit/menu-assistant/internal/events"
	apperrors "github.com/spec-kit/menu-assistant/pkg/util"
)

// QuotaStore is an optional server-side consumption counter keyed by token
// lineage. When absent the signed token is the sole state carrier, which
// leaves the documented race where two concurrent consumes of the same token
// value both increment from the same base.
type QuotaStore interface {
	IncrLineage(ctx context.Context, lineageID string, ttl time.Duration) (int64, error)
}

// TokenService enforces the per-window message quota using a signed,
// self-describing token as the state carrier.
type TokenService struct {
	tokens     *auth.TokenManager
	limit      int
	enforceFP  bool
	store      QuotaStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TokenDependencies encapsulates collaborators for the token service.
type TokenDependencies struct {
	QuotaStore QuotaStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTokenService builds the service.
func NewTokenService(cfg config.AuthConfig, deps TokenDependencies) *TokenService {
	return &TokenService{
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.Window()),
		limit:      cfg.MessagesLimit,
		enforceFP:  cfg.EnforceFingerprint,
		store:      deps.QuotaStore,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// TokenManager exposes the underlying token manager for test clock control.
func (s *TokenService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// IssueOrRefresh returns the existing token bit-identical while its window is
// open, so concurrent browser tabs converge on the same session. A fresh
// token is minted on force, absence, validation failure or an elapsed window.
func (s *TokenService) IssueOrRefresh(ctx context.Context, existing string, force bool, fingerprint string) (domain.TokenInfo, error) {
	window := s.tokens.Window()
	windowSec := int64(window / time.Second)

	if !force && existing != "" {
		claims, err := s.tokens.Parse(existing)
		if err == nil {
			age := s.now().Unix() - claims.IssuedAtUnix()
			if age < windowSec {
				return domain.TokenInfo{
					Token:         existing,
					MessagesUsed:  claims.MessagesUsed,
					MessagesLimit: s.limit,
					ResetAt:       claims.ResetAt(window),
					ExpiresIn:     windowSec - age,
				}, nil
			}
		}
		// invalid or expired tokens fall through to a fresh mint
	}

	tokenStr, claims, err := s.tokens.Issue(fingerprint)
	if err != nil {
		return domain.TokenInfo{}, apperrors.NewInternalError(err)
	}

	resetAt := claims.ResetAt(window)
	s.publish(ctx, events.New(events.EventTokenIssued, events.TokenIssuedPayload{
		Fingerprint: fingerprint,
		ResetAt:     resetAt,
	}))

	return domain.TokenInfo{
		Token:         tokenStr,
		MessagesUsed:  0,
		MessagesLimit: s.limit,
		ResetAt:       resetAt,
		ExpiresIn:     windowSec,
	}, nil
}

// VerifyAndConsume validates the token and consumes exactly one message.
// Expiry and limit conditions never rotate the token; the caller decides
// whether to re-issue.
func (s *TokenService) VerifyAndConsume(ctx context.Context, token, fingerprint string) (domain.TokenInfo, error) {
	window := s.tokens.Window()

	claims, err := s.tokens.Parse(token)
	if errors.Is(err, auth.ErrTokenExpired) {
		return domain.TokenInfo{}, apperrors.NewTokenExpired(claims.ResetAt(window))
	}
	if err != nil {
		return domain.TokenInfo{}, apperrors.NewInvalidToken("invalid token")
	}

	resetAt := claims.ResetAt(window)

	// The explicit window check must agree with the signed expiry claim.
	if s.now().Unix()-claims.IssuedAtUnix() >= int64(window/time.Second) {
		return domain.TokenInfo{}, apperrors.NewTokenExpired(resetAt)
	}

	if s.enforceFP && claims.Fingerprint != "" && fingerprint != "" && claims.Fingerprint != fingerprint {
		return domain.TokenInfo{}, apperrors.NewFingerprintMismatch()
	}

	if claims.MessagesUsed >= s.limit {
		s.publish(ctx, events.New(events.EventLimitReached, events.LimitReachedPayload{ResetAt: resetAt}))
		return domain.TokenInfo{}, apperrors.NewLimitReached(claims.MessagesUsed, s.limit, resetAt)
	}

	if s.store != nil && claims.LineageID != "" {
		ttl := time.Until(time.Unix(resetAt, 0))
		count, storeErr := s.store.IncrLineage(ctx, claims.LineageID, ttl)
		if storeErr != nil {
			// degrade to stateless semantics rather than failing the request
			s.logger.Warn("quota store unavailable", zap.Error(storeErr))
		} else if count > int64(s.limit) {
			s.publish(ctx, events.New(events.EventLimitReached, events.LimitReachedPayload{ResetAt: resetAt}))
			return domain.TokenInfo{}, apperrors.NewLimitReached(s.limit, s.limit, resetAt)
		}
	}

	used := claims.MessagesUsed + 1
	rotated, err := s.tokens.Resign(claims, used)
	if err != nil {
		return domain.TokenInfo{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.New(events.EventMessageConsumed, events.MessageConsumedPayload{
		MessagesUsed:      used,
		MessagesRemaining: s.limit - used,
	}))

	return domain.TokenInfo{
		Token:             rotated,
		MessagesUsed:      used,
		MessagesLimit:     s.limit,
		ResetAt:           resetAt,
		MessagesRemaining: s.limit - used,
	}, nil
}

func (s *TokenService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
