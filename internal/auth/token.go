package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token parse failures.
var (
	// ErrInvalidToken covers malformed structure and signature mismatch.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired means the signature was valid but the window elapsed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager handles issuing and validating quota-bearing JWT tokens.
type TokenManager struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager. The window is both the signed expiry
// and the quota reset interval.
func NewTokenManager(secret string, window time.Duration) *TokenManager {
	if window <= 0 {
		window = 12 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), window: window, now: time.Now}
}

// Claims describes the quota token payload. IssuedAt anchors the quota window
// and is preserved across increments; LineageID identifies the sequence of
// re-signed tokens sharing one window.
type Claims struct {
	MessagesUsed int    `json:"messagesUsed"`
	Fingerprint  string `json:"fingerprint,omitempty"`
	LineageID    string `json:"lid,omitempty"`
	jwt.RegisteredClaims
}

// Window returns the configured quota window.
func (tm *TokenManager) Window() time.Duration {
	return tm.window
}

// WithTimeFunc overrides the clock; tests use this to simulate window expiry.
func (tm *TokenManager) WithTimeFunc(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Issue builds and signs a fresh token with a zero counter and a new window
// anchored at now.
func (tm *TokenManager) Issue(fingerprint string) (string, *Claims, error) {
	issuedAt := tm.now()
	claims := &Claims{
		MessagesUsed: 0,
		Fingerprint:  fingerprint,
		LineageID:    uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.window)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// Resign re-signs the claims with an updated counter, preserving the window
// anchor, expiry, lineage and fingerprint. This is the sole write path for
// the counter.
func (tm *TokenManager) Resign(claims *Claims, messagesUsed int) (string, error) {
	next := &Claims{
		MessagesUsed: messagesUsed,
		Fingerprint:  claims.Fingerprint,
		LineageID:    claims.LineageID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  claims.IssuedAt,
			ExpiresAt: claims.ExpiresAt,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, next)
	return token.SignedString(tm.secret)
}

// Parse validates signature and structure. On an elapsed window it still
// returns the decoded claims together with ErrTokenExpired so callers can
// report resetAt.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return tm.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && parsed != nil {
			if claims, ok := parsed.Claims.(*Claims); ok && claims.IssuedAt != nil {
				return claims, ErrTokenExpired
			}
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssuedAtUnix returns the window anchor in Unix seconds.
func (c *Claims) IssuedAtUnix() int64 {
	if c.IssuedAt == nil {
		return 0
	}
	return c.IssuedAt.Unix()
}

// ResetAt returns the Unix second at which the window elapses.
func (c *Claims) ResetAt(window time.Duration) int64 {
	return c.IssuedAtUnix() + int64(window/time.Second)
}
