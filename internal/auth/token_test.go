package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 12*time.Hour)

	before := time.Now().Unix()
	tokenStr, issued, err := tm.Issue("fp-1")
	require.NoError(t, err)
	after := time.Now().Unix()

	claims, err := tm.Parse(tokenStr)
	require.NoError(t, err)
	require.Equal(t, 0, claims.MessagesUsed)
	require.Equal(t, "fp-1", claims.Fingerprint)
	require.Equal(t, issued.LineageID, claims.LineageID)
	require.NotEmpty(t, claims.LineageID)
	require.GreaterOrEqual(t, claims.IssuedAtUnix(), before)
	require.LessOrEqual(t, claims.IssuedAtUnix(), after+2)
}

func TestParse_TamperedTokenIsInvalid(t *testing.T) {
	tm := NewTokenManager("test-secret", 12*time.Hour)
	tokenStr, _, err := tm.Issue("")
	require.NoError(t, err)

	// flip one byte in the payload segment
	parts := strings.Split(tokenStr, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = tm.Parse(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecretIsInvalid(t *testing.T) {
	tm := NewTokenManager("test-secret", 12*time.Hour)
	other := NewTokenManager("other-secret", 12*time.Hour)

	tokenStr, _, err := tm.Issue("")
	require.NoError(t, err)

	_, err = other.Parse(tokenStr)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_GarbageIsInvalid(t *testing.T) {
	tm := NewTokenManager("test-secret", 12*time.Hour)
	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Parse(tokenStr)
		require.ErrorIs(t, err, ErrInvalidToken, "token=%q", tokenStr)
	}
}

func TestParse_ExpiredReturnsClaims(t *testing.T) {
	now := time.Now()
	tm := NewTokenManager("test-secret", 12*time.Hour)
	tm.WithTimeFunc(func() time.Time { return now })

	tokenStr, issued, err := tm.Issue("fp-1")
	require.NoError(t, err)

	tm.WithTimeFunc(func() time.Time { return now.Add(12*time.Hour + time.Second) })

	claims, err := tm.Parse(tokenStr)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.NotNil(t, claims)
	require.Equal(t, issued.IssuedAtUnix(), claims.IssuedAtUnix())
	require.False(t, errors.Is(err, ErrInvalidToken))
}

func TestResign_PreservesWindowAnchor(t *testing.T) {
	tm := NewTokenManager("test-secret", 12*time.Hour)

	tokenStr, _, err := tm.Issue("fp-1")
	require.NoError(t, err)
	claims, err := tm.Parse(tokenStr)
	require.NoError(t, err)

	rotated, err := tm.Resign(claims, 3)
	require.NoError(t, err)
	require.NotEqual(t, tokenStr, rotated)

	next, err := tm.Parse(rotated)
	require.NoError(t, err)
	require.Equal(t, 3, next.MessagesUsed)
	require.Equal(t, claims.IssuedAtUnix(), next.IssuedAtUnix())
	require.Equal(t, claims.ExpiresAt.Unix(), next.ExpiresAt.Unix())
	require.Equal(t, claims.LineageID, next.LineageID)
	require.Equal(t, claims.Fingerprint, next.Fingerprint)
}

func TestResetAt(t *testing.T) {
	tm := NewTokenManager("test-secret", 12*time.Hour)
	tokenStr, _, err := tm.Issue("")
	require.NoError(t, err)
	claims, err := tm.Parse(tokenStr)
	require.NoError(t, err)
	require.Equal(t, claims.IssuedAtUnix()+43200, claims.ResetAt(tm.Window()))
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("1.2.3.4", "Mozilla/5.0")
	b := Fingerprint("1.2.3.4", "Mozilla/5.0")
	c := Fingerprint("4.3.2.1", "Mozilla/5.0")
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.NotEmpty(t, a)
}

func TestFingerprint_EmptyInputsFallBack(t *testing.T) {
	require.Equal(t, Fingerprint("", ""), Fingerprint("unknown", "unknown"))
}
