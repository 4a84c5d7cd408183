package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
)

// Fingerprint derives an opaque identifier binding a token to a requesting
// context. Same inputs always produce the same value.
func Fingerprint(clientIP, userAgent string) string {
	if clientIP == "" {
		clientIP = "unknown"
	}
	if userAgent == "" {
		userAgent = "unknown"
	}
	sum := sha256.Sum256([]byte(clientIP + "-" + userAgent))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// FingerprintFromRequest resolves the client IP (proxy headers first) and
// user agent from the request.
func FingerprintFromRequest(c *fiber.Ctx) string {
	ip := c.Get("X-Forwarded-For")
	if ip == "" {
		ip = c.Get("X-Real-IP")
	}
	if ip == "" {
		ip = c.IP()
	}
	return Fingerprint(ip, c.Get("User-Agent"))
}
