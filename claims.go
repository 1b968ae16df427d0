package gate

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the structured payload decoded from a platform credential.
// The JSON claim names match the tokens minted by the platform API.
type Claims struct {
	jwt.RegisteredClaims
	Role     Role `json:"role,omitempty"`
	Verified bool `json:"isVerified"`
}

// UserID returns the subject claim, which the platform sets to the account id.
func (c *Claims) UserID() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time, zero when the claim is absent.
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time, zero when the claim is absent.
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// DecodeCredential parses the stored credential into Claims.
//
// The parse is deliberately unverified: routing decisions only need the
// role and verification flag, and the platform API is the actual authority
// on every protected call. Anything that is empty, malformed, or carries a
// role outside the closed set normalizes to (nil, false) — identical to no
// credential at all. It never returns an error and never panics.
func DecodeCredential(raw string) (*Claims, bool) {
	if raw == "" {
		return nil, false
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, false
	}

	if !claims.Role.IsValid() {
		return nil, false
	}

	return claims, true
}
