package gatetest

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	gate "github.com/stayloop/go-gate"
)

// MintCredential signs a platform credential for the given account. Tests
// use it to fabricate tokens without walking the login flow.
func MintCredential(key []byte, user *User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &gate.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:     gate.Role(user.Role),
		Verified: user.Verified,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// verifyCredential checks the signature and returns the claims. Unlike the
// client-side decoder this is the authority: invalid signatures fail.
func verifyCredential(key []byte, raw string) (*gate.Claims, error) {
	claims := &gate.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid credential")
	}
	return claims, nil
}
