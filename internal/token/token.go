// Package token issues and verifies short-lived HS256 session tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned for every verification failure. Structural, signature
// and expiry problems are deliberately indistinguishable to callers.
var ErrInvalid = errors.New("invalid token")

// Issuer mints and verifies signed session tokens with a shared HS256 key.
type Issuer struct {
	key []byte
	ttl time.Duration
}

// New constructs an Issuer with the given signing key and access token TTL.
func New(key []byte, ttl time.Duration) *Issuer {
	return &Issuer{key: key, ttl: ttl}
}

// Issue creates a signed token carrying the subject and an expiry of now+TTL.
func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.key)
	return signed, exp, err
}

// Verify checks signature and expiry and returns the subject claim.
// Any failure yields ErrInvalid with no further detail.
func (i *Issuer) Verify(tokenString string) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return i.key, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalid
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
