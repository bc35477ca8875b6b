// Package auth implements password hashing, signed session tokens and
// the session cookie. Sessions are self-contained HS256 JWTs; no
// server-side session state exists beyond the signing secret.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the lifetime of a session token and its cookie.
const SessionTTL = 7 * 24 * time.Hour

// Claims is the identity embedded in a session token.
type Claims struct {
	UserID string
	Email  string
}

// Sessions issues and verifies session tokens. The zero value is not
// usable; construct with NewSessions so tests can inject a clock.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret []byte) *Sessions {
	return &Sessions{secret: secret, ttl: SessionTTL, now: time.Now}
}

// WithClock returns a copy of s using now as its clock.
func (s *Sessions) WithClock(now func() time.Time) *Sessions {
	return &Sessions{secret: s.secret, ttl: s.ttl, now: now}
}

// Issue signs a token carrying claims, expiring ttl from now.
func (s *Sessions) Issue(claims Claims) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry. Any failure (malformed token,
// wrong signature, expired) yields ok=false, never an error: absent
// identity is an expected state, not a fault.
func (s *Sessions) Verify(token string) (Claims, bool) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return Claims{}, false
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, false
	}
	userID, ok := mc["sub"].(string)
	if !ok || userID == "" {
		return Claims{}, false
	}
	email, _ := mc["email"].(string)

	return Claims{UserID: userID, Email: email}, true
}
