// Package auth provides the session primitives: JWT tokens and bcrypt
// password hashing.
//
// SESSION FLOW:
//  1. Signup/login verifies credentials and issues a signed JWT
//  2. The handler stores it in an HttpOnly cookie named "session"
//  3. On later requests the middleware reads the cookie, validates the
//     token, and puts the userID into the request context
//
// WHY JWT?
// The token is stateless: the userID and expiry live inside the signed
// payload, so validating a session is a signature check, not a DB lookup.
// The HMAC signature means nobody can mint or alter a token without the
// server's secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionLifetime is how long a login stays valid. After this the
// middleware rejects the token and the user must log in again.
const SessionLifetime = 24 * time.Hour

const issuer = "linkhub"

// TokenService signs and validates session tokens. The same HMAC secret is
// used for both; it must stay server-side.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production,
// e.g. JWT_SECRET=$(openssl rand -hex 32).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims; the userID travels in the standard
// "sub" (Subject) claim.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates a signed session token for userID, valid for
// SessionLifetime (24 hours) from now.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, SessionLifetime)
}

// GenerateWithDuration creates a token with a custom expiry. Tests use this
// to mint already-expired tokens without sleeping.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// ErrTokenExpired is returned by Validate when the session has run past its
// 24-hour lifetime, as opposed to being malformed or tampered with.
var ErrTokenExpired = errors.New("auth: token expired")

// Validate parses and verifies a token string and returns the userID from
// its "sub" claim.
//
// The jwt library checks the signature, the expiry, and the issuer.
// Pinning the algorithm with WithValidMethods blocks algorithm-confusion
// attacks (a token claiming alg "none" is rejected outright).
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", errors.New("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", errors.New("auth: token has no subject")
	}

	return c.Subject, nil
}
