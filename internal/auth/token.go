package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for every rejection reason: malformed
// encoding, wrong signing method, bad signature, or expiry in the past.
// Verification is all-or-nothing; callers get no partial trust.
var ErrInvalidToken = errors.New("invalid or expired token")

const tokenIssuer = "microblog-api"

// TokenCodec issues and verifies signed, time-limited identity tokens.
// The server holds no session state; the token itself is the credential.
type TokenCodec struct {
	secret   []byte
	validity time.Duration
	clock    Clock
}

// NewTokenCodec returns a codec signing with secret, valid for the given
// window. A nil clock defaults to RealClock.
func NewTokenCodec(secret string, validity time.Duration, clock Clock) (*TokenCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret not configured")
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &TokenCodec{
		secret:   []byte(secret),
		validity: validity,
		clock:    clock,
	}, nil
}

// Issue creates an HS256 token for the subject (username), expiring after the
// codec's validity window.
func (tc *TokenCodec) Issue(subject string) (string, error) {
	now := tc.clock.Now()
	claims := jwt.MapClaims{
		"sub": subject,                      // Subject (username)
		"iss": tokenIssuer,                  // Issuer
		"exp": now.Add(tc.validity).Unix(),  // Expiration
		"iat": now.Unix(),                   // Issued at
		"nbf": now.Unix(),                   // Not before
		"jti": tc.generateJTI(),             // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Verify parses and validates a token and returns its subject. Any failure
// maps to ErrInvalidToken.
func (tc *TokenCodec) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return tc.secret, nil
	}, jwt.WithTimeFunc(tc.clock.Now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (tc *TokenCodec) generateJTI() string {
	return fmt.Sprintf("%d-%s", tc.clock.Now().Unix(), uuid.New().String()[:8])
}
