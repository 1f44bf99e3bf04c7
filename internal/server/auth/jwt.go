// Package auth implements password hashing and the signed bearer tokens
// handed out at signup and login.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/eventboard/internal/common"
	"github.com/dmitrijs2005/eventboard/internal/server/models"
)

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = time.Hour

// Privileges are the authorization flags carried in every token.
type Privileges struct {
	CanPostEvents bool
	IsAdmin       bool
}

// DefaultPrivileges is granted to every user at signup and login.
// Nothing in the user record changes it.
var DefaultPrivileges = Privileges{CanPostEvents: true, IsAdmin: false}

// Claims are the identity and authorization facts embedded in a token.
// Field names on the wire match what the web client reads.
type Claims struct {
	UserID        string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	CanPostEvents bool   `json:"canPostEvents"`
	IsAdmin       bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 tokens. It keeps no state between
// calls; the secret and TTL are fixed at construction.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) { c.now = now }
}

func NewTokenCodec(secret []byte, ttl time.Duration, opts ...CodecOption) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &TokenCodec{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// NewClaims builds the claims for user: persisted identity, default
// privileges, issued now and expiring after the TTL.
func (c *TokenCodec) NewClaims(user *models.User) *Claims {
	// NumericDate has second precision on the wire
	now := c.now().Truncate(time.Second)
	return &Claims{
		UserID:        user.ID,
		Name:          user.Name,
		Email:         user.Email,
		CanPostEvents: DefaultPrivileges.CanPostEvents,
		IsAdmin:       DefaultPrivileges.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
}

// Issue signs claims. Equal claims give equal tokens.
func (c *TokenCodec) Issue(claims *Claims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks token and returns its claims.
//
// Empty or non-base64url segments are malformed. Beyond that the HMAC over
// header.payload is checked before the payload is parsed, so
// a tampered payload always yields common.ErrTokenInvalidSignature and never
// reaches the expiry check. Errors wrap one of common.ErrTokenMalformed,
// common.ErrTokenInvalidSignature or common.ErrTokenExpired.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, common.ErrTokenMalformed
	}
	for _, p := range parts {
		if p == "" {
			return nil, common.ErrTokenMalformed
		}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	// decode only, nothing is trusted before the HMAC check
	for _, p := range parts[:2] {
		if _, err := parser.DecodeSegment(p); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrTokenMalformed, err)
		}
	}
	sig, err := parser.DecodeSegment(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrTokenMalformed, err)
	}
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, c.secret); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrTokenInvalidSignature, err)
	}

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	switch {
	case err == nil && token.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %w", common.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		// signed with our key but under a header we do not accept
		return nil, fmt.Errorf("%w: %w", common.ErrTokenInvalidSignature, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", common.ErrTokenMalformed, err)
	default:
		return nil, common.ErrTokenMalformed
	}
}
