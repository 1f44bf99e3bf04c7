package client

import (
	"context"
	"time"
)

// Profile is the identity the server resolved from an access token.
type Profile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CanPostEvents bool      `json:"canPostEvents"`
	IsAdmin       bool      `json:"isAdmin"`
	IssuedAt      time.Time `json:"-"`
	ExpiresAt     time.Time `json:"-"`
}

type Client interface {
	Signup(ctx context.Context, name, email string, password []byte) (string, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	Me(ctx context.Context, token string) (*Profile, error)
	Ping(ctx context.Context) error
}
