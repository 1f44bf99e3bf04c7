package models

import "time"

// User is a registered account. PasswordHash is a bcrypt string; the
// plaintext password is never stored.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
