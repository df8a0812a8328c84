package domain

import "time"

// User is an account that owns campaigns. PasswordHash is a bcrypt hash;
// the plain password never leaves the sign-in handler.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
