package port

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so sign-in failures do not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is a signed-in identity bound to an opaque bearer token.
type Session struct {
	Token     string
	Identity  string
	ExpiresAt time.Time
}

// IdentityEvent is published on the identity event stream whenever an
// identity signs in or out.
type IdentityEvent struct {
	Identity string
	SignedIn bool
	At       time.Time
}

// Authenticator is the authentication collaborator: current identity or
// none, sign-in/sign-out, and an event stream of identity changes.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(token string)
	// Identity resolves a token to the signed-in identity. ok is false for
	// unknown or expired tokens.
	Identity(token string) (identity string, ok bool)
	// Subscribe returns a channel of identity events and a cancel func that
	// releases the subscription. Slow subscribers may miss events.
	Subscribe() (<-chan IdentityEvent, func())
}
