package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"keyword-campaigns/internal/core/domain"
	"keyword-campaigns/internal/core/port"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.byEmail[email], nil
}

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUsers{byEmail: map[string]*domain.User{
		"demo@example.com": {ID: "u1", Email: "demo@example.com", PasswordHash: string(hash)},
	}}
	m := NewManager(users, ttl)
	t.Cleanup(m.Close)
	return m
}

func TestSignInOpensSession(t *testing.T) {
	m := newTestManager(t, time.Hour)

	s, err := m.SignIn(context.Background(), "demo@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "u1", s.Identity)

	identity, ok := m.Identity(s.Token)
	require.True(t, ok)
	assert.Equal(t, "u1", identity)
}

func TestSignInFailuresAreIndistinguishable(t *testing.T) {
	m := newTestManager(t, time.Hour)
	ctx := context.Background()

	_, wrongPassword := m.SignIn(ctx, "demo@example.com", "nope")
	_, unknownEmail := m.SignIn(ctx, "nobody@example.com", "correct horse")

	assert.ErrorIs(t, wrongPassword, port.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, port.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestSignOutClosesSessionAndPublishes(t *testing.T) {
	m := newTestManager(t, time.Hour)
	events, cancel := m.Subscribe()
	defer cancel()

	s, err := m.SignIn(context.Background(), "demo@example.com", "correct horse")
	require.NoError(t, err)

	ev := <-events
	assert.True(t, ev.SignedIn)
	assert.Equal(t, "u1", ev.Identity)

	m.SignOut(s.Token)
	ev = <-events
	assert.False(t, ev.SignedIn)
	assert.Equal(t, "u1", ev.Identity)

	_, ok := m.Identity(s.Token)
	assert.False(t, ok)

	// Signing out an unknown token publishes nothing.
	m.SignOut("bogus")
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	m := newTestManager(t, -time.Minute)

	s, err := m.SignIn(context.Background(), "demo@example.com", "correct horse")
	require.NoError(t, err)

	_, ok := m.Identity(s.Token)
	assert.False(t, ok)
}

func TestEmptyTokenIsRejected(t *testing.T) {
	m := newTestManager(t, time.Hour)
	_, ok := m.Identity("")
	assert.False(t, ok)
}
