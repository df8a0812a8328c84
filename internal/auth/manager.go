// Package auth implements the authentication collaborator: email/password
// sign-in against the user store, bearer-token sessions with expiry, and
// an event stream of identity changes.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"keyword-campaigns/internal/core/port"
)

type session struct {
	identity  string
	expiresAt time.Time
}

// Manager holds active sessions in memory. Expired sessions are rejected
// on lookup and swept periodically by a cleanup goroutine; Close stops the
// sweeper and releases all subscribers.
type Manager struct {
	users port.UserRepository
	ttl   time.Duration

	mu       sync.RWMutex
	sessions map[string]session
	subs     map[int]chan port.IdentityEvent
	nextSub  int
	closed   bool

	done chan struct{}
}

// NewManager creates a manager with the given session lifetime and starts
// the expiry sweeper.
func NewManager(users port.UserRepository, ttl time.Duration) *Manager {
	m := &Manager{
		users:    users,
		ttl:      ttl,
		sessions: make(map[string]session),
		subs:     make(map[int]chan port.IdentityEvent),
		done:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for token, s := range m.sessions {
				if now.After(s.expiresAt) {
					delete(m.sessions, token)
				}
			}
			m.mu.Unlock()
		}
	}
}

// SignIn verifies the credentials and opens a session. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (m *Manager) SignIn(ctx context.Context, email, password string) (port.Session, error) {
	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return port.Session{}, err
	}
	if user == nil {
		return port.Session{}, port.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return port.Session{}, port.ErrInvalidCredentials
	}

	s := port.Session{
		Token:     uuid.NewString(),
		Identity:  user.ID,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.Token] = session{identity: s.Identity, expiresAt: s.ExpiresAt}
	m.mu.Unlock()
	m.publish(port.IdentityEvent{Identity: s.Identity, SignedIn: true, At: time.Now()})
	return s, nil
}

// SignOut closes the session for a token. Unknown tokens are a no-op.
func (m *Manager) SignOut(token string) {
	m.mu.Lock()
	s, ok := m.sessions[token]
	if ok {
		delete(m.sessions, token)
	}
	m.mu.Unlock()
	if ok {
		m.publish(port.IdentityEvent{Identity: s.identity, SignedIn: false, At: time.Now()})
	}
}

// Identity resolves a token to its identity. Expired tokens are removed on
// lookup.
func (m *Manager) Identity(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(s.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return "", false
	}
	return s.identity, true
}

// Subscribe registers an identity-event listener. The channel is buffered;
// events are dropped rather than blocking sign-in when a subscriber lags.
func (m *Manager) Subscribe() (<-chan port.IdentityEvent, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan port.IdentityEvent, 8)
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	m.subs[id] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
}

func (m *Manager) publish(ev port.IdentityEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close stops the sweeper and closes all subscriber channels.
func (m *Manager) Close() {
	close(m.done)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}
