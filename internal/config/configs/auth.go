package configs

import "time"

// Auth defines configuration for session handling.
type Auth struct {
	// SessionTTL is how long a session token stays valid after sign-in.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}
