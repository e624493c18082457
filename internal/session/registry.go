// Package session holds authenticated sessions in memory.
//
// Sessions live only for the process lifetime. That is acceptable here:
// losing them on restart just means users log in again. The registry is
// safe for concurrent use from multiple request goroutines.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/bookstore/backend/internal/models"
)

// tokenBytes is the entropy of a session token before encoding
const tokenBytes = 32

// Registry is a mutex-guarded in-memory session store keyed by opaque token
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	ttl      time.Duration
}

// NewRegistry creates a session registry with the given absolute session lifetime
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Registry{
		sessions: map[string]*models.Session{},
		ttl:      ttl,
	}
}

// newToken returns an opaque URL-safe token from crypto/rand
func newToken() string {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("can't get random bytes: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Create mints a session carrying a snapshot of the user's identity and role
func (r *Registry) Create(user *models.User) *models.Session {
	s := &models.Session{
		Token:     newToken(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(r.ttl),
	}

	r.mu.Lock()
	r.sessions[s.Token] = s
	r.mu.Unlock()

	return s
}

// Get returns the session for a token. Unknown and expired tokens both
// yield ErrNoSession; expired sessions are dropped on the way out.
func (r *Registry) Get(token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, models.ErrNoSession
	}
	if s.Expired() {
		delete(r.sessions, token)
		return nil, models.ErrNoSession
	}
	return s, nil
}

// Delete ends a session. Deleting an unknown token is not an error.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

// Len returns the number of live entries, counting not-yet-purged expired ones
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
