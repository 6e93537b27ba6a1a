// Package memstore holds the gateway's in-process credential store. The
// gateway persists nothing; user records live for the process lifetime and
// only the disabled flag is mutable after creation.
package memstore

import (
	"fmt"
	"sync"

	"github.com/orderdesk/order-gateway/internal/core/domain"
	"github.com/orderdesk/order-gateway/internal/pkg/password"
)

// SeedUser is a plaintext seed record. Passwords are hashed lazily on the
// first lookup so process start does not pay the argon2 cost up front.
type SeedUser struct {
	ID       string
	Username string
	Password string
	Disabled bool
}

// DefaultSeed mirrors the accounts provisioned for the development
// environment.
func DefaultSeed() []SeedUser {
	return []SeedUser{
		{ID: "u1", Username: "testuser", Password: "secret"},
		{ID: "u2", Username: "admin", Password: "admin123"},
	}
}

// UserRepository is a concurrency-safe, seed-initialized credential store.
type UserRepository struct {
	seed []SeedUser

	initOnce sync.Once
	initErr  error

	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository(seed []SeedUser) *UserRepository {
	return &UserRepository{seed: seed}
}

// init hashes the seed passwords and builds the user map. Runs at most once,
// triggered by the first lookup.
func (r *UserRepository) init() error {
	r.initOnce.Do(func() {
		users := make(map[string]*domain.User, len(r.seed))
		for _, s := range r.seed {
			if _, exists := users[s.Username]; exists {
				r.initErr = fmt.Errorf("memstore: duplicate seed username %q", s.Username)
				return
			}
			hash, err := password.Hash(s.Password)
			if err != nil {
				r.initErr = fmt.Errorf("memstore: hash seed password for %q: %w", s.Username, err)
				return
			}
			users[s.Username] = &domain.User{
				ID:           s.ID,
				Username:     s.Username,
				PasswordHash: hash,
				Disabled:     s.Disabled,
			}
		}
		r.mu.Lock()
		r.users = users
		r.mu.Unlock()
	})
	return r.initErr
}

// FindByUsername returns a copy of the stored user, or ErrUserNotFound.
func (r *UserRepository) FindByUsername(username string) (*domain.User, error) {
	if err := r.init(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// SetDisabled flips the only mutable field on a user record.
func (r *UserRepository) SetDisabled(username string, disabled bool) error {
	if err := r.init(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Disabled = disabled
	return nil
}
