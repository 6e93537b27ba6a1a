package ports

import (
	"time"

	"github.com/orderdesk/order-gateway/internal/core/domain"
)

// UserRepository defines the credential store the gateway authenticates
// against. Implementations must be safe for concurrent use.
type UserRepository interface {
	FindByUsername(username string) (*domain.User, error)
	SetDisabled(username string, disabled bool) error
}

// TokenService issues and verifies the signed bearer tokens that gate every
// protected operation.
type TokenService interface {
	Issue(username string, ttl time.Duration) (string, error)
	Verify(token string) (string, error)
}

// AuthService authenticates credentials and hands out tokens.
type AuthService interface {
	Authenticate(username, password string) (*domain.User, error)
	Login(username, password string) (string, error)
}
