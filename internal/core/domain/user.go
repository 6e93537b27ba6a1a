package domain

import "errors"

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so the outcome does not reveal which of the two failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound means a username resolved from a valid token no longer
// exists in the credential store.
var ErrUserNotFound = errors.New("user not found")

// ErrUserDisabled means the token is valid but the account has been
// switched off.
var ErrUserDisabled = errors.New("user disabled")

// User models an authenticated actor known to the gateway.
type User struct {
	ID           string `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Disabled     bool   `json:"disabled"`
}
