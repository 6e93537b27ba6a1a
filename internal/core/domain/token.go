package domain

import "errors"

// Token verification failures. A token has exactly one failure mode: it
// either cannot be parsed, carries a signature that does not match the
// signing secret, or has outlived its expiry.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)
