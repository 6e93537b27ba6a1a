package domain

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound means the order exists neither in the cache nor upstream.
var ErrOrderNotFound = errors.New("order not found")

// ErrUpstreamUnavailable means every connection attempt to the order service
// failed. The wrapped cause carries the last observed dial failure.
var ErrUpstreamUnavailable = errors.New("order service unavailable")

// OrderCreate is the payload forwarded to the order service verbatim.
type OrderCreate struct {
	UserID string `json:"user_id" validate:"required"`
	Item   string `json:"item" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}

// OrderStatus is the order service's view of an order. The gateway treats it
// as opaque beyond ID, which keys the response cache.
type OrderStatus struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Item      string `json:"item"`
	Amount    int    `json:"amount"`
	UserID    string `json:"user_id"`
	UpdatedAt string `json:"updated_at"`
}

// UpstreamStatusError carries a non-2xx response successfully received from
// the order service. It is passed through to the caller with its original
// status and body instead of being translated or retried.
type UpstreamStatusError struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}
