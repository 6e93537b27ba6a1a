package ports

import (
	"context"

	"github.com/orderdesk/order-gateway/internal/core/domain"
)

// UpstreamResponse is a response successfully received from the order
// service, regardless of status code.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OrderProxy forwards requests to the order service. A returned error means
// no response was received at all; HTTP-level failures come back as a
// response and are interpreted by the caller.
type OrderProxy interface {
	Forward(ctx context.Context, method, path string, body []byte) (*UpstreamResponse, error)
}

// OrderCache maps order ids to the last successfully observed OrderStatus.
// Get reports a miss with found == false; error is reserved for backend
// failures. Implementations must provide atomic per-key get/put.
type OrderCache interface {
	Get(ctx context.Context, id string) (*domain.OrderStatus, bool, error)
	Put(ctx context.Context, id string, status *domain.OrderStatus) error
}

// OrderService composes proxy and cache into the gateway's two order
// operations.
type OrderService interface {
	Create(ctx context.Context, order domain.OrderCreate) (*domain.OrderStatus, error)
	Get(ctx context.Context, id string) (*domain.OrderStatus, error)
}
