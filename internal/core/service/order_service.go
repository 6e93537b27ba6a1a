package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/orderdesk/order-gateway/internal/api/metrics"
	"github.com/orderdesk/order-gateway/internal/core/domain"
	"github.com/orderdesk/order-gateway/internal/core/ports"
)

// OrderService front-ends the order service with a write-through (create)
// and read-through (get) cache. Concurrent cache misses for the same id are
// coalesced into a single upstream fetch.
type OrderService struct {
	proxy  ports.OrderProxy
	cache  ports.OrderCache
	group  singleflight.Group
	logger zerolog.Logger
}

func NewOrderService(proxy ports.OrderProxy, cache ports.OrderCache, logger zerolog.Logger) *OrderService {
	return &OrderService{proxy: proxy, cache: cache, logger: logger}
}

// Create forwards the order to the upstream service and, on success, writes
// the created OrderStatus through to the cache. A non-2xx upstream response
// comes back as *domain.UpstreamStatusError, untouched.
func (s *OrderService) Create(ctx context.Context, order domain.OrderCreate) (*domain.OrderStatus, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	resp, err := s.proxy.Forward(ctx, http.MethodPost, "/orders", body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamStatusError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.ContentType,
			Body:        resp.Body,
		}
	}

	var status domain.OrderStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return nil, fmt.Errorf("decode order status: %w", err)
	}

	if err := s.cache.Put(ctx, status.ID, &status); err != nil {
		// The create already succeeded upstream; a cache write failure only
		// costs a future re-fetch.
		s.logger.Warn().Err(err).Str("order_id", status.ID).Msg("write-through cache update failed")
	}
	metrics.OrdersCreatedTotal.Inc()

	s.logger.Info().Str("order_id", status.ID).Str("user_id", status.UserID).Msg("order created")
	return &status, nil
}

// Get returns the cached OrderStatus when present and otherwise fetches it
// from the order service, caching successful results. An upstream 404 maps
// to ErrOrderNotFound and is never cached as a negative entry.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.OrderStatus, error) {
	if status, found, err := s.cache.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	} else if found {
		metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		return status, nil
	}
	metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()

	v, err, _ := s.group.Do(id, func() (any, error) {
		return s.fetch(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.OrderStatus), nil
}

func (s *OrderService) fetch(ctx context.Context, id string) (*domain.OrderStatus, error) {
	resp, err := s.proxy.Forward(ctx, http.MethodGet, "/orders/"+id, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrOrderNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamStatusError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.ContentType,
			Body:        resp.Body,
		}
	}

	var status domain.OrderStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return nil, fmt.Errorf("decode order status: %w", err)
	}

	if err := s.cache.Put(ctx, id, &status); err != nil {
		s.logger.Warn().Err(err).Str("order_id", id).Msg("read-through cache update failed")
	}
	return &status, nil
}
