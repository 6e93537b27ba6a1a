// Package cache provides the order status cache backends. Entries are keyed
// by order id; the last successful write wins. Neither backend expires or
// evicts entries — a known limitation kept on purpose.
package cache

import (
	"context"
	"sync"

	"github.com/orderdesk/order-gateway/internal/core/domain"
)

// Memory is the default in-process cache backend. Entries live for the
// process lifetime.
type Memory struct {
	mu     sync.RWMutex
	orders map[string]domain.OrderStatus
}

func NewMemory() *Memory {
	return &Memory{orders: make(map[string]domain.OrderStatus)}
}

func (m *Memory) Get(_ context.Context, id string) (*domain.OrderStatus, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, ok := m.orders[id]
	if !ok {
		return nil, false, nil
	}
	return &status, true, nil
}

func (m *Memory) Put(_ context.Context, id string, status *domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders[id] = *status
	return nil
}
