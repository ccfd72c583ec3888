package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gogotex/usergateway/pkg/logger"
)

// ErrUninitialized is returned by Current when Establish has not succeeded.
var ErrUninitialized = errors.New("database: connection not established")

// Manager owns the process' single store handle.
// States: uninitialized -> ready (Establish ok) or terminated (Establish failed).
type Manager struct {
	mu     sync.RWMutex
	handle *Handle
}

func NewManager() *Manager { return &Manager{} }

// Establish connects to target and keeps the resulting handle.
// Any failure is fatal: it is logged and the process exits. Calling it
// again once a handle is held is a no-op.
func (m *Manager) Establish(ctx context.Context, target, database string, timeout time.Duration) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle != nil {
		return m.handle
	}
	h, err := Connect(ctx, target, database, timeout)
	if err != nil {
		logger.Fatalf("connection failure: %v", err)
		return nil
	}
	m.handle = h
	logger.Infof("connected to MongoDB database %q", database)
	return h
}

// Current returns the established handle or ErrUninitialized.
func (m *Manager) Current() (*Handle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.handle == nil {
		return nil, ErrUninitialized
	}
	return m.handle, nil
}

// Ready reports whether a handle is held and answers ping.
func (m *Manager) Ready(ctx context.Context) error {
	h, err := m.Current()
	if err != nil {
		return err
	}
	return h.Ping(ctx)
}
