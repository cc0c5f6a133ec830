package ai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// TickManager drives registered controllers one after another, in
// registration order, once per frame. Controllers are never updated in
// parallel; registration may happen from other goroutines.
type TickManager struct {
	mu          sync.Mutex
	controllers map[string]Controller
	order       []string

	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	frames   atomic.Uint64
}

// NewTickManager creates manager ticking every interval of simulated time.
func NewTickManager(interval time.Duration) *TickManager {
	return &TickManager{
		controllers: make(map[string]Controller),
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Register adds controller and initializes it.
// A duplicate ID is ignored.
func (m *TickManager) Register(c Controller) {
	id := c.ID()

	m.mu.Lock()
	if _, exists := m.controllers[id]; exists {
		m.mu.Unlock()
		slog.Warn("controller already registered", "id", id)
		return
	}
	m.controllers[id] = c
	m.order = append(m.order, id)
	m.mu.Unlock()

	c.Init()

	slog.Debug("controller registered", "id", id)
}

// Unregister removes controller and shuts it down. Unknown IDs are ignored.
func (m *TickManager) Unregister(id string) {
	m.mu.Lock()
	c, ok := m.controllers[id]
	if ok {
		delete(m.controllers, id)
		m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	c.Shutdown()

	slog.Debug("controller unregistered", "id", id)
}

// Step updates every controller once with dt.
// Controllers (un)registered during the step take effect next frame.
func (m *TickManager) Step(dt time.Duration) {
	m.mu.Lock()
	batch := make([]Controller, 0, len(m.order))
	for _, id := range m.order {
		batch = append(batch, m.controllers[id])
	}
	m.mu.Unlock()

	for _, c := range batch {
		c.Update(dt)
	}

	frame := m.frames.Add(1)
	if IsDebugEnabled() && len(batch) > 0 {
		slog.Debug("tick completed", "frame", frame, "controllers", len(batch))
	}
}

// Start ticks on the wall clock until ctx is canceled or Stop is called.
// Each frame advances controllers by the configured interval.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped")
			return nil

		case <-ticker.C:
			m.Step(m.interval)
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.controllers)
}

// Frames returns number of completed steps.
func (m *TickManager) Frames() uint64 {
	return m.frames.Load()
}

// Interval returns simulated time per frame.
func (m *TickManager) Interval() time.Duration {
	return m.interval
}

// GetController returns controller by ID.
func (m *TickManager) GetController(id string) (Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.controllers[id]
	if !ok {
		return nil, fmt.Errorf("controller not found for id %s", id)
	}
	return c, nil
}
