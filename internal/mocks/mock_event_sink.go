package mocks

import (
	"context"
	"sync"

	"cinebook/internal/domain"
)

// MockEventSink records every event it receives, in order.
type MockEventSink struct {
	mu     sync.Mutex
	Events []domain.BookingEvent
}

func (m *MockEventSink) Notify(ctx context.Context, event domain.BookingEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Events = append(m.Events, event)
}

func (m *MockEventSink) EventTypes() []domain.BookingEventType {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]domain.BookingEventType, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}

	return types
}
