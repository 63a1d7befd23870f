package notify

import "context"

// MockNotifier is a test double with an overridable function field, mirroring
// the gateway mock. The zero value records events and succeeds.
type MockNotifier struct {
	NotifyOrderCreatedFunc func(ctx context.Context, ev OrderCreated) error

	Events []OrderCreated
}

func (m *MockNotifier) NotifyOrderCreated(ctx context.Context, ev OrderCreated) error {
	m.Events = append(m.Events, ev)
	if m.NotifyOrderCreatedFunc != nil {
		return m.NotifyOrderCreatedFunc(ctx, ev)
	}
	return nil
}
