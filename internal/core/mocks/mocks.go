package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
)

// MockEmitter is a mock implementation of ports.Emitter
type MockEmitter struct {
	mock.Mock
}

func NewMockEmitter() *MockEmitter {
	return &MockEmitter{}
}

func (m *MockEmitter) Emit(ctx context.Context, msg domain.Outbound) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// Sent returns every message passed to Emit, in order.
func (m *MockEmitter) Sent() []domain.Outbound {
	var out []domain.Outbound
	for _, call := range m.Calls {
		if call.Method == "Emit" {
			out = append(out, call.Arguments.Get(1).(domain.Outbound))
		}
	}
	return out
}

// MockPresenter is a mock implementation of ports.Presenter
type MockPresenter struct {
	mock.Mock
}

func NewMockPresenter() *MockPresenter {
	return &MockPresenter{}
}

func (m *MockPresenter) Render(ctx context.Context, view session.View) {
	m.Called(ctx, view)
}

func (m *MockPresenter) Notice(ctx context.Context, notice ports.Notice) {
	m.Called(ctx, notice)
}

func (m *MockPresenter) Attention(ctx context.Context, ticketID string) {
	m.Called(ctx, ticketID)
}

// Views returns every view passed to Render, in order.
func (m *MockPresenter) Views() []session.View {
	var out []session.View
	for _, call := range m.Calls {
		if call.Method == "Render" {
			out = append(out, call.Arguments.Get(1).(session.View))
		}
	}
	return out
}

// Notices returns every notice shown, in order.
func (m *MockPresenter) Notices() []ports.Notice {
	var out []ports.Notice
	for _, call := range m.Calls {
		if call.Method == "Notice" {
			out = append(out, call.Arguments.Get(1).(ports.Notice))
		}
	}
	return out
}

// MockDispatcher is a mock implementation of ports.Dispatcher. When Service
// is set, submitted functions run against it after the expectation is
// recorded.
type MockDispatcher struct {
	mock.Mock
	Service ports.WidgetService
}

func NewMockDispatcher(svc ports.WidgetService) *MockDispatcher {
	return &MockDispatcher{Service: svc}
}

func (m *MockDispatcher) Submit(ctx context.Context, fn func(ctx context.Context, svc ports.WidgetService) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	if m.Service == nil {
		return nil
	}
	return fn(ctx, m.Service)
}

// MockHealthChecker is a mock implementation of ports.HealthChecker
type MockHealthChecker struct {
	mock.Mock
}

func NewMockHealthChecker() *MockHealthChecker {
	return &MockHealthChecker{}
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
