package checkout

import (
	"context"

	"github.com/johan374/Ecommerce-production/internal/events"
	"github.com/johan374/Ecommerce-production/internal/orders"
	"github.com/johan374/Ecommerce-production/internal/payment"
)

// MockProvider implements payment.Provider for testing
type MockProvider struct {
	Intent     *payment.Intent
	IntentErr  error
	Charge     *payment.Charge
	ConfirmErr error

	CreatedAmount    int64
	CreatedCurrency  string
	CreatedReference string
	ConfirmedIntent  string
}

func (m *MockProvider) CreateIntent(_ context.Context, amount int64, currency, reference string) (*payment.Intent, error) {
	m.CreatedAmount = amount
	m.CreatedCurrency = currency
	m.CreatedReference = reference
	if m.IntentErr != nil {
		return nil, m.IntentErr
	}
	return m.Intent, nil
}

func (m *MockProvider) Confirm(_ context.Context, intentID string) (*payment.Charge, error) {
	m.ConfirmedIntent = intentID
	if m.ConfirmErr != nil {
		return nil, m.ConfirmErr
	}
	return m.Charge, nil
}

// MockOrderRepository implements orders.OrderRepository for testing
type MockOrderRepository struct {
	CreatedOrder *orders.Order // Captures the order passed to CreateOrder
	CreateErr    error
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *orders.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.CreatedOrder = order
	return nil
}

func (m *MockOrderRepository) GetOrderByNumber(context.Context, string) (*orders.Order, error) {
	return nil, orders.ErrOrderNotFound
}

func (m *MockOrderRepository) ListOrdersByUserID(context.Context, string) ([]*orders.Order, error) {
	return nil, nil
}

func (m *MockOrderRepository) Close() error {
	return nil
}

// MockPublisher implements events.Publisher for testing
type MockPublisher struct {
	Published  *events.OrderConfirmed
	PublishErr error
}

func (m *MockPublisher) PublishOrderConfirmed(_ context.Context, event *events.OrderConfirmed) error {
	m.Published = event
	return m.PublishErr
}

func (m *MockPublisher) Close() error {
	return nil
}
