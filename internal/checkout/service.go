package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/johan374/Ecommerce-production/internal/cart"
	"github.com/johan374/Ecommerce-production/internal/events"
	"github.com/johan374/Ecommerce-production/internal/orders"
	"github.com/johan374/Ecommerce-production/internal/payment"
)

type Confirmation struct {
	OrderNumber      string `json:"order_number"`
	PaymentID        string `json:"payment_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
}

type Service struct {
	provider  payment.Provider
	repo      orders.OrderRepository
	publisher events.Publisher
	currency  string
}

func NewService(provider payment.Provider, repo orders.OrderRepository, publisher events.Publisher) *Service {
	return &Service{
		provider:  provider,
		repo:      repo,
		publisher: publisher,
		currency:  "usd",
	}
}

// PlaceOrder prices the payload against the payment provider and, on a
// successful charge, persists the order and publishes an order-confirmed
// event. Any failure before the charge settles leaves nothing behind, so
// the caller's cart can be retried as-is.
func (s *Service) PlaceOrder(ctx context.Context, userID string, lines []cart.OrderLine, totalMinorUnits int64) (*Confirmation, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var sum int64
	for _, line := range lines {
		sum += line.UnitPriceMinorUnits * int64(line.Quantity)
	}
	if sum != totalMinorUnits {
		return nil, fmt.Errorf("%w: lines sum to %d, got %d", ErrTotalMismatch, sum, totalMinorUnits)
	}

	orderNumber := newOrderNumber()
	status := StatusInitiated

	if !CanTransitionTo(status, StatusPaymentPending) {
		return nil, ErrIllegalTransition
	}
	status = StatusPaymentPending

	intent, err := s.provider.CreateIntent(ctx, totalMinorUnits, s.currency, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	charge, err := s.provider.Confirm(ctx, intent.ID)
	if err != nil {
		return nil, err // declined or transport failure, nothing persisted
	}

	if !CanTransitionTo(status, StatusPaymentCompleted) {
		return nil, ErrIllegalTransition
	}
	status = StatusPaymentCompleted

	order := &orders.Order{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		UserID:          userID,
		TotalMinorUnits: totalMinorUnits,
		Currency:        s.currency,
		Status:          orders.OrderStatusConfirmed,
		PaymentIntentID: intent.ID,
		Items:           mapLines(lines),
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		// The charge went through but the order row did not. Surface the
		// error so the payment reference is not lost silently.
		return nil, fmt.Errorf("payment %s succeeded but order persist failed: %w", charge.PaymentID, err)
	}

	if !CanTransitionTo(status, StatusCompleted) {
		return nil, ErrIllegalTransition
	}

	event := &events.OrderConfirmed{
		OrderNumber:     orderNumber,
		UserID:          userID,
		Items:           order.Items,
		TotalMinorUnits: totalMinorUnits,
		Currency:        s.currency,
		ConfirmedAt:     time.Now(),
	}
	if err := s.publisher.PublishOrderConfirmed(ctx, event); err != nil {
		log.Printf("failed to publish order confirmed event for %s: %v", orderNumber, err)
	}

	return &Confirmation{
		OrderNumber:      orderNumber,
		PaymentID:        charge.PaymentID,
		AmountMinorUnits: totalMinorUnits,
		Currency:         s.currency,
	}, nil
}

func mapLines(lines []cart.OrderLine) []orders.OrderItem {
	items := make([]orders.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = orders.OrderItem{
			ProductID:           line.ProductID,
			Name:                line.Name,
			Quantity:            line.Quantity,
			UnitPriceMinorUnits: line.UnitPriceMinorUnits,
		}
	}
	return items
}

func newOrderNumber() string {
	id := uuid.New()
	return fmt.Sprintf("ORD-%X", id[:4])
}
