package session

import (
	"context"
	"sync"
	"time"

	"github.com/johan374/Ecommerce-production/internal/cart"
	"github.com/johan374/Ecommerce-production/internal/checkout"
)

// CheckoutService is the external collaborator that turns a cart payload
// into a priced, paid order.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID string, lines []cart.OrderLine, totalMinorUnits int64) (*checkout.Confirmation, error)
}

// Session owns one shopper's ledger for the lifetime of their visit.
// Command dispatch is serialized: each command observes the ledger
// exactly as the previous one left it.
type Session struct {
	ID string

	mu       sync.Mutex
	ledger   cart.Ledger
	lastSeen time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:       id,
		lastSeen: time.Now(),
	}
}

func (s *Session) AddItem(p cart.Product) error {
	return s.dispatch(cart.AddItem{Product: p})
}

func (s *Session) RemoveItem(productID string) error {
	return s.dispatch(cart.RemoveItem{ProductID: productID})
}

func (s *Session) UpdateQuantity(productID string, quantity int) error {
	return s.dispatch(cart.UpdateQuantity{ProductID: productID, Quantity: quantity})
}

func (s *Session) Clear() {
	_ = s.dispatch(cart.Clear{})
}

func (s *Session) dispatch(cmd cart.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := cart.Apply(s.ledger, cmd)
	if err != nil {
		return err
	}
	s.ledger = next
	return nil
}

// Snapshot returns the current immutable ledger value.
func (s *Session) Snapshot() cart.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger
}

func (s *Session) Items() []cart.LineItem {
	return s.Snapshot().Items()
}

func (s *Session) ItemCount() int {
	return cart.ItemCount(s.Snapshot())
}

func (s *Session) TotalMinorUnits() int64 {
	return cart.TotalMinorUnits(s.Snapshot())
}

// Checkout hands a payload snapshot to the collaborator. The ledger is
// not held locked across the call; on success it is cleared, on failure
// it is left intact so the shopper can retry without re-adding items.
func (s *Session) Checkout(ctx context.Context, svc CheckoutService) (*checkout.Confirmation, error) {
	snapshot := s.Snapshot()
	lines := cart.BuildOrderPayload(snapshot)
	total := cart.TotalMinorUnits(snapshot)

	confirmation, err := svc.PlaceOrder(ctx, s.ID, lines, total)
	if err != nil {
		return nil, err
	}

	s.Clear()
	return confirmation, nil
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) seenBefore(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}
