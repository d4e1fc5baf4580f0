package orders

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("order with this order number already exists")
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListOrdersByUserID(ctx context.Context, userID string) ([]*Order, error)
	Close() error
}
