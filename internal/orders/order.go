package orders

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

type OrderItem struct {
	ProductID           string `json:"product_id"`
	Name                string `json:"name"`
	Quantity            int    `json:"quantity"`
	UnitPriceMinorUnits int64  `json:"price_cents"`
}

type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	UserID          string
	TotalMinorUnits int64
	Currency        string
	Status          OrderStatus
	PaymentIntentID string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
