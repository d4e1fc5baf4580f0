package payment

import (
	"context"
	"errors"
)

var ErrPaymentDeclined = errors.New("payment declined")

type Intent struct {
	ID               string `json:"id"`
	ClientSecret     string `json:"client_secret"`
	AmountMinorUnits int64  `json:"amount"`
	Currency         string `json:"currency"`
}

type Charge struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// Provider is the payment collaborator contract. CreateIntent registers
// the amount with the processor, Confirm settles the charge.
type Provider interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency, reference string) (*Intent, error)
	Confirm(ctx context.Context, intentID string) (*Charge, error)
}
