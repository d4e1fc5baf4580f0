package cart

import "math"

// OrderLine is one entry of the checkout-ready order payload. Prices are
// integer minor units (cents) for exact payment arithmetic.
type OrderLine struct {
	ProductID           string `json:"product_id"`
	Name                string `json:"name"`
	Quantity            int    `json:"quantity"`
	UnitPriceMinorUnits int64  `json:"price_cents"`
}

// ItemCount sums the quantities of all line items.
func ItemCount(l Ledger) int {
	total := 0
	for _, item := range l.items {
		total += item.Quantity
	}
	return total
}

// MinorUnits converts a major-unit price to integer minor units. Rounding
// happens per unit price, before any quantity multiplication, so drift
// cannot accumulate across large quantities.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// TotalMinorUnits is the amount submitted to the payment collaborator.
func TotalMinorUnits(l Ledger) int64 {
	var total int64
	for _, item := range l.items {
		total += MinorUnits(item.UnitPrice) * int64(item.Quantity)
	}
	return total
}

// BuildOrderPayload projects the ledger into the shape handed to the
// order-creation collaborator, preserving ledger order. Zero-quantity
// lines (possible via UpdateQuantity) are filtered so a broken order is
// never submitted.
func BuildOrderPayload(l Ledger) []OrderLine {
	lines := make([]OrderLine, 0, len(l.items))
	for _, item := range l.items {
		if item.Quantity <= 0 {
			continue
		}
		lines = append(lines, OrderLine{
			ProductID:           item.ProductID,
			Name:                item.Name,
			Quantity:            item.Quantity,
			UnitPriceMinorUnits: MinorUnits(item.UnitPrice),
		})
	}
	return lines
}
