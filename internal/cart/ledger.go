package cart

import (
	"errors"
	"math"
)

var (
	ErrMissingProductID = errors.New("product id is required")
	ErrInvalidUnitPrice = errors.New("unit price must be a non-negative finite number")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// Product is the minimal shape AddItem accepts. Display attributes
// (Name, ImageURL) are carried through to the line item untouched.
type Product struct {
	ID        string
	Name      string
	ImageURL  string
	UnitPrice float64
}

type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Ledger is an ordered sequence of line items, unique by product ID.
// Every command produces a new ledger value; a snapshot handed out
// earlier never observes a later mutation.
type Ledger struct {
	items []LineItem
}

// NewLedger builds a ledger directly from line items. Intended for tests
// and rehydration; command dispatch is the normal mutation path.
func NewLedger(items ...LineItem) Ledger {
	copied := make([]LineItem, len(items))
	copy(copied, items)
	return Ledger{items: copied}
}

// Items returns a copy of the line items in insertion order.
func (l Ledger) Items() []LineItem {
	items := make([]LineItem, len(l.items))
	copy(items, l.items)
	return items
}

func (l Ledger) Len() int {
	return len(l.items)
}

// Find returns the line item for productID, if present.
func (l Ledger) Find(productID string) (LineItem, bool) {
	for _, item := range l.items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

// Command is the closed set of ledger transitions. Anything else passed
// to Apply leaves the ledger unchanged.
type Command interface {
	command()
}

type AddItem struct {
	Product Product
}

type RemoveItem struct {
	ProductID string
}

type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

type Clear struct{}

func (AddItem) command()        {}
func (RemoveItem) command()     {}
func (UpdateQuantity) command() {}
func (Clear) command()          {}

// Apply runs one command against the ledger and returns the resulting
// ledger. The input ledger is never modified. Validation failures return
// the input ledger unchanged alongside the error.
func Apply(l Ledger, cmd Command) (Ledger, error) {
	switch c := cmd.(type) {
	case AddItem:
		return l.add(c.Product)
	case RemoveItem:
		return l.remove(c.ProductID), nil
	case UpdateQuantity:
		return l.updateQuantity(c.ProductID, c.Quantity)
	case Clear:
		return Ledger{}, nil
	default:
		return l, nil
	}
}

func (l Ledger) add(p Product) (Ledger, error) {
	if p.ID == "" {
		return l, ErrMissingProductID
	}
	if p.UnitPrice < 0 || math.IsNaN(p.UnitPrice) || math.IsInf(p.UnitPrice, 0) {
		return l, ErrInvalidUnitPrice
	}

	items := make([]LineItem, len(l.items), len(l.items)+1)
	copy(items, l.items)

	for i := range items {
		if items[i].ProductID == p.ID {
			// Existing line keeps its original metadata, only the
			// quantity accumulates.
			items[i].Quantity++
			return Ledger{items: items}, nil
		}
	}

	items = append(items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		UnitPrice: p.UnitPrice,
		Quantity:  1,
	})
	return Ledger{items: items}, nil
}

func (l Ledger) remove(productID string) Ledger {
	if _, ok := l.Find(productID); !ok {
		return l
	}

	items := make([]LineItem, 0, len(l.items)-1)
	for _, item := range l.items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return Ledger{items: items}
}

func (l Ledger) updateQuantity(productID string, quantity int) (Ledger, error) {
	if quantity < 0 {
		return l, ErrNegativeQuantity
	}
	if _, ok := l.Find(productID); !ok {
		return l, nil
	}

	// Quantity 0 intentionally leaves a zero-quantity line in place.
	// Callers that mean "remove" must dispatch RemoveItem; order payload
	// building filters these lines out (see derive.go).
	items := make([]LineItem, len(l.items))
	copy(items, l.items)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	return Ledger{items: items}, nil
}
