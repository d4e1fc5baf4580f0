package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_AddItem_NewProduct(t *testing.T) {
	ledger, err := Apply(Ledger{}, AddItem{Product: Product{ID: "1", Name: "Laptop", UnitPrice: 999.99}})
	require.NoError(t, err)

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, "Laptop", items[0].Name)
	assert.Equal(t, 999.99, items[0].UnitPrice)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestApply_AddItem_ExistingProductAccumulates(t *testing.T) {
	ledger, err := Apply(Ledger{}, AddItem{Product: Product{ID: "1", Name: "Laptop", UnitPrice: 999.99}})
	require.NoError(t, err)
	ledger, err = Apply(ledger, AddItem{Product: Product{ID: "2", Name: "Mouse", UnitPrice: 25.00}})
	require.NoError(t, err)

	// Re-adding product 1 with different metadata must bump quantity only.
	ledger, err = Apply(ledger, AddItem{Product: Product{ID: "1", Name: "Renamed", UnitPrice: 1.00}})
	require.NoError(t, err)

	items := ledger.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Laptop", items[0].Name)
	assert.Equal(t, 999.99, items[0].UnitPrice)

	// Other lines untouched.
	assert.Equal(t, "2", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestApply_AddItem_Validation(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr error
	}{
		{"missing product id", Product{UnitPrice: 10}, ErrMissingProductID},
		{"negative price", Product{ID: "1", UnitPrice: -0.01}, ErrInvalidUnitPrice},
		{"NaN price", Product{ID: "1", UnitPrice: math.NaN()}, ErrInvalidUnitPrice},
		{"infinite price", Product{ID: "1", UnitPrice: math.Inf(1)}, ErrInvalidUnitPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := NewLedger(LineItem{ProductID: "9", UnitPrice: 5, Quantity: 1})
			after, err := Apply(before, AddItem{Product: tt.product})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before.Items(), after.Items())
		})
	}
}

func TestApply_RemoveItem(t *testing.T) {
	ledger := NewLedger(
		LineItem{ProductID: "1", UnitPrice: 10, Quantity: 2},
		LineItem{ProductID: "2", UnitPrice: 5, Quantity: 1},
	)

	got, err := Apply(ledger, RemoveItem{ProductID: "1"})
	require.NoError(t, err)

	items := got.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ProductID)
}

func TestApply_RemoveItem_AbsentIsNoop(t *testing.T) {
	ledger := NewLedger(LineItem{ProductID: "1", UnitPrice: 10, Quantity: 2})

	got, err := Apply(ledger, RemoveItem{ProductID: "404"})
	require.NoError(t, err)
	assert.Equal(t, ledger.Items(), got.Items())
}

func TestApply_AddThenRemoveIsIdentity(t *testing.T) {
	ledger := NewLedger(LineItem{ProductID: "1", UnitPrice: 10, Quantity: 3})

	added, err := Apply(ledger, AddItem{Product: Product{ID: "2", UnitPrice: 5}})
	require.NoError(t, err)
	removed, err := Apply(added, RemoveItem{ProductID: "2"})
	require.NoError(t, err)

	assert.Equal(t, ledger.Items(), removed.Items())
}

func TestApply_UpdateQuantity(t *testing.T) {
	ledger := NewLedger(LineItem{ProductID: "1", UnitPrice: 10, Quantity: 1})

	got, err := Apply(ledger, UpdateQuantity{ProductID: "1", Quantity: 5})
	require.NoError(t, err)

	item, ok := got.Find("1")
	require.True(t, ok)
	assert.Equal(t, 5, item.Quantity)
}

func TestApply_UpdateQuantity_ZeroLeavesGhostLine(t *testing.T) {
	ledger := NewLedger(LineItem{ProductID: "1", UnitPrice: 10, Quantity: 2})

	got, err := Apply(ledger, UpdateQuantity{ProductID: "1", Quantity: 0})
	require.NoError(t, err)

	// The line survives with quantity 0; only the order payload filters it.
	item, ok := got.Find("1")
	require.True(t, ok)
	assert.Equal(t, 0, item.Quantity)
}

func TestApply_UpdateQuantity_NegativeRejected(t *testing.T) {
	ledger := NewLedger(LineItem{ProductID: "1", UnitPrice: 10, Quantity: 2})

	got, err := Apply(ledger, UpdateQuantity{ProductID: "1", Quantity: -1})
	assert.ErrorIs(t, err, ErrNegativeQuantity)
	assert.Equal(t, ledger.Items(), got.Items())
}

func TestApply_UpdateQuantity_AbsentIsNoop(t *testing.T) {
	ledger := NewLedger(LineItem{ProductID: "1", UnitPrice: 10, Quantity: 2})

	got, err := Apply(ledger, UpdateQuantity{ProductID: "404", Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, ledger.Items(), got.Items())
}

func TestApply_ClearIsAbsorbing(t *testing.T) {
	ledger := NewLedger(
		LineItem{ProductID: "1", UnitPrice: 10, Quantity: 2},
		LineItem{ProductID: "2", UnitPrice: 5, Quantity: 1},
	)

	cleared, err := Apply(ledger, Clear{})
	require.NoError(t, err)
	assert.Equal(t, 0, cleared.Len())

	clearedTwice, err := Apply(cleared, Clear{})
	require.NoError(t, err)
	assert.Equal(t, 0, clearedTwice.Len())
}

type bogusCommand struct{}

func (bogusCommand) command() {}

func TestApply_UnknownCommandLeavesLedgerUnchanged(t *testing.T) {
	ledger := NewLedger(LineItem{ProductID: "1", UnitPrice: 10, Quantity: 2})

	got, err := Apply(ledger, bogusCommand{})
	require.NoError(t, err)
	assert.Equal(t, ledger.Items(), got.Items())
}

func TestApply_OldSnapshotNeverMutates(t *testing.T) {
	before, err := Apply(Ledger{}, AddItem{Product: Product{ID: "1", UnitPrice: 10}})
	require.NoError(t, err)
	snapshot := before.Items()

	_, err = Apply(before, AddItem{Product: Product{ID: "1", UnitPrice: 10}})
	require.NoError(t, err)
	_, err = Apply(before, UpdateQuantity{ProductID: "1", Quantity: 9})
	require.NoError(t, err)
	_, err = Apply(before, RemoveItem{ProductID: "1"})
	require.NoError(t, err)

	assert.Equal(t, snapshot, before.Items())
	assert.Equal(t, 1, snapshot[0].Quantity)
}
