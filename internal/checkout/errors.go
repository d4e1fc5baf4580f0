package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrTotalMismatch     = errors.New("submitted total does not match order lines")
	ErrIllegalTransition = errors.New("illegal transition of checkout status")
)
