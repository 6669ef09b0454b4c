package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation") // 400

	// Precondition failures a cashier can correct; these never indicate a
	// server fault and must stay distinguishable from persistence errors.
	ErrNoOpenShift         = errors.New("no open shift")
	ErrInsufficientPayment = errors.New("insufficient payment")
)

// OutOfStockError identifies the line that could not be filled.
type OutOfStockError struct {
	ProductID uint
	Name      string
}

func (e *OutOfStockError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("insufficient stock for %s", e.Name)
	}
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}
