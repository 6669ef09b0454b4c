package service

import (
	"github.com/shopspring/decimal"
)

// taxRate is charged on the pre-discount subtotal. Discount does not reduce
// the taxable base.
var taxRate = decimal.NewFromFloat(0.10)

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Change   decimal.Decimal
}

// CalculateTotals folds line totals into the order's money summary. Pure:
// no I/O, exact decimal arithmetic, no rounding until presentation.
func CalculateTotals(lineTotals []decimal.Decimal, discountPercent, paidAmount decimal.Decimal) (Totals, error) {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}

	discount := subtotal.Mul(discountPercent).Div(hundred)
	tax := subtotal.Mul(taxRate)
	total := subtotal.Sub(discount).Add(tax)

	if paidAmount.LessThan(total) {
		return Totals{}, ErrInsufficientPayment
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    total,
		Change:   paidAmount.Sub(total),
	}, nil
}
