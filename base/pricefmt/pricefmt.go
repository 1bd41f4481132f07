// Package pricefmt converts wei amounts to display prices.
package pricefmt

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/color-xyz/goapi/domain"
)

const etherDecimals = 18

// FromWei returns the display price of a wei amount.
func FromWei(value *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(value, -etherDecimals)
}

// FromWeiString parses a base-10 wei amount and returns its display
// price. Returns domain.ErrInvalidNumberFormat for malformed input.
func FromWeiString(value string) (decimal.Decimal, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return decimal.Zero, domain.ErrInvalidNumberFormat
	}
	return FromWei(v), nil
}

// ToWei converts a display price to wei, truncating below 1 wei.
func ToWei(display decimal.Decimal) *big.Int {
	return display.Shift(etherDecimals).BigInt()
}
