// Package payment models the escrowed native-currency ledger that
// settles purchases. Balances are wei amounts keyed by address.
package payment

import (
	"math/big"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
)

// Balance is one account's escrowed funds. Amount is base-10 wei.
type Balance struct {
	Address domain.Address `json:"address" bson:"address"`
	Amount  string         `json:"amount" bson:"amount"`
}

func (b *Balance) AmountBigInt() (*big.Int, error) {
	a, ok := new(big.Int).SetString(b.Amount, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return a, nil
}

// Ledger holds escrowed funds. All amounts are non-negative; Transfer
// and Withdraw fail with domain.ErrInsufficientPayment when the source
// balance cannot cover the amount.
type Ledger interface {
	Balance(c ctx.Ctx, address domain.Address) (*big.Int, error)
	Deposit(c ctx.Ctx, address domain.Address, amount *big.Int) error
	Withdraw(c ctx.Ctx, address domain.Address, amount *big.Int) error
	Transfer(c ctx.Ctx, from domain.Address, to domain.Address, amount *big.Int) error
}
