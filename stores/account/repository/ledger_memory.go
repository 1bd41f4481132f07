package repository

import (
	"math/big"
	"sync"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/payment"
)

type memoryLedger struct {
	mu       sync.Mutex
	balances map[domain.Address]*big.Int
}

// NewMemoryLedger creates an in-process escrow ledger, used by tests
// and single-node deployments without mongo.
func NewMemoryLedger() payment.Ledger {
	return &memoryLedger{balances: map[domain.Address]*big.Int{}}
}

func (im *memoryLedger) Balance(c ctx.Ctx, address domain.Address) (*big.Int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return new(big.Int).Set(im.get(address)), nil
}

func (im *memoryLedger) Deposit(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	im.set(address, new(big.Int).Add(im.get(address), amount))
	return nil
}

func (im *memoryLedger) Withdraw(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	cur := im.get(address)
	if cur.Cmp(amount) < 0 {
		return domain.ErrInsufficientPayment
	}
	im.set(address, new(big.Int).Sub(cur, amount))
	return nil
}

func (im *memoryLedger) Transfer(c ctx.Ctx, from domain.Address, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	cur := im.get(from)
	if cur.Cmp(amount) < 0 {
		return domain.ErrInsufficientPayment
	}
	im.set(from, new(big.Int).Sub(cur, amount))
	im.set(to, new(big.Int).Add(im.get(to), amount))
	return nil
}

func (im *memoryLedger) get(address domain.Address) *big.Int {
	if b, ok := im.balances[address.ToLower()]; ok {
		return b
	}
	return big.NewInt(0)
}

func (im *memoryLedger) set(address domain.Address, amount *big.Int) {
	im.balances[address.ToLower()] = amount
}
