package repository

import (
	"math/big"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/payment"
	"github.com/color-xyz/goapi/service/query"
)

type ledgerImpl struct {
	query query.Mongo
}

// NewLedger creates the mongo backed escrow ledger. Balance moves run
// inside a mongo transaction so a crash between debit and credit can
// not lose funds.
func NewLedger(q query.Mongo) payment.Ledger {
	return &ledgerImpl{query: q}
}

func (im *ledgerImpl) Balance(c ctx.Ctx, address domain.Address) (*big.Int, error) {
	return im.balance(c, address)
}

func (im *ledgerImpl) Deposit(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	return im.query.RunWithTransaction(c, func(sc ctx.Ctx) error {
		return im.credit(sc, address, amount)
	})
}

func (im *ledgerImpl) Withdraw(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	return im.query.RunWithTransaction(c, func(sc ctx.Ctx) error {
		return im.debit(sc, address, amount)
	})
}

func (im *ledgerImpl) Transfer(c ctx.Ctx, from domain.Address, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	return im.query.RunWithTransaction(c, func(sc ctx.Ctx) error {
		if err := im.debit(sc, from, amount); err != nil {
			return err
		}
		return im.credit(sc, to, amount)
	})
}

func (im *ledgerImpl) balance(c ctx.Ctx, address domain.Address) (*big.Int, error) {
	b := &payment.Balance{}
	err := im.query.FindOne(c, domain.TableBalances, bson.M{"address": address.ToLower()}, b)
	if err == query.ErrNotFound {
		return big.NewInt(0), nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("find balance failed")
		return nil, err
	}
	return b.AmountBigInt()
}

func (im *ledgerImpl) credit(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	cur, err := im.balance(c, address)
	if err != nil {
		return err
	}
	return im.store(c, address, new(big.Int).Add(cur, amount))
}

func (im *ledgerImpl) debit(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	cur, err := im.balance(c, address)
	if err != nil {
		return err
	}
	if cur.Cmp(amount) < 0 {
		return domain.ErrInsufficientPayment
	}
	return im.store(c, address, new(big.Int).Sub(cur, amount))
}

func (im *ledgerImpl) store(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	selector := bson.M{"address": address.ToLower()}
	update := &payment.Balance{
		Address: address.ToLower(),
		Amount:  amount.String(),
	}
	if err := im.query.Upsert(c, domain.TableBalances, selector, update); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("query.Upsert failed")
		return err
	}
	return nil
}
