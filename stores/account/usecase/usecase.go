package usecase

import (
	"math/big"
	"math/rand"
	"time"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/base/pricefmt"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/account"
	"github.com/color-xyz/goapi/domain/payment"
)

const (
	nonceRange = int32(9999999)
)

type AccountUseCaseCfg struct {
	Repo   account.Repo
	Ledger payment.Ledger
}

type impl struct {
	repo   account.Repo
	ledger payment.Ledger
}

// New creates account usecase
func New(cfg *AccountUseCaseCfg) account.UseCase {
	return &impl{
		repo:   cfg.Repo,
		ledger: cfg.Ledger,
	}
}

func (im *impl) Get(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	return im.getOrCreate(c, address)
}

func (im *impl) GetInfo(c ctx.Ctx, address domain.Address) (*account.Info, error) {
	a, err := im.getOrCreate(c, address)
	if err != nil {
		return nil, err
	}

	balance, err := im.ledger.Balance(c, address)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to ledger.Balance")
		return nil, err
	}

	return &account.Info{
		Address:        a.Address,
		Nonce:          a.Nonce,
		Balance:        balance.String(),
		BalanceDisplay: pricefmt.FromWei(balance).String(),
	}, nil
}

func (im *impl) RotateNonce(c ctx.Ctx, address domain.Address) (int32, error) {
	if _, err := im.getOrCreate(c, address); err != nil {
		return 0, err
	}

	nonce := im.genNonce()
	if err := im.repo.Update(c, address, account.Updater{Nonce: nonce}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to repo.Update")
		return 0, err
	}

	return nonce, nil
}

func (im *impl) Deposit(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	if _, err := im.getOrCreate(c, address); err != nil {
		return err
	}

	if err := im.ledger.Deposit(c, address, amount); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to ledger.Deposit")
		return err
	}

	return nil
}

func (im *impl) Withdraw(c ctx.Ctx, address domain.Address, amount *big.Int) error {
	if _, err := im.getOrCreate(c, address); err != nil {
		return err
	}

	if err := im.ledger.Withdraw(c, address, amount); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to ledger.Withdraw")
		return err
	}

	return nil
}

func (im *impl) getOrCreate(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	a, err := im.repo.Get(c, address)
	if err == nil {
		return a, nil
	}
	if err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to repo.Get")
		return nil, err
	}

	now := time.Now()
	a = &account.Account{
		Address:   address.ToLower(),
		Nonce:     im.genNonce(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := im.repo.Insert(c, a); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to repo.Insert")
		return nil, err
	}
	return a, nil
}

func (im *impl) genNonce() int32 {
	return rand.Int31n(nonceRange)
}
