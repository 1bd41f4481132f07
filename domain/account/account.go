package account

import (
	"math/big"
	"time"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
)

// Account is user's account stored in database
type Account struct {
	Address   domain.Address `bson:"address"`
	Nonce     int32          `bson:"nonce"`
	CreatedAt time.Time      `bson:"createdAt,omitempty"`
	UpdatedAt time.Time      `bson:"updatedAt,omitempty"`
}

// Info is account struct returned to client, balance included
type Info struct {
	Address domain.Address `json:"address"`
	Nonce   int32          `json:"nonce"`
	// Balance is the escrowed balance in wei, base-10.
	Balance        string `json:"balance"`
	BalanceDisplay string `json:"balanceDisplay"`
}

type Updater struct {
	Nonce     int32     `json:"-" bson:"nonce"`
	UpdatedAt time.Time `json:"-" bson:"updatedAt,omitempty"`
}

type Repo interface {
	Get(c ctx.Ctx, address domain.Address) (*Account, error)
	Insert(c ctx.Ctx, account *Account) error
	Update(c ctx.Ctx, address domain.Address, updater Updater) error
}

type UseCase interface {
	// Get returns the account, creating it with a fresh nonce when the
	// address has never been seen.
	Get(c ctx.Ctx, address domain.Address) (*Account, error)
	GetInfo(c ctx.Ctx, address domain.Address) (*Info, error)
	RotateNonce(c ctx.Ctx, address domain.Address) (int32, error)
	Deposit(c ctx.Ctx, address domain.Address, amount *big.Int) error
	Withdraw(c ctx.Ctx, address domain.Address, amount *big.Int) error
}
