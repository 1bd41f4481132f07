// Package nft abstracts the token contract calls the marketplace needs:
// ownership checks, operator approval and transfers. Implementations sit
// in front of real chain contracts or test fakes.
package nft

import (
	"math/big"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
)

type Port interface {
	// BalanceOf returns how many units of the token the owner holds.
	// For ERC-721 the result is 0 or 1.
	BalanceOf(c ctx.Ctx, tokenType domain.TokenType, contract domain.Address, tokenId domain.TokenId, owner domain.Address) (*big.Int, error)
	// IsApprovedForAll reports whether operator may transfer owner's
	// tokens on the given contract.
	IsApprovedForAll(c ctx.Ctx, tokenType domain.TokenType, contract domain.Address, owner domain.Address, operator domain.Address) (bool, error)
	// Transfer moves amount units of the token from seller to buyer.
	Transfer(c ctx.Ctx, tokenType domain.TokenType, contract domain.Address, tokenId domain.TokenId, from domain.Address, to domain.Address, amount int64) error
}
