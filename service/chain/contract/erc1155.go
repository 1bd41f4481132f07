package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/color-xyz/goapi/base/abi"
	bCtx "github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/service/chain"
)

type Erc1155 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc1155(chainService chain.Client) *Erc1155 {
	return &Erc1155{
		abi:          baseabi.ERC1155TokenABI,
		chainService: chainService,
	}
}

func (e *Erc1155) BalanceOf(ctx bCtx.Ctx, chainId int32, addr string, owner string, tokenId *big.Int) (*big.Int, error) {
	method := "balanceOf"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner), tokenId)
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc1155) IsApprovedForAll(ctx bCtx.Ctx, chainId int32, addr string, owner string, operator string) (bool, error) {
	method := "isApprovedForAll"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner), common.HexToAddress(operator))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}
