package contract

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"

	baseabi "github.com/color-xyz/goapi/base/abi"
	bCtx "github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/nft"
	"github.com/color-xyz/goapi/service/chain"
)

type NftPortCfg struct {
	ChainId int32
	// OperatorKey signs escrow transfers. The marketplace must be
	// approved as operator by sellers for transfers to succeed.
	OperatorKey *ecdsa.PrivateKey
	Rpc         *ethclient.Client
	Chain       chain.Client
}

type nftPort struct {
	chainId     int32
	operatorKey *ecdsa.PrivateKey
	rpc         *ethclient.Client
	erc721      *Erc721
	erc1155     *Erc1155
}

// NewNftPort builds the chain backed token adapter.
func NewNftPort(cfg *NftPortCfg) nft.Port {
	return &nftPort{
		chainId:     cfg.ChainId,
		operatorKey: cfg.OperatorKey,
		rpc:         cfg.Rpc,
		erc721:      NewErc721(cfg.Chain),
		erc1155:     NewErc1155(cfg.Chain),
	}
}

func (p *nftPort) BalanceOf(c bCtx.Ctx, tokenType domain.TokenType, contract domain.Address, tokenId domain.TokenId, owner domain.Address) (*big.Int, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return nil, err
	}
	switch tokenType {
	case domain.TokenType721:
		holder, err := p.erc721.OwnerOf(c, p.chainId, string(contract), id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "tokenId": tokenId}).Error("erc721.OwnerOf failed")
			return nil, err
		}
		if domain.Address(holder).Equals(owner) {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case domain.TokenType1155:
		bal, err := p.erc1155.BalanceOf(c, p.chainId, string(contract), string(owner), id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "tokenId": tokenId}).Error("erc1155.BalanceOf failed")
			return nil, err
		}
		return bal, nil
	default:
		return nil, domain.ErrInvalidTokenType
	}
}

func (p *nftPort) IsApprovedForAll(c bCtx.Ctx, tokenType domain.TokenType, contract domain.Address, owner domain.Address, operator domain.Address) (bool, error) {
	switch tokenType {
	case domain.TokenType721:
		return p.erc721.IsApprovedForAll(c, p.chainId, string(contract), string(owner), string(operator))
	case domain.TokenType1155:
		return p.erc1155.IsApprovedForAll(c, p.chainId, string(contract), string(owner), string(operator))
	default:
		return false, domain.ErrInvalidTokenType
	}
}

func (p *nftPort) Transfer(c bCtx.Ctx, tokenType domain.TokenType, contract domain.Address, tokenId domain.TokenId, from domain.Address, to domain.Address, amount int64) error {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return err
	}
	var data []byte
	switch tokenType {
	case domain.TokenType721:
		data, err = baseabi.ERC721TokenABI.Pack("safeTransferFrom",
			common.HexToAddress(string(from)), common.HexToAddress(string(to)), id)
	case domain.TokenType1155:
		data, err = baseabi.ERC1155TokenABI.Pack("safeTransferFrom",
			common.HexToAddress(string(from)), common.HexToAddress(string(to)), id, big.NewInt(amount), []byte{})
	default:
		return domain.ErrInvalidTokenType
	}
	if err != nil {
		c.WithField("err", err).Error("abi.Pack failed")
		return err
	}

	operator := crypto.PubkeyToAddress(p.operatorKey.PublicKey)
	nonce, err := p.rpc.PendingNonceAt(c, operator)
	if err != nil {
		c.WithField("err", err).Error("rpc.PendingNonceAt failed")
		return err
	}
	gasPrice, err := p.rpc.SuggestGasPrice(c)
	if err != nil {
		c.WithField("err", err).Error("rpc.SuggestGasPrice failed")
		return err
	}
	target := common.HexToAddress(string(contract))
	gasLimit, err := p.rpc.EstimateGas(c, ethereumCallMsg(operator, target, data))
	if err != nil {
		c.WithField("err", err).Error("rpc.EstimateGas failed")
		return err
	}

	tx := types.NewTransaction(nonce, target, big.NewInt(0), gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(int64(p.chainId))), p.operatorKey)
	if err != nil {
		c.WithField("err", err).Error("types.SignTx failed")
		return err
	}
	if err := p.rpc.SendTransaction(c, signed); err != nil {
		c.WithField("err", err).Error("rpc.SendTransaction failed")
		return err
	}

	receipt, err := bind.WaitMined(c, p.rpc, signed)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "tx": signed.Hash().Hex()}).Error("bind.WaitMined failed")
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		c.WithField("tx", signed.Hash().Hex()).Error("transfer reverted")
		return xerrors.Errorf("transfer tx %s reverted", signed.Hash().Hex())
	}
	return nil
}

func ethereumCallMsg(from common.Address, to common.Address, data []byte) ethereum.CallMsg {
	return ethereum.CallMsg{
		From: from,
		To:   &to,
		Data: data,
	}
}
