package domain

import (
	"math/big"
	"strings"
)

var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)

	// WeiPerEther is the wei value of one unit of native currency
	WeiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// TokenType tags the token standard a listing trades in.
type TokenType int

const (
	TokenType721  TokenType = 721
	TokenType1155 TokenType = 1155
)

// IsValid reports whether t is one of the known token standards.
func (t TokenType) IsValid() bool {
	return t == TokenType721 || t == TokenType1155
}

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(string(i), 10)
	if !ok {
		return nil, ErrInvalidNumberFormat
	}
	return id, nil
}

type BlockNumber uint64

type TxHash string

// ToBigInt parses base-10 strings into big ints, all-or-nothing.
func ToBigInt(nums []string) ([]*big.Int, error) {
	var bns []*big.Int
	for _, n := range nums {
		bn, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, ErrInvalidNumberFormat
		}
		bns = append(bns, bn)
	}
	return bns, nil
}
