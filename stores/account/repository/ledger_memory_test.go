package repository

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/payment"
)

type memoryLedgerTestSuite struct {
	suite.Suite

	im payment.Ledger
}

func (s *memoryLedgerTestSuite) SetupTest() {
	s.im = NewMemoryLedger()
}

func TestMemoryLedger(t *testing.T) {
	suite.Run(t, new(memoryLedgerTestSuite))
}

func (s *memoryLedgerTestSuite) TestDepositAndBalance() {
	c := ctx.Background()

	b, err := s.im.Balance(c, "0xa")
	s.NoError(err)
	s.Zero(b.Sign())

	s.NoError(s.im.Deposit(c, "0xa", big.NewInt(100)))
	s.NoError(s.im.Deposit(c, "0xA", big.NewInt(50)))

	b, err = s.im.Balance(c, "0xa")
	s.NoError(err)
	s.Equal(big.NewInt(150), b)

	s.ErrorIs(s.im.Deposit(c, "0xa", big.NewInt(0)), domain.ErrBadParamInput)
}

func (s *memoryLedgerTestSuite) TestWithdraw() {
	c := ctx.Background()

	s.NoError(s.im.Deposit(c, "0xa", big.NewInt(100)))

	s.ErrorIs(s.im.Withdraw(c, "0xa", big.NewInt(101)), domain.ErrInsufficientPayment)
	s.NoError(s.im.Withdraw(c, "0xa", big.NewInt(40)))

	b, err := s.im.Balance(c, "0xa")
	s.NoError(err)
	s.Equal(big.NewInt(60), b)
}

func (s *memoryLedgerTestSuite) TestTransfer() {
	c := ctx.Background()

	s.NoError(s.im.Deposit(c, "0xa", big.NewInt(100)))

	s.ErrorIs(s.im.Transfer(c, "0xa", "0xb", big.NewInt(200)), domain.ErrInsufficientPayment)
	s.NoError(s.im.Transfer(c, "0xa", "0xb", big.NewInt(30)))

	ba, err := s.im.Balance(c, "0xa")
	s.NoError(err)
	s.Equal(big.NewInt(70), ba)
	bb, err := s.im.Balance(c, "0xb")
	s.NoError(err)
	s.Equal(big.NewInt(30), bb)
}
