package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/account"
	mAccount "github.com/color-xyz/goapi/domain/account/mocks"
	"github.com/color-xyz/goapi/stores/account/repository"
)

type accountUseCaseTestSuite struct {
	suite.Suite

	repo *mAccount.Repo
	im   account.UseCase
}

func (s *accountUseCaseTestSuite) SetupTest() {
	s.repo = &mAccount.Repo{}
	s.im = New(&AccountUseCaseCfg{
		Repo:   s.repo,
		Ledger: repository.NewMemoryLedger(),
	})
}

func TestAccountUseCase(t *testing.T) {
	suite.Run(t, new(accountUseCaseTestSuite))
}

func (s *accountUseCaseTestSuite) TestGetCreatesUnknownAddress() {
	c := ctx.Background()

	s.repo.On("Get", mock.Anything, domain.Address("0xabc")).Return(nil, domain.ErrNotFound)
	s.repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	a, err := s.im.Get(c, "0xabc")
	s.NoError(err)
	s.Equal(domain.Address("0xabc"), a.Address)
	s.GreaterOrEqual(a.Nonce, int32(0))
	s.repo.AssertCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *accountUseCaseTestSuite) TestGetInfo() {
	c := ctx.Background()

	s.repo.On("Get", mock.Anything, domain.Address("0xabc")).Return(&account.Account{
		Address: "0xabc",
		Nonce:   42,
	}, nil)

	s.NoError(s.im.Deposit(c, "0xabc", domain.WeiPerEther))

	info, err := s.im.GetInfo(c, "0xabc")
	s.NoError(err)
	s.Equal(domain.WeiPerEther.String(), info.Balance)
	s.Equal("1", info.BalanceDisplay)
	s.EqualValues(42, info.Nonce)
}

func (s *accountUseCaseTestSuite) TestRotateNonce() {
	c := ctx.Background()

	s.repo.On("Get", mock.Anything, domain.Address("0xabc")).Return(&account.Account{Address: "0xabc"}, nil)
	s.repo.On("Update", mock.Anything, domain.Address("0xabc"), mock.Anything).Return(nil)

	nonce, err := s.im.RotateNonce(c, "0xabc")
	s.NoError(err)
	s.GreaterOrEqual(nonce, int32(0))
	s.repo.AssertCalled(s.T(), "Update", mock.Anything, domain.Address("0xabc"), mock.Anything)
}

func (s *accountUseCaseTestSuite) TestWithdrawInsufficient() {
	c := ctx.Background()

	s.repo.On("Get", mock.Anything, domain.Address("0xabc")).Return(&account.Account{Address: "0xabc"}, nil)

	s.ErrorIs(s.im.Withdraw(c, "0xabc", big.NewInt(1)), domain.ErrInsufficientPayment)
}
