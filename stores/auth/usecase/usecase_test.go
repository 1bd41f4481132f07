package usecase

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/account"
	mAccount "github.com/color-xyz/goapi/domain/account/mocks"
)

const signatureMsg = "Welcome to Color Marketplace!\n\nNonce: %s"

type authUseCaseTestSuite struct {
	suite.Suite

	account *mAccount.UseCase
	im      domain.AuthUseCase
}

func (s *authUseCaseTestSuite) SetupTest() {
	s.account = &mAccount.UseCase{}
	s.im = New(&AuthUseCaseCfg{
		JwtSecret:    "jwt-secret",
		SignatureMsg: signatureMsg,
		Account:      s.account,
	})
}

func TestAuthUseCase(t *testing.T) {
	suite.Run(t, new(authUseCaseTestSuite))
}

func (s *authUseCaseTestSuite) TestGetNonce() {
	s.account.On("RotateNonce", mock.Anything, domain.Address("0xabc")).Return(int32(12345), nil)

	nonce, err := s.im.GetNonce(ctx.Background(), "0xabc")
	s.NoError(err)
	s.Equal("12345", nonce)
}

func (s *authUseCaseTestSuite) TestSignAndParseToken() {
	c := ctx.Background()

	key, err := crypto.GenerateKey()
	s.NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()

	s.account.On("Get", mock.Anything, address).Return(&account.Account{
		Address: address,
		Nonce:   42,
	}, nil)
	s.account.On("RotateNonce", mock.Anything, address).Return(int32(43), nil)

	msg := []byte(fmt.Sprintf(signatureMsg, "42"))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	s.NoError(err)

	tkn, err := s.im.SignToken(c, address, hexutil.Encode(sig))
	s.NoError(err)
	s.NotEmpty(tkn)

	ads, err := s.im.ParseToken(c, tkn)
	s.NoError(err)
	s.Equal(address.ToLowerStr(), ads)
}

func (s *authUseCaseTestSuite) TestSignTokenRejectsWrongNonce() {
	c := ctx.Background()

	key, err := crypto.GenerateKey()
	s.NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()

	s.account.On("Get", mock.Anything, address).Return(&account.Account{
		Address: address,
		Nonce:   42,
	}, nil)

	msg := []byte(fmt.Sprintf(signatureMsg, "41"))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	s.NoError(err)

	_, err = s.im.SignToken(c, address, hexutil.Encode(sig))
	s.ErrorIs(err, domain.ErrInvalidSignature)
}

func (s *authUseCaseTestSuite) TestParseTokenRejectsGarbage() {
	_, err := s.im.ParseToken(ctx.Background(), "not-a-token")
	s.Error(err)
}
