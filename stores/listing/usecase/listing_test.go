package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
	mActivity "github.com/color-xyz/goapi/domain/activity/mocks"
	"github.com/color-xyz/goapi/domain/listing"
	mListing "github.com/color-xyz/goapi/domain/listing/mocks"
	mNft "github.com/color-xyz/goapi/domain/nft/mocks"
	mPayment "github.com/color-xyz/goapi/domain/payment/mocks"
	mStatistic "github.com/color-xyz/goapi/domain/statistic/mocks"
	"github.com/color-xyz/goapi/stores/listing/repository"
)

const (
	seller   = domain.Address("0x1111111111111111111111111111111111111111")
	buyer    = domain.Address("0x2222222222222222222222222222222222222222")
	operator = domain.Address("0x3333333333333333333333333333333333333333")
	contract = domain.Address("0x4444444444444444444444444444444444444444")
)

type listingUseCaseTestSuite struct {
	suite.Suite

	repo        listing.Repo
	nft         *mNft.Port
	ledger      *mPayment.Ledger
	activityUC  *mActivity.UseCase
	statisticUC *mStatistic.UseCase
	emitter     *mListing.EventEmitter
	im          listing.UseCase
}

func (s *listingUseCaseTestSuite) SetupTest() {
	s.repo = repository.NewMemoryListingRepo()
	s.nft = &mNft.Port{}
	s.ledger = &mPayment.Ledger{}
	s.activityUC = &mActivity.UseCase{}
	s.statisticUC = &mStatistic.UseCase{}
	s.emitter = &mListing.EventEmitter{}

	s.activityUC.On("Record", mock.Anything, mock.Anything).Return(nil)
	s.statisticUC.On("AddBigInt", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.emitter.On("Emit", mock.Anything, mock.Anything)

	s.im = New(&ListingUseCaseCfg{
		Repo:      s.repo,
		Nft:       s.nft,
		Ledger:    s.ledger,
		Activity:  s.activityUC,
		Statistic: s.statisticUC,
		Emitter:   s.emitter,
		Operator:  operator,
	})
}

func TestListingUseCase(t *testing.T) {
	suite.Run(t, new(listingUseCaseTestSuite))
}

func (s *listingUseCaseTestSuite) mockHoldings(tokenType domain.TokenType, tokenId domain.TokenId, balance int64, approved bool) {
	s.nft.On("BalanceOf", mock.Anything, tokenType, contract, tokenId, seller).Return(big.NewInt(balance), nil)
	s.nft.On("IsApprovedForAll", mock.Anything, tokenType, contract, seller, operator).Return(approved, nil)
}

func (s *listingUseCaseTestSuite) createErc721(tokenId domain.TokenId, price string) listing.Id {
	s.mockHoldings(domain.TokenType721, tokenId, 1, true)
	id, err := s.im.CreateListing(ctx.Background(), seller, listing.CreateListingParams{
		TokenType:       domain.TokenType721,
		ContractAddress: contract,
		TokenId:         tokenId,
		Price:           price,
		Amount:          1,
	})
	s.NoError(err)
	return id
}

func (s *listingUseCaseTestSuite) createErc1155(tokenId domain.TokenId, price string, amount int64) listing.Id {
	s.mockHoldings(domain.TokenType1155, tokenId, amount, true)
	id, err := s.im.CreateListing(ctx.Background(), seller, listing.CreateListingParams{
		TokenType:       domain.TokenType1155,
		ContractAddress: contract,
		TokenId:         tokenId,
		Price:           price,
		Amount:          amount,
	})
	s.NoError(err)
	return id
}

func (s *listingUseCaseTestSuite) TestCreateListing() {
	c := ctx.Background()

	id := s.createErc721("1", "1000000000000000000")
	s.EqualValues(0, id)

	exists, err := s.im.ListingExistsById(c, id)
	s.NoError(err)
	s.True(exists)

	l, err := s.im.GetListingDetailsById(c, id)
	s.NoError(err)
	s.Equal(seller, l.Seller)
	s.EqualValues(1, l.AvailableAmount)
	s.EqualValues(1, l.TotalAmount)

	// the event identifies the asset, not just the listing
	s.emitter.AssertCalled(s.T(), "Emit", mock.Anything, mock.MatchedBy(func(ev listing.Event) bool {
		return ev.Type == listing.EventListingCreated &&
			ev.ListingId == id &&
			ev.TokenType == domain.TokenType721 &&
			ev.ContractAddress == contract &&
			ev.TokenId == domain.TokenId("1")
	}))
}

func (s *listingUseCaseTestSuite) TestCreateListingValidation() {
	c := ctx.Background()

	cases := []struct {
		name   string
		params listing.CreateListingParams
		err    error
	}{
		{
			"unknown token type",
			listing.CreateListingParams{TokenType: 20, ContractAddress: contract, TokenId: "1", Price: "100", Amount: 1},
			domain.ErrInvalidTokenType,
		},
		{
			"zero price",
			listing.CreateListingParams{TokenType: domain.TokenType721, ContractAddress: contract, TokenId: "1", Price: "0", Amount: 1},
			domain.ErrPriceMustBeGreaterThanZero,
		},
		{
			"malformed price",
			listing.CreateListingParams{TokenType: domain.TokenType721, ContractAddress: contract, TokenId: "1", Price: "1.5e18", Amount: 1},
			domain.ErrPriceMustBeGreaterThanZero,
		},
		{
			"zero amount",
			listing.CreateListingParams{TokenType: domain.TokenType1155, ContractAddress: contract, TokenId: "1", Price: "100", Amount: 0},
			domain.ErrAmountMustBeGreaterThanZero,
		},
		{
			"erc721 amount above one",
			listing.CreateListingParams{TokenType: domain.TokenType721, ContractAddress: contract, TokenId: "1", Price: "100", Amount: 2},
			domain.ErrAmountMustBeGreaterThanZero,
		},
	}
	for _, tc := range cases {
		_, err := s.im.CreateListing(c, seller, tc.params)
		s.ErrorIs(err, tc.err, tc.name)
	}
	s.nft.AssertNotCalled(s.T(), "BalanceOf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestCreateListingHoldings() {
	c := ctx.Background()

	// balance checks run before the approval check, so the first two
	// cases never reach IsApprovedForAll. Approval is per contract,
	// not per token id, so only the last case may register it.
	s.nft.On("BalanceOf", mock.Anything, domain.TokenType721, contract, domain.TokenId("1"), seller).Return(big.NewInt(0), nil)
	_, err := s.im.CreateListing(c, seller, listing.CreateListingParams{
		TokenType: domain.TokenType721, ContractAddress: contract, TokenId: "1", Price: "100", Amount: 1,
	})
	s.ErrorIs(err, domain.ErrSellerDoesNotOwnToken)

	s.nft.On("BalanceOf", mock.Anything, domain.TokenType1155, contract, domain.TokenId("2"), seller).Return(big.NewInt(3), nil)
	_, err = s.im.CreateListing(c, seller, listing.CreateListingParams{
		TokenType: domain.TokenType1155, ContractAddress: contract, TokenId: "2", Price: "100", Amount: 5,
	})
	s.ErrorIs(err, domain.ErrSellerDoesNotHaveEnoughTokens)

	s.nft.On("BalanceOf", mock.Anything, domain.TokenType1155, contract, domain.TokenId("3"), seller).Return(big.NewInt(5), nil)
	s.nft.On("IsApprovedForAll", mock.Anything, domain.TokenType1155, contract, seller, operator).Return(false, nil)
	_, err = s.im.CreateListing(c, seller, listing.CreateListingParams{
		TokenType: domain.TokenType1155, ContractAddress: contract, TokenId: "3", Price: "100", Amount: 5,
	})
	s.ErrorIs(err, domain.ErrContractNotApproved)
}

func (s *listingUseCaseTestSuite) TestListBatchItems() {
	c := ctx.Background()

	_, err := s.im.ListBatchItems(c, seller, listing.BatchListingParams{
		TokenTypes:        []domain.TokenType{domain.TokenType721},
		ContractAddresses: []domain.Address{contract, contract},
		TokenIds:          []domain.TokenId{"1"},
		Prices:            []string{"100"},
		Amounts:           []int64{1},
	})
	s.ErrorIs(err, domain.ErrInvalidArrayLength)

	s.mockHoldings(domain.TokenType721, "1", 1, true)
	s.mockHoldings(domain.TokenType721, "2", 1, true)
	ids, err := s.im.ListBatchItems(c, seller, listing.BatchListingParams{
		TokenTypes:        []domain.TokenType{domain.TokenType721, domain.TokenType721},
		ContractAddresses: []domain.Address{contract, contract},
		TokenIds:          []domain.TokenId{"1", "2"},
		Prices:            []string{"1000000000000000000", "2000000000000000000"},
		Amounts:           []int64{1, 1},
	})
	s.NoError(err)
	s.Len(ids, 2)
	s.EqualValues(ids[0]+1, ids[1])
}

func (s *listingUseCaseTestSuite) TestListBatchItemsAllOrNothing() {
	c := ctx.Background()

	s.mockHoldings(domain.TokenType721, "1", 1, true)
	s.mockHoldings(domain.TokenType721, "2", 0, true)
	_, err := s.im.ListBatchItems(c, seller, listing.BatchListingParams{
		TokenTypes:        []domain.TokenType{domain.TokenType721, domain.TokenType721},
		ContractAddresses: []domain.Address{contract, contract},
		TokenIds:          []domain.TokenId{"1", "2"},
		Prices:            []string{"100", "100"},
		Amounts:           []int64{1, 1},
	})
	s.ErrorIs(err, domain.ErrSellerDoesNotOwnToken)

	// first element rolled back
	remaining, err := s.repo.FindAll(c)
	s.NoError(err)
	s.Empty(remaining)
}

func (s *listingUseCaseTestSuite) TestUpdateListingPrice() {
	c := ctx.Background()

	id := s.createErc721("1", "1000")

	s.ErrorIs(s.im.UpdateListingPrice(c, buyer, id, big.NewInt(2000)), domain.ErrNotListingOwner)
	s.ErrorIs(s.im.UpdateListingPrice(c, seller, id, big.NewInt(0)), domain.ErrPriceMustBeGreaterThanZero)
	s.ErrorIs(s.im.UpdateListingPrice(c, seller, id+100, big.NewInt(2000)), domain.ErrListingDoesNotExist)

	s.NoError(s.im.UpdateListingPrice(c, seller, id, big.NewInt(2000)))
	l, err := s.im.GetListingDetailsById(c, id)
	s.NoError(err)
	s.Equal("2000", l.Price)
	s.EqualValues(1, l.AvailableAmount)
}

func (s *listingUseCaseTestSuite) TestRemoveListItem() {
	c := ctx.Background()

	id := s.createErc721("1", "1000")

	s.ErrorIs(s.im.RemoveListItem(c, buyer, id), domain.ErrNotListingOwner)
	s.ErrorIs(s.im.RemoveListItem(c, seller, id+100), domain.ErrListingDoesNotExist)

	s.NoError(s.im.RemoveListItem(c, seller, id))
	exists, err := s.im.ListingExistsById(c, id)
	s.NoError(err)
	s.False(exists)
	s.ErrorIs(s.im.RemoveListItem(c, seller, id), domain.ErrListingDoesNotExist)

	// removal never moves tokens
	s.nft.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestPurchaseListingErc721() {
	c := ctx.Background()
	price := big.NewInt(1000000000000000000)

	id := s.createErc721("1", price.String())

	s.ledger.On("Transfer", mock.Anything, buyer, seller, price).Return(nil)
	s.nft.On("Transfer", mock.Anything, domain.TokenType721, contract, domain.TokenId("1"), seller, buyer, int64(1)).Return(nil)

	// overpayment is accepted but only the price moves
	payment := new(big.Int).Add(price, big.NewInt(5))
	s.NoError(s.im.PurchaseListing(c, buyer, id, 1, payment))

	exists, err := s.im.ListingExistsById(c, id)
	s.NoError(err)
	s.False(exists)
	s.ledger.AssertExpectations(s.T())
	s.nft.AssertExpectations(s.T())
}

func (s *listingUseCaseTestSuite) TestPurchaseListingErc1155Partial() {
	c := ctx.Background()

	id := s.createErc1155("7", "100", 10)

	s.ledger.On("Transfer", mock.Anything, buyer, seller, big.NewInt(300)).Return(nil)
	s.nft.On("Transfer", mock.Anything, domain.TokenType1155, contract, domain.TokenId("7"), seller, buyer, int64(3)).Return(nil)

	s.NoError(s.im.PurchaseListing(c, buyer, id, 3, big.NewInt(300)))

	l, err := s.im.GetListingDetailsById(c, id)
	s.NoError(err)
	s.EqualValues(7, l.AvailableAmount)
	s.EqualValues(10, l.TotalAmount)
	s.Equal("100", l.Price)
}

func (s *listingUseCaseTestSuite) TestPurchaseListingValidation() {
	c := ctx.Background()

	id := s.createErc1155("7", "100", 10)

	s.ErrorIs(s.im.PurchaseListing(c, buyer, id+100, 1, big.NewInt(100)), domain.ErrListingDoesNotExist)
	s.ErrorIs(s.im.PurchaseListing(c, buyer, id, 0, big.NewInt(100)), domain.ErrAmountMustBeGreaterThanZero)
	s.ErrorIs(s.im.PurchaseListing(c, seller, id, 1, big.NewInt(100)), domain.ErrCannotBuyOwnListing)
	s.ErrorIs(s.im.PurchaseListing(c, buyer, id, 11, big.NewInt(1100)), domain.ErrNotEnoughTokensAvailable)
	s.ErrorIs(s.im.PurchaseListing(c, buyer, id, 3, big.NewInt(299)), domain.ErrInsufficientPayment)

	// failed attempts leave the listing untouched
	l, err := s.im.GetListingDetailsById(c, id)
	s.NoError(err)
	s.EqualValues(10, l.AvailableAmount)
	s.ledger.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestPurchaseListingPartialErc721() {
	c := ctx.Background()

	id := s.createErc721("1", "1000")

	s.ErrorIs(s.im.PurchaseListing(c, buyer, id, 2, big.NewInt(2000)), domain.ErrCannotBuyPartialERC721)

	l, err := s.im.GetListingDetailsById(c, id)
	s.NoError(err)
	s.EqualValues(1, l.AvailableAmount)
}

func (s *listingUseCaseTestSuite) TestPurchaseRollbackOnLedgerFailure() {
	c := ctx.Background()

	id := s.createErc1155("7", "100", 10)

	s.ledger.On("Transfer", mock.Anything, buyer, seller, big.NewInt(300)).Return(domain.ErrInsufficientPayment)

	s.ErrorIs(s.im.PurchaseListing(c, buyer, id, 3, big.NewInt(300)), domain.ErrInsufficientPayment)

	l, err := s.im.GetListingDetailsById(c, id)
	s.NoError(err)
	s.EqualValues(10, l.AvailableAmount)
	s.nft.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestPurchaseRollbackOnTokenFailure() {
	c := ctx.Background()

	id := s.createErc1155("7", "100", 10)

	transferErr := errors.New("execution reverted")
	s.ledger.On("Transfer", mock.Anything, buyer, seller, big.NewInt(300)).Return(nil)
	s.ledger.On("Transfer", mock.Anything, seller, buyer, big.NewInt(300)).Return(nil)
	s.nft.On("Transfer", mock.Anything, domain.TokenType1155, contract, domain.TokenId("7"), seller, buyer, int64(3)).Return(transferErr)

	s.ErrorIs(s.im.PurchaseListing(c, buyer, id, 3, big.NewInt(300)), transferErr)

	// funds returned and inventory restored
	s.ledger.AssertCalled(s.T(), "Transfer", mock.Anything, seller, buyer, big.NewInt(300))
	l, err := s.im.GetListingDetailsById(c, id)
	s.NoError(err)
	s.EqualValues(10, l.AvailableAmount)
}

func (s *listingUseCaseTestSuite) TestPurchaseReentrancy() {
	c := ctx.Background()
	price := big.NewInt(1000)

	id := s.createErc721("1", price.String())

	s.ledger.On("Transfer", mock.Anything, buyer, seller, price).Return(nil)
	s.nft.On("Transfer", mock.Anything, domain.TokenType721, contract, domain.TokenId("1"), seller, buyer, int64(1)).
		Run(func(args mock.Arguments) {
			// malicious token contract calls back mid-settlement
			err := s.im.PurchaseListing(c, buyer, id, 1, price)
			s.ErrorIs(err, domain.ErrListingNotAvailable)
		}).
		Return(nil)

	s.NoError(s.im.PurchaseListing(c, buyer, id, 1, price))

	exists, err := s.im.ListingExistsById(c, id)
	s.NoError(err)
	s.False(exists)
	s.ledger.AssertNumberOfCalls(s.T(), "Transfer", 1)
}

func (s *listingUseCaseTestSuite) TestRemoveReentrancy() {
	c := ctx.Background()

	id := s.createErc1155("7", "100", 10)

	s.ledger.On("Transfer", mock.Anything, buyer, seller, big.NewInt(300)).Return(nil)
	s.nft.On("Transfer", mock.Anything, domain.TokenType1155, contract, domain.TokenId("7"), seller, buyer, int64(3)).
		Run(func(args mock.Arguments) {
			// malicious token contract cancels the listing mid-settlement
			err := s.im.RemoveListItem(c, seller, id)
			s.ErrorIs(err, domain.ErrListingNotAvailable)
		}).
		Return(nil)

	s.NoError(s.im.PurchaseListing(c, buyer, id, 3, big.NewInt(300)))

	// the listing survived the nested removal and the seller can still
	// cancel it once settlement is done
	l, err := s.im.GetListingDetailsById(c, id)
	s.NoError(err)
	s.EqualValues(7, l.AvailableAmount)
	s.NoError(s.im.RemoveListItem(c, seller, id))
}
