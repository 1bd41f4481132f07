package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/ptr"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/listing"
)

type memoryRepoTestSuite struct {
	suite.Suite

	im listing.Repo
}

func (s *memoryRepoTestSuite) SetupTest() {
	s.im = NewMemoryListingRepo()
}

func TestMemoryRepo(t *testing.T) {
	suite.Run(t, new(memoryRepoTestSuite))
}

func (s *memoryRepoTestSuite) mockListing(seller domain.Address) *listing.Listing {
	return &listing.Listing{
		TokenType:       domain.TokenType721,
		ContractAddress: "0xABC",
		TokenId:         "1",
		Seller:          seller,
		Price:           "1000",
		TotalAmount:     1,
		AvailableAmount: 1,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func (s *memoryRepoTestSuite) TestCreateAssignsMonotonicIds() {
	c := ctx.Background()

	id1, err := s.im.Create(c, s.mockListing("0x1"))
	s.NoError(err)
	s.EqualValues(0, id1)
	id2, err := s.im.Create(c, s.mockListing("0x2"))
	s.NoError(err)
	s.Greater(uint64(id2), uint64(id1))

	// deleted ids are not reused
	s.NoError(s.im.Delete(c, id2))
	id3, err := s.im.Create(c, s.mockListing("0x3"))
	s.NoError(err)
	s.Greater(uint64(id3), uint64(id2))
}

func (s *memoryRepoTestSuite) TestFindOne() {
	c := ctx.Background()

	id, err := s.im.Create(c, s.mockListing("0xSeller"))
	s.NoError(err)

	found, err := s.im.FindOne(c, id)
	s.NoError(err)
	s.Equal(id, found.ListingId)
	s.Equal(domain.Address("0xseller"), found.Seller)

	_, err = s.im.FindOne(c, id+100)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *memoryRepoTestSuite) TestUpdate() {
	c := ctx.Background()

	id, err := s.im.Create(c, s.mockListing("0x1"))
	s.NoError(err)

	s.NoError(s.im.Update(c, id, listing.Patchable{
		Price:           ptr.String("2000"),
		AvailableAmount: ptr.Int64(0),
	}))

	found, err := s.im.FindOne(c, id)
	s.NoError(err)
	s.Equal("2000", found.Price)
	s.EqualValues(0, found.AvailableAmount)

	s.ErrorIs(s.im.Update(c, id+100, listing.Patchable{}), domain.ErrNotFound)
}

func (s *memoryRepoTestSuite) TestDelete() {
	c := ctx.Background()

	id, err := s.im.Create(c, s.mockListing("0x1"))
	s.NoError(err)
	s.NoError(s.im.Delete(c, id))
	s.ErrorIs(s.im.Delete(c, id), domain.ErrNotFound)

	_, err = s.im.FindOne(c, id)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *memoryRepoTestSuite) TestFindAll() {
	c := ctx.Background()

	for i := 0; i < 3; i++ {
		_, err := s.im.Create(c, s.mockListing("0xAA"))
		s.NoError(err)
	}
	other := s.mockListing("0xBB")
	other.TokenType = domain.TokenType1155
	_, err := s.im.Create(c, other)
	s.NoError(err)

	all, err := s.im.FindAll(c)
	s.NoError(err)
	s.Len(all, 4)

	bySeller, err := s.im.FindAll(c, listing.WithSeller("0xAA"))
	s.NoError(err)
	s.Len(bySeller, 3)

	byType, err := s.im.FindAll(c, listing.WithTokenType(domain.TokenType1155))
	s.NoError(err)
	s.Len(byType, 1)

	cnt, err := s.im.Count(c, listing.WithSeller("0xAA"))
	s.NoError(err)
	s.Equal(3, cnt)

	paged, err := s.im.FindAll(c, listing.WithPagination(1, 2), listing.WithSort("listingId", domain.SortDirAsc))
	s.NoError(err)
	s.Len(paged, 2)
	s.EqualValues(1, paged[0].ListingId)
	s.EqualValues(2, paged[1].ListingId)

	descs, err := s.im.FindAll(c, listing.WithSort("listingId", domain.SortDirDesc))
	s.NoError(err)
	s.EqualValues(3, descs[0].ListingId)
}
