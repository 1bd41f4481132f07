package listing

import (
	"math/big"
	"time"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
)

// Name is the engine identity, queryable by deployment harnesses.
const Name = "Color Marketplace"

// Id is the primary key into the listing store. Ids are assigned
// monotonically at creation and never reused, even after removal.
type Id uint64

// Listing is a seller's offer to sell a quantity of a token at a fixed
// unit price. A listing exists iff it is present in the store and
// AvailableAmount > 0; removal and depletion are both terminal.
type Listing struct {
	ListingId       Id               `json:"listingId" bson:"listingId"`
	TokenType       domain.TokenType `json:"tokenType" bson:"tokenType"`
	ContractAddress domain.Address   `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Seller          domain.Address   `json:"seller" bson:"seller"`
	// Price is the unit price in wei, base-10. Strictly positive while
	// the listing exists.
	Price           string    `json:"price" bson:"price"`
	TotalAmount     int64     `json:"totalAmount" bson:"totalAmount"`
	AvailableAmount int64     `json:"availableAmount" bson:"availableAmount"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) LowerCase() {
	l.ContractAddress = l.ContractAddress.ToLower()
	l.Seller = l.Seller.ToLower()
}

// PriceBigInt parses the unit price.
func (l *Listing) PriceBigInt() (*big.Int, error) {
	p, ok := new(big.Int).SetString(l.Price, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return p, nil
}

type Patchable struct {
	Price           *string    `json:"price" bson:"price,omitempty"`
	AvailableAmount *int64     `json:"availableAmount" bson:"availableAmount,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// CreateListingParams carries one createListing request.
type CreateListingParams struct {
	TokenType       domain.TokenType `json:"tokenType"`
	ContractAddress domain.Address   `json:"contractAddress"`
	TokenId         domain.TokenId   `json:"tokenId"`
	Price           string           `json:"price"`
	Amount          int64            `json:"amount"`
}

// BatchListingParams carries the element-wise arrays of listBatchItems.
// All five slices must have identical length.
type BatchListingParams struct {
	TokenTypes        []domain.TokenType `json:"tokenTypes"`
	ContractAddresses []domain.Address   `json:"contractAddresses"`
	TokenIds          []domain.TokenId   `json:"tokenIds"`
	Prices            []string           `json:"prices"`
	Amounts           []int64            `json:"amounts"`
}

// At flattens element i into a CreateListingParams. Callers must have
// validated slice lengths first.
func (p *BatchListingParams) At(i int) CreateListingParams {
	return CreateListingParams{
		TokenType:       p.TokenTypes[i],
		ContractAddress: p.ContractAddresses[i],
		TokenId:         p.TokenIds[i],
		Price:           p.Prices[i],
		Amount:          p.Amounts[i],
	}
}

func (p *BatchListingParams) Len() int {
	return len(p.TokenTypes)
}

// SameLength reports whether all five arrays line up.
func (p *BatchListingParams) SameLength() bool {
	n := len(p.TokenTypes)
	return len(p.ContractAddresses) == n &&
		len(p.TokenIds) == n &&
		len(p.Prices) == n &&
		len(p.Amounts) == n
}

type findOptions struct {
	SortBy          *string
	SortDir         *domain.SortDir
	Offset          *int32
	Limit           *int32
	Seller          *domain.Address
	ContractAddress *domain.Address
	TokenType       *domain.TokenType
}

type FindOptions func(*findOptions) error

func GetFindOptions(opts ...FindOptions) (findOptions, error) {
	res := findOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSort(sortby string, sortdir domain.SortDir) FindOptions {
	return func(options *findOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindOptions {
	return func(options *findOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSeller(seller domain.Address) FindOptions {
	return func(options *findOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithContractAddress(address domain.Address) FindOptions {
	return func(options *findOptions) error {
		options.ContractAddress = address.ToLowerPtr()
		return nil
	}
}

func WithTokenType(tokenType domain.TokenType) FindOptions {
	return func(options *findOptions) error {
		options.TokenType = &tokenType
		return nil
	}
}

// Repo is the listing store. It owns id issuance and all listing state;
// only the engine mutates it.
type Repo interface {
	// Create assigns the next listing id, stores the listing and
	// returns the id. Ids are monotonic and never reused.
	Create(c ctx.Ctx, l *Listing) (Id, error)
	// FindOne returns domain.ErrNotFound for ids never issued or
	// already deleted.
	FindOne(c ctx.Ctx, id Id) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindOptions) ([]*Listing, error)
	Count(c ctx.Ctx, opts ...FindOptions) (int, error)
	Update(c ctx.Ctx, id Id, patchable Patchable) error
	Delete(c ctx.Ctx, id Id) error
}

// UseCase is the listing engine. The caller address is explicit on every
// mutating operation; the delivery layer resolves it from auth.
type UseCase interface {
	CreateListing(c ctx.Ctx, seller domain.Address, params CreateListingParams) (Id, error)
	ListBatchItems(c ctx.Ctx, seller domain.Address, params BatchListingParams) ([]Id, error)
	UpdateListingPrice(c ctx.Ctx, caller domain.Address, id Id, newPrice *big.Int) error
	RemoveListItem(c ctx.Ctx, caller domain.Address, id Id) error
	PurchaseListing(c ctx.Ctx, buyer domain.Address, id Id, amount int64, payment *big.Int) error
	ListingExistsById(c ctx.Ctx, id Id) (bool, error)
	GetListingDetailsById(c ctx.Ctx, id Id) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindOptions) ([]*Listing, error)
}
