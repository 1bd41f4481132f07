package activity

import (
	"time"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/listing"
)

type ActivityType string

const (
	ActivityTypeList          ActivityType = "list"
	ActivityTypeCancelListing ActivityType = "cancelListing"
	ActivityTypeUpdateListing ActivityType = "updateListing"
	ActivityTypeSale          ActivityType = "sale"
)

// Activity is one row of the marketplace activity feed. Price is the
// unit price in wei at the time of the event.
type Activity struct {
	Type            ActivityType     `json:"type" bson:"type"`
	ListingId       listing.Id       `json:"listingId" bson:"listingId"`
	TokenType       domain.TokenType `json:"tokenType" bson:"tokenType"`
	ContractAddress domain.Address   `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Seller          domain.Address   `json:"seller" bson:"seller"`
	Buyer           domain.Address   `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Quantity        int64            `json:"quantity" bson:"quantity"`
	Price           string           `json:"price" bson:"price"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
}

type ActivityResult struct {
	Activities []*Activity `json:"activities"`
	Count      int         `json:"count"`
}

type findOptions struct {
	Offset    *int32
	Limit     *int32
	Account   *domain.Address
	ListingId *listing.Id
	Type      *ActivityType
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

func WithPagination(offset int32, limit int32) FindOptions {
	return func(options *findOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// WithAccount matches activities where the account is seller or buyer.
func WithAccount(account domain.Address) FindOptions {
	return func(options *findOptions) error {
		options.Account = account.ToLowerPtr()
		return nil
	}
}

func WithListingId(id listing.Id) FindOptions {
	return func(options *findOptions) error {
		options.ListingId = &id
		return nil
	}
}

func WithType(typ ActivityType) FindOptions {
	return func(options *findOptions) error {
		options.Type = &typ
		return nil
	}
}

type Repo interface {
	Insert(c ctx.Ctx, a *Activity) error
	FindAll(c ctx.Ctx, opts ...FindOptions) ([]*Activity, error)
	Count(c ctx.Ctx, opts ...FindOptions) (int, error)
}

type UseCase interface {
	Record(c ctx.Ctx, a *Activity) error
	FindActivities(c ctx.Ctx, opts ...FindOptions) (*ActivityResult, error)
}
