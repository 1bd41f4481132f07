package listing

import (
	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
)

type EventType string

const (
	EventListingCreated      EventType = "ListingCreated"
	EventListingRemoved      EventType = "ListingRemoved"
	EventListingPriceUpdated EventType = "ListingPriceUpdated"
	EventListingSold         EventType = "ListingSold"
)

// Event is a notification emitted after a mutation has been committed
// to the store. Emission is best-effort and never fails the operation.
type Event struct {
	EventId         string           `json:"eventId"`
	Type            EventType        `json:"type"`
	ListingId       Id               `json:"listingId"`
	TokenType       domain.TokenType `json:"tokenType"`
	ContractAddress domain.Address   `json:"contractAddress"`
	TokenId         domain.TokenId   `json:"tokenId"`
	Seller          domain.Address   `json:"seller"`
	// Buyer is set for ListingSold only.
	Buyer  domain.Address `json:"buyer,omitempty"`
	Price  string         `json:"price,omitempty"`
	Amount int64          `json:"amount,omitempty"`
}

type EventEmitter interface {
	Emit(c ctx.Ctx, ev Event)
}
