package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidChainId      = errors.New("invalid chain id")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
)

// Marketplace failure conditions. The set is closed: every rejected call
// surfaces exactly one of these and no two conditions share a value.
var (
	ErrNotTokenOwner                 = errors.New("not token owner")
	ErrInvalidArrayLength            = errors.New("invalid array length")
	ErrInsufficientPayment           = errors.New("insufficient payment")
	ErrSellerDoesNotOwnToken         = errors.New("seller does not own token")
	ErrContractNotApproved           = errors.New("contract not approved")
	ErrSellerDoesNotHaveEnoughTokens = errors.New("seller does not have enough tokens")
	ErrInvalidTokenType              = errors.New("invalid token type")
	ErrCannotBuyOwnListing           = errors.New("cannot buy own listing")
	ErrListingNotAvailable           = errors.New("listing not available")
	ErrNotEnoughTokensAvailable      = errors.New("not enough tokens available")
	ErrPriceMustBeGreaterThanZero    = errors.New("price must be greater than zero")
	ErrAmountMustBeGreaterThanZero   = errors.New("amount must be greater than zero")
	ErrListingDoesNotExist           = errors.New("listing does not exist")
	ErrNotListingOwner               = errors.New("not listing owner")
	ErrCannotBuyPartialERC721        = errors.New("cannot buy partial erc721")
)
