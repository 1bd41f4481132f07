package delivery

import (
	"errors"
	"net/http"

	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/service/query"
	"github.com/labstack/echo/v4"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// statusOf overrides the handler's status for errors that carry their
// own http semantics.
func statusOf(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, query.ErrNotFound),
		errors.Is(err, domain.ErrListingDoesNotExist):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotListingOwner),
		errors.Is(err, domain.ErrNotTokenOwner),
		errors.Is(err, domain.ErrCannotBuyOwnListing):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrInvalidNumberFormat),
		errors.Is(err, domain.ErrInvalidTokenType),
		errors.Is(err, domain.ErrInvalidArrayLength),
		errors.Is(err, domain.ErrPriceMustBeGreaterThanZero),
		errors.Is(err, domain.ErrAmountMustBeGreaterThanZero),
		errors.Is(err, domain.ErrSellerDoesNotOwnToken),
		errors.Is(err, domain.ErrSellerDoesNotHaveEnoughTokens),
		errors.Is(err, domain.ErrContractNotApproved),
		errors.Is(err, domain.ErrListingNotAvailable),
		errors.Is(err, domain.ErrNotEnoughTokensAvailable),
		errors.Is(err, domain.ErrCannotBuyPartialERC721):
		return http.StatusBadRequest
	default:
		return fallback
	}
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = statusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
