package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/delivery"
	"github.com/color-xyz/goapi/domain"
	dActivity "github.com/color-xyz/goapi/domain/activity"
	dListing "github.com/color-xyz/goapi/domain/listing"
)

type handler struct {
	activity dActivity.UseCase
}

func New(e *echo.Echo, _activity dActivity.UseCase) {
	h := &handler{_activity}
	e.GET("/activities", h.getActivities)
}

func (h *handler) getActivities(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	type params struct {
		Offset    int32                   `query:"offset"`
		Limit     int32                   `query:"limit"`
		Account   *domain.Address         `query:"account"`
		ListingId *dListing.Id            `query:"listingId"`
		Type      *dActivity.ActivityType `query:"type"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []dActivity.FindOptions{
		dActivity.WithPagination(p.Offset, p.Limit),
	}
	if p.Account != nil {
		opts = append(opts, dActivity.WithAccount(*p.Account))
	}
	if p.ListingId != nil {
		opts = append(opts, dActivity.WithListingId(*p.ListingId))
	}
	if p.Type != nil {
		opts = append(opts, dActivity.WithType(*p.Type))
	}

	res, err := h.activity.FindActivities(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
