package http

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/delivery"
	"github.com/color-xyz/goapi/domain"
	dListing "github.com/color-xyz/goapi/domain/listing"
	"github.com/color-xyz/goapi/middleware"
	authMiddleware "github.com/color-xyz/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing dListing.UseCase
}

func New(e *echo.Echo, am *authMiddleware.AuthMiddleware, _listing dListing.UseCase) {
	h := &handler{_listing}

	g := e.Group("/listings")
	g.POST("", h.createListing, am.Auth())
	g.POST("/batch", h.listBatchItems, am.Auth())
	g.GET("", h.getListings)
	g.GET("/:listingId", h.getListing)
	g.GET("/:listingId/exists", h.listingExists)
	g.PATCH("/:listingId/price", h.updatePrice, am.Auth())
	g.DELETE("/:listingId", h.removeListing, am.Auth())
	g.POST("/:listingId/purchase", h.purchaseListing, am.Auth())

	e.GET("/marketplace/name", h.getMarketplaceName, middleware.CacheHttp(1*time.Minute))
}

func (h *handler) createListing(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	seller := c.Get("address").(domain.Address)

	p := &dListing.CreateListingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	id, err := h.listing.CreateListing(ctx, seller, *p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, id)
}

func (h *handler) listBatchItems(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	seller := c.Get("address").(domain.Address)

	p := &dListing.BatchListingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	ids, err := h.listing.ListBatchItems(ctx, seller, *p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, ids)
}

func (h *handler) getListings(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	type params struct {
		SortBy          *string           `query:"sortBy"`
		SortDir         *domain.SortDir   `query:"sortDir"`
		Offset          int32             `query:"offset"`
		Limit           int32             `query:"limit"`
		Seller          *domain.Address   `query:"seller"`
		ContractAddress *domain.Address   `query:"contractAddress"`
		TokenType       *domain.TokenType `query:"tokenType"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []dListing.FindOptions{
		dListing.WithPagination(p.Offset, p.Limit),
	}
	if p.SortBy != nil && p.SortDir != nil {
		opts = append(opts, dListing.WithSort(*p.SortBy, *p.SortDir))
	}
	if p.Seller != nil {
		opts = append(opts, dListing.WithSeller(*p.Seller))
	}
	if p.ContractAddress != nil {
		opts = append(opts, dListing.WithContractAddress(*p.ContractAddress))
	}
	if p.TokenType != nil {
		opts = append(opts, dListing.WithTokenType(*p.TokenType))
	}

	res, err := h.listing.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.listing.GetListingDetailsById(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) listingExists(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	exists, err := h.listing.ListingExistsById(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, exists)
}

func (h *handler) updatePrice(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	type params struct {
		Price string `json:"price"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	price, ok := new(big.Int).SetString(p.Price, 10)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
	}

	if err := h.listing.UpdateListingPrice(ctx, caller, id, price); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) removeListing(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.listing.RemoveListItem(ctx, caller, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) purchaseListing(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	buyer := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	type params struct {
		Amount  int64  `json:"amount"`
		Payment string `json:"payment"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	payment, ok := new(big.Int).SetString(p.Payment, 10)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidNumberFormat)
	}

	if err := h.listing.PurchaseListing(ctx, buyer, id, p.Amount, payment); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getMarketplaceName(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, dListing.Name)
}

func parseListingId(c echo.Context) (dListing.Id, error) {
	raw, err := strconv.ParseUint(c.Param("listingId"), 10, 64)
	if err != nil {
		return 0, err
	}
	return dListing.Id(raw), nil
}
