package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/delivery"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/account"
	"github.com/color-xyz/goapi/middleware"
	authMiddleware "github.com/color-xyz/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	account account.UseCase
}

func New(e *echo.Echo, am *authMiddleware.AuthMiddleware, _account account.UseCase) {
	h := &handler{_account}

	g := e.Group("/accounts")
	g.GET("/:address", h.getAccount, middleware.IsValidAddress("address"))
	g.POST("/deposit", h.deposit, am.Auth())
	g.POST("/withdraw", h.withdraw, am.Auth())
}

func (h *handler) getAccount(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	address := domain.Address(c.Param("address"))

	info, err := h.account.GetInfo(ctx, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, info)
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	address := c.Get("address").(domain.Address)

	amount, err := bindAmount(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.account.Deposit(ctx, address, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	address := c.Get("address").(domain.Address)

	amount, err := bindAmount(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.account.Withdraw(ctx, address, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func bindAmount(c echo.Context) (*big.Int, error) {
	type params struct {
		Amount string `json:"amount"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return nil, domain.ErrBadParamInput
	}
	amount, ok := new(big.Int).SetString(p.Amount, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return amount, nil
}
