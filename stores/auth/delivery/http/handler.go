package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/delivery"
	"github.com/color-xyz/goapi/domain"
)

type authHandler struct {
	auth domain.AuthUseCase
}

func New(e *echo.Echo, auth domain.AuthUseCase) {
	h := &authHandler{auth}

	g := e.Group("/auth")
	g.POST("/nonce", h.getNonce)
	g.POST("/sign", h.sign)
	g.GET("/signingMsgTemplate", h.getSigningMsgTemplate)
}

func (h *authHandler) getNonce(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Address domain.Address `json:"address" binding:"address"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	nonce, err := h.auth.GetNonce(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, nonce)
}

func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Address   domain.Address `json:"address" binding:"address"`
		Signature string         `json:"signature"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	tkn, err := h.auth.SignToken(ctx, p.Address, p.Signature)
	if err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
}

func (h *authHandler) getSigningMsgTemplate(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	template, err := h.auth.GetSigningMsgTemplate(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Msg string `json:"template"`
	}{
		Msg: template,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
