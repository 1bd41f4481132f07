package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/delivery"
	"github.com/color-xyz/goapi/base/pricefmt"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/statistic"
	"github.com/color-xyz/goapi/middleware"
)

type handler struct {
	statisticUC statistic.UseCase
}

func New(e *echo.Echo, statisticUC statistic.UseCase) {
	h := &handler{statisticUC}
	gs := e.Group("/statistics")
	gs.GET("", h.getStatistics, middleware.CacheHttp(30*time.Second))
}

func (h *handler) getStatistics(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	totalListings, err := h.getOrZero(ctx, statistic.TotalListings)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	totalSales, err := h.getOrZero(ctx, statistic.TotalSales)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	totalVolume, err := h.getOrZero(ctx, statistic.TotalVolume)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}

	volumeDisplay, err := pricefmt.FromWeiString(totalVolume)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}

	res := struct {
		TotalListings      string `json:"totalListings"`
		TotalSales         string `json:"totalSales"`
		TotalVolume        string `json:"totalVolume"`
		TotalVolumeDisplay string `json:"totalVolumeDisplay"`
	}{
		TotalListings:      totalListings,
		TotalSales:         totalSales,
		TotalVolume:        totalVolume,
		TotalVolumeDisplay: volumeDisplay.String(),
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getOrZero(ctx bCtx.Ctx, key string) (string, error) {
	v, err := h.statisticUC.Get(ctx, key)
	if err == domain.ErrNotFound {
		return "0", nil
	} else if err != nil {
		return "", err
	}
	return v, nil
}
