// Package quotedelivery manages delivery layer of market data.
package quotedelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/internal/indicators"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
	"github.com/go-petr/paper-trade/pkg/web"
)

const defaultHistoryDays = 180

// Service provides quote access needed by quote delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package quotedelivery
type Service interface {
	LatestPrice(ctx context.Context, assetClass, symbol string) (domain.PriceQuote, error)
	History(ctx context.Context, assetClass, symbol string, from, to time.Time) ([]domain.Candle, error)
	Search(ctx context.Context, assetClass, query string) ([]domain.AssetMatch, error)
}

// Handler facilitates quote delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns quote handler.
func NewHandler(qs Service) Handler {
	return Handler{service: qs}
}

type assetURI struct {
	AssetClass string `uri:"class" binding:"required,assetclass"`
	Symbol     string `uri:"symbol" binding:"required"`
}

// Latest handles http request for the latest price of an asset.
func (h *Handler) Latest(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req assetURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	quote, err := h.service.LatestPrice(ctx, req.AssetClass, req.Symbol)
	if err != nil {
		handleQuoteError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Quote domain.PriceQuote `json:"quote"`
	}{quote}})
}

type historyQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// History handles http request for daily candles with indicator overlays.
func (h *Handler) History(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req assetURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var q historyQuery
	if err := gctx.ShouldBindQuery(&q); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -defaultHistoryDays)

	if q.To != "" {
		to, _ = time.Parse("2006-01-02", q.To)
	}

	if q.From != "" {
		from, _ = time.Parse("2006-01-02", q.From)
	}

	if !from.Before(to) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "from must precede to"})
		return
	}

	candles, err := h.service.History(ctx, req.AssetClass, req.Symbol, from, to)
	if err != nil {
		handleQuoteError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Candles    []domain.Candle    `json:"candles"`
		Indicators []indicators.Point `json:"indicators"`
	}{candles, indicators.Analyze(candles)}})
}

type searchQuery struct {
	AssetClass string `form:"asset_class" binding:"required,assetclass"`
	Query      string `form:"query" binding:"required"`
}

// Search handles http request for asset suggestions matching a query.
func (h *Handler) Search(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req searchQuery
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	matches, err := h.service.Search(ctx, req.AssetClass, req.Query)
	if err != nil {
		handleQuoteError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Matches []domain.AssetMatch `json:"matches"`
	}{matches}})
}

func handleQuoteError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx)

	if err == domain.ErrQuoteUnavailable {
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		return
	}

	l.Error().Err(err).Send()
	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}
