// Package portfoliodelivery manages delivery layer of trades and positions.
package portfoliodelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/internal/middleware"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
	"github.com/go-petr/paper-trade/pkg/tokenpkg"
	"github.com/go-petr/paper-trade/pkg/web"
)

// Service provides service layer interface needed by portfolio delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package portfoliodelivery
type Service interface {
	Buy(ctx context.Context, username, assetClass, symbol, amount string) (domain.TradeTxResult, error)
	Sell(ctx context.Context, username, assetClass, symbol, quantity string) (domain.SaleResult, error)
	Portfolio(ctx context.Context, username string) (domain.Account, []domain.Position, error)
}

// Handler facilitates portfolio delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns portfolio handler.
func NewHandler(ps Service) Handler {
	return Handler{service: ps}
}

type tradeRequest struct {
	AssetClass string `json:"asset_class" binding:"required,assetclass"`
	Symbol     string `json:"symbol" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
}

// Buy handles http request to buy an asset for a cash amount.
func (h *Handler) Buy(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req tradeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Buy(ctx, authPayload.Username, req.AssetClass, req.Symbol, req.Amount)
	if err != nil {
		handleTradeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Trade domain.TradeTxResult `json:"trade"`
	}{result}})
}

type sellRequest struct {
	AssetClass string `json:"asset_class" binding:"required,assetclass"`
	Symbol     string `json:"symbol" binding:"required"`
	Quantity   string `json:"quantity" binding:"required"`
}

// Sell handles http request to sell a quantity of a held asset.
func (h *Handler) Sell(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req sellRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Sell(ctx, authPayload.Username, req.AssetClass, req.Symbol, req.Quantity)
	if err != nil {
		handleTradeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Sale domain.SaleResult `json:"sale"`
	}{result}})
}

// Portfolio handles http request to list the user's account and positions.
func (h *Handler) Portfolio(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, positions, err := h.service.Portfolio(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Account   domain.Account    `json:"account"`
		Positions []domain.Position `json:"positions"`
	}{account, positions}})
}

func handleTradeError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx)

	switch err {
	case domain.ErrInvalidAmount, domain.ErrNegativeAmount, domain.ErrInvalidQuantity:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrAccountNotFound, domain.ErrHoldingNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInsufficientBalance, domain.ErrInsufficientQuantity:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	case domain.ErrQuoteUnavailable:
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
