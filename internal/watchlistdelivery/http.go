// Package watchlistdelivery manages delivery layer of watchlists.
package watchlistdelivery

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

// Service provides service layer interface needed by watchlist delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package watchlistdelivery
type Service interface {
	Add(ctx context.Context, username, assetClass, symbol string) (domain.WatchlistItem, error)
	List(ctx context.Context, username, assetClass string) ([]domain.WatchlistItem, error)
	Remove(ctx context.Context, username, assetClass, symbol string) error
}

// Handler facilitates watchlist delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns watchlist handler.
func NewHandler(ws Service) Handler {
	return Handler{service: ws}
}

type itemRequest struct {
	AssetClass string `json:"asset_class" binding:"required,assetclass"`
	Symbol     string `json:"symbol" binding:"required"`
}

// Add handles http request to put an asset on the watchlist.
func (h *Handler) Add(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req itemRequest
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

	item, err := h.service.Add(ctx, authPayload.Username, req.AssetClass, req.Symbol)
	if err != nil {
		switch err {
		case domain.ErrWatchlistDuplicate:
			gctx.JSON(http.StatusConflict, web.Error(err))
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		default:
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Item domain.WatchlistItem `json:"item"`
	}{item}})
}

type listRequest struct {
	AssetClass string `form:"asset_class" binding:"omitempty,assetclass"`
}

// List handles http request to list watched assets.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	items, err := h.service.List(ctx, authPayload.Username, req.AssetClass)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Items []domain.WatchlistItem `json:"items"`
	}{items}})
}

// Remove handles http request to take an asset off the watchlist.
func (h *Handler) Remove(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req itemRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.Remove(ctx, authPayload.Username, req.AssetClass, req.Symbol); err != nil {
		if err == domain.ErrWatchlistItemNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}
