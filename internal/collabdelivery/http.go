// Package collabdelivery manages delivery layer of collaboration requests.
package collabdelivery

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

// Service provides service layer interface needed by collaboration delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package collabdelivery
type Service interface {
	Propose(ctx context.Context, requester string, arg domain.CreateCollabRequestParams) (domain.CollabRequest, error)
	List(ctx context.Context, username string) ([]domain.CollabRequest, error)
	Accept(ctx context.Context, actor string, id int64) (domain.SettlementResult, error)
	Reject(ctx context.Context, actor string, id int64) (domain.CollabRequest, error)
}

// Handler facilitates collaboration delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns collaboration handler.
func NewHandler(cs Service) Handler {
	return Handler{service: cs}
}

type proposeRequest struct {
	Collaborator             string `json:"collaborator" binding:"required,alphanum"`
	AssetClass               string `json:"asset_class" binding:"required,assetclass"`
	Symbol                   string `json:"symbol" binding:"required"`
	RequesterContribution    string `json:"requester_contribution" binding:"required"`
	CollaboratorContribution string `json:"collaborator_contribution" binding:"required"`
}

// Propose handles http request to create a collaboration request.
func (h *Handler) Propose(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req proposeRequest
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

	arg := domain.CreateCollabRequestParams{
		Collaborator:             req.Collaborator,
		AssetClass:               req.AssetClass,
		Symbol:                   req.Symbol,
		RequesterContribution:    req.RequesterContribution,
		CollaboratorContribution: req.CollaboratorContribution,
	}

	created, err := h.service.Propose(ctx, authPayload.Username, arg)
	if err != nil {
		switch err {
		case domain.ErrSelfCollaboration, domain.ErrInvalidContribution:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		default:
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Request domain.CollabRequest `json:"request"`
	}{created}})
}

// List handles http request to list requests the user participates in.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	requests, err := h.service.List(ctx, authPayload.Username)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Requests []domain.CollabRequest `json:"requests"`
	}{requests}})
}

type actionRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Accept handles http request to accept and settle a pending request.
func (h *Handler) Accept(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req actionRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Accept(ctx, authPayload.Username, req.ID)
	if err != nil {
		handleActionError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Settlement domain.SettlementResult `json:"settlement"`
	}{result}})
}

// Reject handles http request to reject a pending request.
func (h *Handler) Reject(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req actionRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	rejected, err := h.service.Reject(ctx, authPayload.Username, req.ID)
	if err != nil {
		handleActionError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: struct {
		Request domain.CollabRequest `json:"request"`
	}{rejected}})
}

func handleActionError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx)

	switch err {
	case domain.ErrCollabRequestNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrNotCollaborator:
		gctx.JSON(http.StatusForbidden, web.Error(err))
	case domain.ErrInvalidTransition, domain.ErrRequestExpired:
		gctx.JSON(http.StatusConflict, web.Error(err))
	case domain.ErrZeroContribution:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	case domain.ErrQuoteUnavailable:
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
