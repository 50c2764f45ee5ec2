// Package collabservice manages business logic layer of collaboration requests.
package collabservice

import (
	"context"
	"time"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/assetpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by collaboration service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package collabservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateCollabRequestParams) (domain.CollabRequest, error)
	Get(ctx context.Context, id int64) (domain.CollabRequest, error)
	ListByParticipant(ctx context.Context, username string) ([]domain.CollabRequest, error)
	UpdateStatus(ctx context.Context, id int64, newStatus string) (domain.CollabRequest, error)
	Settle(ctx context.Context, arg domain.SettleTxParams) (domain.CollabRequest, []domain.Holding, error)
}

// Users verifies that an invited collaborator is a registered user.
type Users interface {
	IsRegistered(ctx context.Context, username string) (bool, error)
}

// Quotes provides the reference price used to book the settled position.
type Quotes interface {
	LatestPrice(ctx context.Context, assetClass, symbol string) (domain.PriceQuote, error)
}

// Service facilitates collaboration service layer logic.
type Service struct {
	repo            Repo
	users           Users
	quotes          Quotes
	requestExpiry   time.Duration
	splitSettlement bool
}

// New returns collaboration service struct to manage collaboration bussines logic.
// A zero requestExpiry disables expiry. With splitSettlement disabled the
// settled position is booked to the collaborator alone.
func New(cr Repo, us Users, qs Quotes, requestExpiry time.Duration, splitSettlement bool) *Service {
	return &Service{
		repo:            cr,
		users:           us,
		quotes:          qs,
		requestExpiry:   requestExpiry,
		splitSettlement: splitSettlement,
	}
}

// Propose creates a pending collaboration request from requester to collaborator.
func (s *Service) Propose(ctx context.Context, requester string, arg domain.CreateCollabRequestParams) (domain.CollabRequest, error) {
	l := zerolog.Ctx(ctx)

	var request domain.CollabRequest

	arg.Requester = requester

	if arg.Requester == arg.Collaborator {
		return request, domain.ErrSelfCollaboration
	}

	registered, err := s.users.IsRegistered(ctx, arg.Collaborator)
	if err != nil {
		return request, err
	}

	requesterContribution, err := decimal.NewFromString(arg.RequesterContribution)
	if err != nil {
		l.Info().Err(err).Send()
		return request, domain.ErrInvalidContribution
	}

	collaboratorContribution, err := decimal.NewFromString(arg.CollaboratorContribution)
	if err != nil {
		l.Info().Err(err).Send()
		return request, domain.ErrInvalidContribution
	}

	if !requesterContribution.IsPositive() || collaboratorContribution.IsNegative() {
		return request, domain.ErrInvalidContribution
	}

	total := requesterContribution.Add(collaboratorContribution)

	arg.Symbol = assetpkg.NormalizeSymbol(arg.AssetClass, arg.Symbol)
	arg.TotalAmount = total.String()
	arg.RequesterContribution = requesterContribution.String()
	arg.CollaboratorContribution = collaboratorContribution.String()

	created, err := s.repo.Create(ctx, arg)
	if err != nil {
		return request, err
	}

	// An invite to a not yet registered username stays Pending; the
	// presentation layer warns on the flag.
	created.UnverifiedCollaborator = !registered

	return created, nil
}

// List returns all requests the user participates in, as requester or
// collaborator, with the expiry flag set on overdue pending requests.
func (s *Service) List(ctx context.Context, username string) ([]domain.CollabRequest, error) {
	requests, err := s.repo.ListByParticipant(ctx, username)
	if err != nil {
		return nil, err
	}

	for i := range requests {
		requests[i].Expired = s.expired(requests[i])
	}

	return requests, nil
}

// Accept settles a pending request: the status moves to Accepted and the
// position is booked at the latest reference price. Only the invited
// collaborator may accept.
func (s *Service) Accept(ctx context.Context, actor string, id int64) (domain.SettlementResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.SettlementResult

	request, err := s.repo.Get(ctx, id)
	if err != nil {
		return result, err
	}

	if request.Collaborator != actor {
		return result, domain.ErrNotCollaborator
	}

	if request.Status != domain.CollabStatusPending {
		return result, domain.ErrInvalidTransition
	}

	if s.expired(request) {
		return result, domain.ErrRequestExpired
	}

	total, err := decimal.NewFromString(request.TotalAmount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	if total.IsZero() {
		return result, domain.ErrZeroContribution
	}

	quote, err := s.quotes.LatestPrice(ctx, request.AssetClass, request.Symbol)
	if err != nil {
		l.Info().Err(err).Send()
		return result, err
	}

	price, err := decimal.NewFromString(quote.Price)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		l.Error().Err(err).Str("price", quote.Price).Send()
		return result, domain.ErrQuoteUnavailable
	}

	credits, requesterShare, collaboratorShare, err := s.credits(request, total, price)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	settled, holdings, err := s.repo.Settle(ctx, domain.SettleTxParams{
		RequestID: request.ID,
		Credits:   credits,
	})
	if err != nil {
		return result, err
	}

	return domain.SettlementResult{
		Request:           settled,
		Holdings:          holdings,
		RequesterShare:    requesterShare.String(),
		CollaboratorShare: collaboratorShare.String(),
		ReferencePrice:    price.String(),
	}, nil
}

// Reject moves a pending request to Rejected. Only the invited
// collaborator may reject. No balances or holdings change.
func (s *Service) Reject(ctx context.Context, actor string, id int64) (domain.CollabRequest, error) {
	request, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.CollabRequest{}, err
	}

	if request.Collaborator != actor {
		return domain.CollabRequest{}, domain.ErrNotCollaborator
	}

	return s.repo.UpdateStatus(ctx, id, domain.CollabStatusRejected)
}

// credits computes the holding credits and per party quantity shares
// for the settlement. With split settlement each party is credited in
// proportion to their contribution; otherwise only the collaborator is
// credited, sized at their own contribution.
func (s *Service) credits(request domain.CollabRequest, total, price decimal.Decimal) ([]domain.HoldingCredit, decimal.Decimal, decimal.Decimal, error) {
	requesterContribution, err := decimal.NewFromString(request.RequesterContribution)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}

	collaboratorContribution, err := decimal.NewFromString(request.CollaboratorContribution)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}

	if !s.splitSettlement {
		collaboratorQuantity := collaboratorContribution.Div(price)

		var credits []domain.HoldingCredit

		if !collaboratorContribution.IsZero() {
			credits = append(credits, domain.HoldingCredit{
				Username:  request.Collaborator,
				Quantity:  collaboratorQuantity.String(),
				CostBasis: collaboratorContribution.String(),
			})
		}

		return credits, decimal.Zero, collaboratorQuantity, nil
	}

	totalQuantity := total.Div(price)
	requesterQuantity := requesterContribution.Div(price)
	collaboratorQuantity := totalQuantity.Sub(requesterQuantity)

	var credits []domain.HoldingCredit

	if !requesterContribution.IsZero() {
		credits = append(credits, domain.HoldingCredit{
			Username:  request.Requester,
			Quantity:  requesterQuantity.String(),
			CostBasis: requesterContribution.String(),
		})
	}

	if !collaboratorContribution.IsZero() {
		credits = append(credits, domain.HoldingCredit{
			Username:  request.Collaborator,
			Quantity:  collaboratorQuantity.String(),
			CostBasis: collaboratorContribution.String(),
		})
	}

	return credits, requesterQuantity, collaboratorQuantity, nil
}

func (s *Service) expired(request domain.CollabRequest) bool {
	if s.requestExpiry <= 0 || request.Status != domain.CollabStatusPending {
		return false
	}

	return time.Now().After(request.CreatedAt.Add(s.requestExpiry))
}
