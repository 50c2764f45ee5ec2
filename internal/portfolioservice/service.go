// Package portfolioservice manages business logic layer of trades and positions.
package portfolioservice

import (
	"context"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/assetpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by portfolio service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package portfolioservice
type Repo interface {
	Buy(ctx context.Context, arg domain.BuyTxParams) (domain.TradeTxResult, error)
	Sell(ctx context.Context, arg domain.SellTxParams) (domain.SaleResult, error)
}

// Holdings provides holdings read access needed by portfolio service layer.
type Holdings interface {
	ListActive(ctx context.Context, username string) ([]domain.Holding, error)
}

// Accounts provides cash account read access needed by portfolio service layer.
type Accounts interface {
	Get(ctx context.Context, username string) (domain.Account, error)
}

// Quotes provides reference prices for trade execution and valuation.
type Quotes interface {
	LatestPrice(ctx context.Context, assetClass, symbol string) (domain.PriceQuote, error)
}

// Service facilitates portfolio service layer logic.
type Service struct {
	repo     Repo
	holdings Holdings
	accounts Accounts
	quotes   Quotes
}

// New returns portfolio service struct to manage trade bussines logic.
func New(pr Repo, hr Holdings, as Accounts, qs Quotes) *Service {
	return &Service{
		repo:     pr,
		holdings: hr,
		accounts: as,
		quotes:   qs,
	}
}

// Buy debits amount from the user's cash account and credits
// amount/price units of the asset at the latest reference price.
func (s *Service) Buy(ctx context.Context, username, assetClass, symbol, amount string) (domain.TradeTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TradeTxResult

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return result, domain.ErrNegativeAmount
	}

	symbol = assetpkg.NormalizeSymbol(assetClass, symbol)

	quote, err := s.quotes.LatestPrice(ctx, assetClass, symbol)
	if err != nil {
		l.Info().Err(err).Send()
		return result, err
	}

	price, err := decimal.NewFromString(quote.Price)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		l.Error().Err(err).Str("price", quote.Price).Send()
		return result, domain.ErrQuoteUnavailable
	}

	account, err := s.accounts.Get(ctx, username)
	if err != nil {
		return result, err
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	if balance.LessThan(amountDecimal) {
		return result, domain.ErrInsufficientBalance
	}

	quantity := amountDecimal.Div(price)

	return s.repo.Buy(ctx, domain.BuyTxParams{
		Username:   username,
		AssetClass: assetClass,
		Symbol:     symbol,
		Amount:     amountDecimal.String(),
		Quantity:   quantity.String(),
	})
}

// Sell debits quantity units of the asset and credits the proceeds
// at the latest reference price to the user's cash account.
func (s *Service) Sell(ctx context.Context, username, assetClass, symbol, quantity string) (domain.SaleResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.SaleResult

	quantityDecimal, err := decimal.NewFromString(quantity)
	if err != nil {
		l.Info().Err(err).Send()
		return result, domain.ErrInvalidQuantity
	}

	if quantityDecimal.LessThanOrEqual(decimal.Zero) {
		return result, domain.ErrInvalidQuantity
	}

	symbol = assetpkg.NormalizeSymbol(assetClass, symbol)

	quote, err := s.quotes.LatestPrice(ctx, assetClass, symbol)
	if err != nil {
		l.Info().Err(err).Send()
		return result, err
	}

	price, err := decimal.NewFromString(quote.Price)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		l.Error().Err(err).Str("price", quote.Price).Send()
		return result, domain.ErrQuoteUnavailable
	}

	return s.repo.Sell(ctx, domain.SellTxParams{
		Username:   username,
		AssetClass: assetClass,
		Symbol:     symbol,
		Quantity:   quantityDecimal.String(),
		Price:      price.String(),
	})
}

// Portfolio returns the user's cash account and active positions
// decorated with their latest market valuation. Valuation fields are
// left empty for assets whose quote cannot be fetched.
func (s *Service) Portfolio(ctx context.Context, username string) (domain.Account, []domain.Position, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.Get(ctx, username)
	if err != nil {
		return domain.Account{}, nil, err
	}

	holdings, err := s.holdings.ListActive(ctx, username)
	if err != nil {
		return domain.Account{}, nil, err
	}

	positions := make([]domain.Position, 0, len(holdings))

	for _, h := range holdings {
		p := domain.Position{Holding: h}

		quote, err := s.quotes.LatestPrice(ctx, h.AssetClass, h.Symbol)
		if err != nil {
			l.Info().Err(err).Str("symbol", h.Symbol).Send()
			positions = append(positions, p)

			continue
		}

		price, err := decimal.NewFromString(quote.Price)
		if err != nil {
			l.Error().Err(err).Str("price", quote.Price).Send()
			positions = append(positions, p)

			continue
		}

		quantityDecimal, err := decimal.NewFromString(h.Quantity)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.Account{}, nil, err
		}

		costBasis, err := decimal.NewFromString(h.CostBasis)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.Account{}, nil, err
		}

		value := quantityDecimal.Mul(price)

		p.CurrentPrice = price.String()
		p.CurrentValue = value.String()
		p.UnrealizedPnL = value.Sub(costBasis).String()

		positions = append(positions, p)
	}

	return account, positions, nil
}
