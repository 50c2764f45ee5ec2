// Package watchlistservice manages business logic layer of watchlists.
package watchlistservice

import (
	"context"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/assetpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by watchlist service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package watchlistservice
type Repo interface {
	Create(ctx context.Context, username, assetClass, symbol string) (domain.WatchlistItem, error)
	List(ctx context.Context, username, assetClass string) ([]domain.WatchlistItem, error)
	Delete(ctx context.Context, username, assetClass, symbol string) error
}

// Quotes provides the latest prices shown next to watched assets.
type Quotes interface {
	LatestPrice(ctx context.Context, assetClass, symbol string) (domain.PriceQuote, error)
}

// Service facilitates watchlist service layer logic.
type Service struct {
	repo   Repo
	quotes Quotes
}

// New returns watchlist service struct to manage watchlist bussines logic.
func New(wr Repo, qs Quotes) *Service {
	return &Service{
		repo:   wr,
		quotes: qs,
	}
}

// Add puts the asset on the user's watchlist.
func (s *Service) Add(ctx context.Context, username, assetClass, symbol string) (domain.WatchlistItem, error) {
	symbol = assetpkg.NormalizeSymbol(assetClass, symbol)

	return s.repo.Create(ctx, username, assetClass, symbol)
}

// List returns the user's watched assets, optionally filtered by asset
// class, decorated with their latest prices. The price field is left
// empty for assets whose quote cannot be fetched.
func (s *Service) List(ctx context.Context, username, assetClass string) ([]domain.WatchlistItem, error) {
	l := zerolog.Ctx(ctx)

	items, err := s.repo.List(ctx, username, assetClass)
	if err != nil {
		return nil, err
	}

	for i := range items {
		quote, err := s.quotes.LatestPrice(ctx, items[i].AssetClass, items[i].Symbol)
		if err != nil {
			l.Info().Err(err).Str("symbol", items[i].Symbol).Send()
			continue
		}

		items[i].LatestPrice = quote.Price
	}

	return items, nil
}

// Remove takes the asset off the user's watchlist.
func (s *Service) Remove(ctx context.Context, username, assetClass, symbol string) error {
	symbol = assetpkg.NormalizeSymbol(assetClass, symbol)

	return s.repo.Delete(ctx, username, assetClass, symbol)
}
