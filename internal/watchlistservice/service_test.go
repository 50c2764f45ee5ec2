package watchlistservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/assetpkg"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
)

const username = "alice"

func TestAdd(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	quotes := NewMockQuotes(ctrl)
	service := New(repo, quotes)

	want := domain.WatchlistItem{
		ID:         1,
		Username:   username,
		AssetClass: assetpkg.Equity,
		Symbol:     "AAPL",
	}

	// The symbol is folded to its canonical form before hitting the repo.
	repo.EXPECT().
		Create(gomock.Any(), username, assetpkg.Equity, "AAPL").
		Times(1).
		Return(want, nil)

	got, err := service.Add(context.Background(), username, assetpkg.Equity, "aapl")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestAddDuplicate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	quotes := NewMockQuotes(ctrl)
	service := New(repo, quotes)

	repo.EXPECT().
		Create(gomock.Any(), username, assetpkg.Equity, "AAPL").
		Times(1).
		Return(domain.WatchlistItem{}, domain.ErrWatchlistDuplicate)

	_, err := service.Add(context.Background(), username, assetpkg.Equity, "AAPL")
	require.EqualError(t, err, domain.ErrWatchlistDuplicate.Error())
}

func TestList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	quotes := NewMockQuotes(ctrl)
	service := New(repo, quotes)

	items := []domain.WatchlistItem{
		{ID: 1, Username: username, AssetClass: assetpkg.Equity, Symbol: "AAPL"},
		{ID: 2, Username: username, AssetClass: assetpkg.Crypto, Symbol: "bitcoin"},
	}

	repo.EXPECT().
		List(gomock.Any(), username, "").
		Times(1).
		Return(items, nil)

	quotes.EXPECT().
		LatestPrice(gomock.Any(), assetpkg.Equity, "AAPL").
		Times(1).
		Return(domain.PriceQuote{Price: "220"}, nil)

	// A failed quote leaves the price empty instead of failing the list.
	quotes.EXPECT().
		LatestPrice(gomock.Any(), assetpkg.Crypto, "bitcoin").
		Times(1).
		Return(domain.PriceQuote{}, domain.ErrQuoteUnavailable)

	got, err := service.List(context.Background(), username, "")
	require.NoError(t, err)

	want := []domain.WatchlistItem{
		{ID: 1, Username: username, AssetClass: assetpkg.Equity, Symbol: "AAPL", LatestPrice: "220"},
		{ID: 2, Username: username, AssetClass: assetpkg.Crypto, Symbol: "bitcoin"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestListRepoError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	quotes := NewMockQuotes(ctrl)
	service := New(repo, quotes)

	repo.EXPECT().
		List(gomock.Any(), username, "").
		Times(1).
		Return(nil, errorspkg.ErrInternal)

	_, err := service.List(context.Background(), username, "")
	require.EqualError(t, err, errorspkg.ErrInternal.Error())
}

func TestRemove(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	quotes := NewMockQuotes(ctrl)
	service := New(repo, quotes)

	repo.EXPECT().
		Delete(gomock.Any(), username, assetpkg.Crypto, "bitcoin").
		Times(1).
		Return(nil)

	err := service.Remove(context.Background(), username, assetpkg.Crypto, "Bitcoin")
	require.NoError(t, err)
}

func TestRemoveNotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	quotes := NewMockQuotes(ctrl)
	service := New(repo, quotes)

	repo.EXPECT().
		Delete(gomock.Any(), username, assetpkg.Equity, "AAPL").
		Times(1).
		Return(domain.ErrWatchlistItemNotFound)

	err := service.Remove(context.Background(), username, assetpkg.Equity, "AAPL")
	require.EqualError(t, err, domain.ErrWatchlistItemNotFound.Error())
}
