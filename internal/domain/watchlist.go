package domain

import (
	"errors"
	"time"
)

var (
	// ErrWatchlistDuplicate indicates that the symbol is already on the watchlist.
	ErrWatchlistDuplicate = errors.New("symbol already on watchlist")
	// ErrWatchlistItemNotFound indicates that the symbol is not on the watchlist.
	ErrWatchlistItemNotFound = errors.New("symbol not on watchlist")
)

// WatchlistItem is one watched asset of a user.
type WatchlistItem struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	AssetClass string    `json:"asset_class"`
	Symbol     string    `json:"symbol"`
	CreatedAt  time.Time `json:"created_at"`
	// LatestPrice is filled in by the service when a quote is available.
	LatestPrice string `json:"latest_price,omitempty"`
}
