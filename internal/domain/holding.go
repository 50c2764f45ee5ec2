package domain

import (
	"errors"
	"time"
)

var (
	// ErrHoldingNotFound indicates that the user holds no position in the asset.
	ErrHoldingNotFound = errors.New("holding not found")
	// ErrInsufficientQuantity indicates that the held quantity is too low for the sale.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	// ErrInvalidQuantity indicates invalid quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Holding is a user's position in one asset.
//
// Quantity never goes below zero. A holding that was sold down to zero
// is kept on record but excluded from active listings.
type Holding struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	AssetClass string    `json:"asset_class"`
	Symbol     string    `json:"symbol"`
	Quantity   string    `json:"quantity"`
	CostBasis  string    `json:"cost_basis"`
	CreatedAt  time.Time `json:"created_at"`
}

// UpsertHoldingParams applies signed quantity and cost basis deltas
// to the (username, asset_class, symbol) holding, creating it on first buy.
type UpsertHoldingParams struct {
	Username      string `json:"username"`
	AssetClass    string `json:"asset_class"`
	Symbol        string `json:"symbol"`
	QuantityDelta string `json:"quantity_delta"`
	CostDelta     string `json:"cost_delta"`
}

// Position is a holding decorated with its latest market valuation.
// CurrentPrice is empty when the quote provider is unavailable.
type Position struct {
	Holding
	CurrentPrice  string `json:"current_price,omitempty"`
	CurrentValue  string `json:"current_value,omitempty"`
	UnrealizedPnL string `json:"unrealized_pnl,omitempty"`
}
