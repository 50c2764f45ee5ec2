package domain

import (
	"errors"
	"time"
)

// ErrQuoteUnavailable indicates that no usable reference price could be fetched.
var ErrQuoteUnavailable = errors.New("quote unavailable")

// PriceQuote is the latest known price of an asset.
type PriceQuote struct {
	AssetClass string    `json:"asset_class"`
	Symbol     string    `json:"symbol"`
	Price      string    `json:"price"`
	AsOf       time.Time `json:"as_of"`
}

// Candle is one day of price history.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   string    `json:"open,omitempty"`
	High   string    `json:"high,omitempty"`
	Low    string    `json:"low,omitempty"`
	Close  string    `json:"close"`
	Volume string    `json:"volume,omitempty"`
}

// AssetMatch is one search suggestion returned by a quote provider.
type AssetMatch struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
