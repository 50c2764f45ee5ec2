// Package quoteclient fetches market data from the Tiingo and CoinCap APIs.
package quoteclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/assetpkg"
	"github.com/go-petr/paper-trade/pkg/configpkg"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client resolves quotes against the provider matching the asset class:
// Tiingo for equities, CoinCap for cryptocurrencies. One rate limiter
// covers all outbound calls.
type Client struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	tiingoBaseURL  string
	tiingoToken    string
	coincapBaseURL string
}

// New returns a quote client configured from the application config.
func New(config configpkg.Config) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: config.QuoteTimeout},
		limiter:        rate.NewLimiter(rate.Limit(config.QuoteRateLimit), 1),
		tiingoBaseURL:  config.TiingoBaseURL,
		tiingoToken:    config.TiingoToken,
		coincapBaseURL: config.CoinCapBaseURL,
	}
}

// LatestPrice returns the latest known price of the asset.
func (c *Client) LatestPrice(ctx context.Context, assetClass, symbol string) (domain.PriceQuote, error) {
	symbol = assetpkg.NormalizeSymbol(assetClass, symbol)

	switch assetClass {
	case assetpkg.Crypto:
		return c.coincapLatest(ctx, symbol)
	default:
		return c.tiingoLatest(ctx, symbol)
	}
}

// History returns daily candles for the asset over [from, to].
func (c *Client) History(ctx context.Context, assetClass, symbol string, from, to time.Time) ([]domain.Candle, error) {
	symbol = assetpkg.NormalizeSymbol(assetClass, symbol)

	switch assetClass {
	case assetpkg.Crypto:
		return c.coincapHistory(ctx, symbol, from, to)
	default:
		return c.tiingoHistory(ctx, symbol, from, to)
	}
}

// Search returns asset suggestions matching the query.
func (c *Client) Search(ctx context.Context, assetClass, query string) ([]domain.AssetMatch, error) {
	switch assetClass {
	case assetpkg.Crypto:
		return c.coincapSearch(ctx, query)
	default:
		return c.tiingoSearch(ctx, query)
	}
}

func (c *Client) tiingoLatest(ctx context.Context, symbol string) (domain.PriceQuote, error) {
	var quote domain.PriceQuote

	addr := fmt.Sprintf("%s/iex?tickers=%s&token=%s",
		c.tiingoBaseURL, url.QueryEscape(symbol), c.tiingoToken)

	var payload []struct {
		Last      json.Number `json:"last"`
		PrevClose json.Number `json:"prevClose"`
		Timestamp time.Time   `json:"timestamp"`
	}

	if err := c.getJSON(ctx, addr, nil, &payload); err != nil {
		return quote, err
	}

	if len(payload) == 0 {
		return quote, domain.ErrQuoteUnavailable
	}

	price := payload[0].Last
	if price.String() == "" || price.String() == "0" {
		price = payload[0].PrevClose
	}

	if price.String() == "" {
		return quote, domain.ErrQuoteUnavailable
	}

	return domain.PriceQuote{
		AssetClass: assetpkg.Equity,
		Symbol:     symbol,
		Price:      price.String(),
		AsOf:       payload[0].Timestamp,
	}, nil
}

func (c *Client) tiingoHistory(ctx context.Context, symbol string, from, to time.Time) ([]domain.Candle, error) {
	addr := fmt.Sprintf("%s/tiingo/daily/%s/prices?startDate=%s&endDate=%s",
		c.tiingoBaseURL, url.PathEscape(symbol),
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	headers := map[string]string{"Authorization": "Token " + c.tiingoToken}

	var payload []struct {
		Date   time.Time   `json:"date"`
		Open   json.Number `json:"open"`
		High   json.Number `json:"high"`
		Low    json.Number `json:"low"`
		Close  json.Number `json:"close"`
		Volume json.Number `json:"volume"`
	}

	if err := c.getJSON(ctx, addr, headers, &payload); err != nil {
		return nil, err
	}

	candles := make([]domain.Candle, 0, len(payload))
	for _, p := range payload {
		candles = append(candles, domain.Candle{
			Date:   p.Date,
			Open:   p.Open.String(),
			High:   p.High.String(),
			Low:    p.Low.String(),
			Close:  p.Close.String(),
			Volume: p.Volume.String(),
		})
	}

	return candles, nil
}

func (c *Client) tiingoSearch(ctx context.Context, query string) ([]domain.AssetMatch, error) {
	addr := fmt.Sprintf("%s/tiingo/utilities/search?query=%s&token=%s",
		c.tiingoBaseURL, url.QueryEscape(query), c.tiingoToken)

	var payload []struct {
		Ticker string `json:"ticker"`
		Name   string `json:"name"`
	}

	if err := c.getJSON(ctx, addr, nil, &payload); err != nil {
		return nil, err
	}

	matches := make([]domain.AssetMatch, 0, len(payload))
	for _, p := range payload {
		matches = append(matches, domain.AssetMatch{Symbol: p.Ticker, Name: p.Name})
	}

	return matches, nil
}

func (c *Client) coincapLatest(ctx context.Context, id string) (domain.PriceQuote, error) {
	var quote domain.PriceQuote

	addr := fmt.Sprintf("%s/assets/%s", c.coincapBaseURL, url.PathEscape(id))

	var payload struct {
		Data struct {
			PriceUSD string `json:"priceUsd"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, addr, nil, &payload); err != nil {
		return quote, err
	}

	if payload.Data.PriceUSD == "" {
		return quote, domain.ErrQuoteUnavailable
	}

	return domain.PriceQuote{
		AssetClass: assetpkg.Crypto,
		Symbol:     id,
		Price:      payload.Data.PriceUSD,
		AsOf:       time.Now(),
	}, nil
}

func (c *Client) coincapHistory(ctx context.Context, id string, from, to time.Time) ([]domain.Candle, error) {
	addr := fmt.Sprintf("%s/assets/%s/history?interval=d1&start=%d&end=%d",
		c.coincapBaseURL, url.PathEscape(id),
		from.UnixMilli(), to.UnixMilli())

	var payload struct {
		Data []struct {
			PriceUSD string `json:"priceUsd"`
			Time     int64  `json:"time"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, addr, nil, &payload); err != nil {
		return nil, err
	}

	candles := make([]domain.Candle, 0, len(payload.Data))
	for _, p := range payload.Data {
		candles = append(candles, domain.Candle{
			Date:  time.UnixMilli(p.Time).UTC(),
			Close: p.PriceUSD,
		})
	}

	return candles, nil
}

func (c *Client) coincapSearch(ctx context.Context, query string) ([]domain.AssetMatch, error) {
	addr := fmt.Sprintf("%s/assets?search=%s", c.coincapBaseURL, url.QueryEscape(query))

	var payload struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, addr, nil, &payload); err != nil {
		return nil, err
	}

	matches := make([]domain.AssetMatch, 0, len(payload.Data))
	for _, p := range payload.Data {
		matches = append(matches, domain.AssetMatch{Symbol: p.ID, Name: p.Name})
	}

	return matches, nil
}

// getJSON performs a rate limited GET and decodes the JSON response.
// Transport failures and non 200 statuses map to ErrQuoteUnavailable.
func (c *Client) getJSON(ctx context.Context, addr string, headers map[string]string, out any) error {
	l := zerolog.Ctx(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		l.Info().Err(err).Send()
		return domain.ErrQuoteUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.ErrQuoteUnavailable
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Info().Err(err).Str("url", req.URL.Host+req.URL.Path).Send()
		return domain.ErrQuoteUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.Info().Str("status", strconv.Itoa(resp.StatusCode)).Str("url", req.URL.Host+req.URL.Path).Send()
		return domain.ErrQuoteUnavailable
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	if err := dec.Decode(out); err != nil {
		l.Error().Err(err).Send()
		return domain.ErrQuoteUnavailable
	}

	return nil
}
