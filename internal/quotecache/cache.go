// Package quotecache adds a Redis cache in front of a quote source.
package quotecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Source is the upstream quote provider the cache falls back to.
type Source interface {
	LatestPrice(ctx context.Context, assetClass, symbol string) (domain.PriceQuote, error)
	History(ctx context.Context, assetClass, symbol string, from, to time.Time) ([]domain.Candle, error)
	Search(ctx context.Context, assetClass, query string) ([]domain.AssetMatch, error)
}

// Cache serves latest prices from Redis with a fixed TTL, falling back
// to the upstream source on miss. A Redis outage degrades to direct
// upstream calls, never to an error.
type Cache struct {
	source Source
	client *redis.Client
	ttl    time.Duration
}

// New returns a quote cache backed by the given Redis client.
func New(source Source, client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		source: source,
		client: client,
		ttl:    ttl,
	}
}

// LatestPrice returns the cached price when fresh, otherwise fetches it
// from the upstream source and stores the result.
func (c *Cache) LatestPrice(ctx context.Context, assetClass, symbol string) (domain.PriceQuote, error) {
	l := zerolog.Ctx(ctx)

	key := fmt.Sprintf("quote:%s:%s", assetClass, symbol)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var quote domain.PriceQuote
		if err = json.Unmarshal([]byte(cached), &quote); err == nil {
			return quote, nil
		}

		l.Error().Err(err).Str("key", key).Send()
	} else if !errors.Is(err, redis.Nil) {
		l.Info().Err(err).Str("key", key).Send()
	}

	quote, err := c.source.LatestPrice(ctx, assetClass, symbol)
	if err != nil {
		return quote, err
	}

	encoded, err := json.Marshal(quote)
	if err != nil {
		l.Error().Err(err).Send()
		return quote, nil
	}

	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		l.Info().Err(err).Str("key", key).Send()
	}

	return quote, nil
}

// History passes through to the upstream source.
func (c *Cache) History(ctx context.Context, assetClass, symbol string, from, to time.Time) ([]domain.Candle, error) {
	return c.source.History(ctx, assetClass, symbol, from, to)
}

// Search passes through to the upstream source.
func (c *Cache) Search(ctx context.Context, assetClass, query string) ([]domain.AssetMatch, error) {
	return c.source.Search(ctx, assetClass, query)
}
