// Package watchlistrepo manages repository layer of watchlists.
package watchlistrepo

import (
	"context"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/dbpkg"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates watchlist repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns watchlist RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    watchlists (username, asset_class, symbol)
VALUES
    ($1, $2, $3)
RETURNING id, username, asset_class, symbol, created_at
`

// Create adds the symbol to the user's watchlist.
func (r *RepoPGS) Create(ctx context.Context, username, assetClass, symbol string) (domain.WatchlistItem, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, username, assetClass, symbol)

	var w domain.WatchlistItem

	err := row.Scan(
		&w.ID,
		&w.Username,
		&w.AssetClass,
		&w.Symbol,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "watchlists_username_asset_class_symbol_key":
				return w, domain.ErrWatchlistDuplicate
			case "watchlists_username_fkey":
				return w, domain.ErrUserNotFound
			}
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const listQuery = `
SELECT
	id, username, asset_class, symbol, created_at
FROM watchlists
WHERE username = $1 AND ($2 = '' OR asset_class = $2)
ORDER BY id
`

// List returns the user's watchlist, optionally filtered by asset class.
func (r *RepoPGS) List(ctx context.Context, username, assetClass string) ([]domain.WatchlistItem, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, username, assetClass)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.WatchlistItem{}

	for rows.Next() {
		var w domain.WatchlistItem
		if err := rows.Scan(&w.ID, &w.Username, &w.AssetClass, &w.Symbol, &w.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, w)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM watchlists
WHERE username = $1 AND asset_class = $2 AND symbol = $3
`

// Delete removes the symbol from the user's watchlist.
func (r *RepoPGS) Delete(ctx context.Context, username, assetClass, symbol string) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, username, assetClass, symbol)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return domain.ErrWatchlistItemNotFound
	}

	return nil
}
