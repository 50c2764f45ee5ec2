// Package holdingrepo manages repository layer of asset holdings.
package holdingrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/dbpkg"
	"github.com/go-petr/paper-trade/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates holding repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns holding RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const upsertQuery = `
INSERT INTO
    holdings (username, asset_class, symbol, quantity, cost_basis)
VALUES
    ($1, $2, $3, $4, $5)
ON CONFLICT (username, asset_class, symbol) DO UPDATE
SET quantity = holdings.quantity + $4,
    cost_basis = holdings.cost_basis + $5
RETURNING id, username, asset_class, symbol, quantity, cost_basis, created_at
`

// Upsert applies signed quantity and cost basis deltas, creating the
// holding on first buy. A delta that would drive quantity or cost basis
// below zero fails the table check and maps to ErrInsufficientQuantity.
func (r *RepoPGS) Upsert(ctx context.Context, arg domain.UpsertHoldingParams) (domain.Holding, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, upsertQuery,
		arg.Username,
		arg.AssetClass,
		arg.Symbol,
		arg.QuantityDelta,
		arg.CostDelta,
	)

	var h domain.Holding

	err := row.Scan(
		&h.ID,
		&h.Username,
		&h.AssetClass,
		&h.Symbol,
		&h.Quantity,
		&h.CostBasis,
		&h.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "holdings_quantity_check", "holdings_cost_basis_check":
				return h, domain.ErrInsufficientQuantity
			case "holdings_username_fkey":
				return h, domain.ErrOwnerNotFound
			}
		}

		return h, errorspkg.ErrInternal
	}

	return h, nil
}

const getQuery = `
SELECT
	id, username, asset_class, symbol, quantity, cost_basis, created_at
FROM holdings
WHERE username = $1 AND asset_class = $2 AND symbol = $3
`

// Get returns the user's holding in the given asset.
func (r *RepoPGS) Get(ctx context.Context, username, assetClass, symbol string) (domain.Holding, error) {
	return r.get(ctx, getQuery, username, assetClass, symbol)
}

const getForUpdateQuery = `
SELECT
	id, username, asset_class, symbol, quantity, cost_basis, created_at
FROM holdings
WHERE username = $1 AND asset_class = $2 AND symbol = $3
FOR UPDATE
`

// GetForUpdate locks the holding row for the duration of the enclosing
// transaction so that sale validation never runs against a stale quantity.
func (r *RepoPGS) GetForUpdate(ctx context.Context, username, assetClass, symbol string) (domain.Holding, error) {
	return r.get(ctx, getForUpdateQuery, username, assetClass, symbol)
}

func (r *RepoPGS) get(ctx context.Context, query, username, assetClass, symbol string) (domain.Holding, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, username, assetClass, symbol)

	var h domain.Holding

	err := row.Scan(
		&h.ID,
		&h.Username,
		&h.AssetClass,
		&h.Symbol,
		&h.Quantity,
		&h.CostBasis,
		&h.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return h, domain.ErrHoldingNotFound
		}

		l.Error().Err(err).Send()

		return h, errorspkg.ErrInternal
	}

	return h, nil
}

const listActiveQuery = `
SELECT
	id, username, asset_class, symbol, quantity, cost_basis, created_at
FROM holdings
WHERE username = $1 AND quantity > 0
ORDER BY id
`

// ListActive returns the user's holdings with a positive quantity.
// Sold-out holdings stay on record but are excluded here.
func (r *RepoPGS) ListActive(ctx context.Context, username string) ([]domain.Holding, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listActiveQuery, username)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Holding{}

	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(
			&h.ID,
			&h.Username,
			&h.AssetClass,
			&h.Symbol,
			&h.Quantity,
			&h.CostBasis,
			&h.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, h)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
