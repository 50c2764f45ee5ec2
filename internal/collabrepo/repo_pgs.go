// Package collabrepo manages repository layer of collaboration requests.
package collabrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/internal/holdingrepo"
	"github.com/go-petr/paper-trade/pkg/dbpkg"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates collaboration request repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns collaboration RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    collab_requests (requester, collaborator, asset_class, symbol, total_amount, requester_contribution, collaborator_contribution, status)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, requester, collaborator, asset_class, symbol, total_amount, requester_contribution, collaborator_contribution, status, created_at
`

// Create appends the collaboration request in Pending status and returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateCollabRequestParams) (domain.CollabRequest, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Requester,
		arg.Collaborator,
		arg.AssetClass,
		arg.Symbol,
		arg.TotalAmount,
		arg.RequesterContribution,
		arg.CollaboratorContribution,
		domain.CollabStatusPending,
	)

	req, err := scanRequest(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "collab_requests_requester_fkey":
				return req, domain.ErrUserNotFound
			case "collab_requests_total_amount_check", "collab_requests_requester_contribution_check":
				return req, domain.ErrInvalidContribution
			}
		}

		return req, errorspkg.ErrInternal
	}

	return req, nil
}

const getQuery = `
SELECT
	id, requester, collaborator, asset_class, symbol, total_amount, requester_contribution, collaborator_contribution, status, created_at
FROM collab_requests
WHERE id = $1
`

// Get returns the collaboration request with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.CollabRequest, error) {
	return r.getWith(ctx, r.db, getQuery, id)
}

const getForUpdateQuery = `
SELECT
	id, requester, collaborator, asset_class, symbol, total_amount, requester_contribution, collaborator_contribution, status, created_at
FROM collab_requests
WHERE id = $1
FOR UPDATE
`

func (r *RepoPGS) getWith(ctx context.Context, db dbpkg.SQLInterface, query string, id int64) (domain.CollabRequest, error) {
	l := zerolog.Ctx(ctx)

	req, err := scanRequest(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return req, domain.ErrCollabRequestNotFound
		}

		l.Error().Err(err).Send()

		return req, errorspkg.ErrInternal
	}

	return req, nil
}

const listByParticipantQuery = `
SELECT
	id, requester, collaborator, asset_class, symbol, total_amount, requester_contribution, collaborator_contribution, status, created_at
FROM collab_requests
WHERE requester = $1 OR collaborator = $1
ORDER BY id
`

// ListByParticipant returns requests where the user is either side,
// in insertion order.
func (r *RepoPGS) ListByParticipant(ctx context.Context, username string) ([]domain.CollabRequest, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByParticipantQuery, username)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.CollabRequest{}

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, req)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateStatusQuery = `
UPDATE collab_requests
SET status = $2
WHERE id = $1 AND status = $3
RETURNING id, requester, collaborator, asset_class, symbol, total_amount, requester_contribution, collaborator_contribution, status, created_at
`

// UpdateStatus transitions the request out of Pending. A request that is
// already terminal fails with ErrInvalidTransition and stays unchanged.
func (r *RepoPGS) UpdateStatus(ctx context.Context, id int64, newStatus string) (domain.CollabRequest, error) {
	return r.updateStatusWith(ctx, r.db, id, newStatus)
}

func (r *RepoPGS) updateStatusWith(ctx context.Context, db dbpkg.SQLInterface, id int64, newStatus string) (domain.CollabRequest, error) {
	l := zerolog.Ctx(ctx)

	row := db.QueryRowContext(ctx, updateStatusQuery, id, newStatus, domain.CollabStatusPending)

	req, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			// Distinguish a missing request from a terminal one.
			if _, getErr := r.getWith(ctx, db, getQuery, id); getErr != nil {
				return req, getErr
			}

			return req, domain.ErrInvalidTransition
		}

		l.Error().Err(err).Send()

		return req, errorspkg.ErrInternal
	}

	return req, nil
}

// Settle accepts the request and books the holding credits within a
// single transaction: the status transition and every holding upsert
// commit together or not at all. A request that already left Pending
// fails with ErrInvalidTransition before any credit is booked, which
// makes retried accepts harmless.
func (r *RepoPGS) Settle(ctx context.Context, arg domain.SettleTxParams) (domain.CollabRequest, []domain.Holding, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.CollabRequest{}, nil, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	// Lock the request row first, then accounts in credit order
	// (collaborator before requester) to keep lock acquisition
	// deterministic across concurrent accepts and sells.
	req, err := r.getWith(ctx, tx, getForUpdateQuery, arg.RequestID)
	if err != nil {
		return req, nil, err
	}

	if req.Status != domain.CollabStatusPending {
		return req, nil, domain.ErrInvalidTransition
	}

	req, err = r.updateStatusWith(ctx, tx, arg.RequestID, domain.CollabStatusAccepted)
	if err != nil {
		return req, nil, err
	}

	holdingRepo := holdingrepo.NewRepoPGS(tx)

	holdings := make([]domain.Holding, 0, len(arg.Credits))

	for _, credit := range arg.Credits {
		holding, err := holdingRepo.Upsert(ctx, domain.UpsertHoldingParams{
			Username:      credit.Username,
			AssetClass:    req.AssetClass,
			Symbol:        req.Symbol,
			QuantityDelta: credit.Quantity,
			CostDelta:     credit.CostBasis,
		})
		if err != nil {
			return req, nil, err
		}

		holdings = append(holdings, holding)
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return req, nil, errorspkg.ErrInternal
	}

	return req, holdings, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row scanner) (domain.CollabRequest, error) {
	var req domain.CollabRequest

	err := row.Scan(
		&req.ID,
		&req.Requester,
		&req.Collaborator,
		&req.AssetClass,
		&req.Symbol,
		&req.TotalAmount,
		&req.RequesterContribution,
		&req.CollaboratorContribution,
		&req.Status,
		&req.CreatedAt,
	)

	return req, err
}
