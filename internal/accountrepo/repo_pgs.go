// Package accountrepo manages repository layer of cash accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/dbpkg"
	"github.com/go-petr/paper-trade/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO 
    accounts (username, balance)
VALUES
    ($1, $2)
RETURNING username, balance, created_at
`

// Create creates the cash account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, username, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, username, balance)

	var a domain.Account

	err := row.Scan(
		&a.Username,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_username_fkey":
				return a, domain.ErrOwnerNotFound
			case "accounts_pkey":
				return a, domain.ErrAccountAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT 
	username, balance, created_at 
FROM accounts
WHERE username = $1
`

// Get returns the cash account of the given user.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.Account, error) {
	return r.get(ctx, getQuery, username)
}

const getForUpdateQuery = `
SELECT 
	username, balance, created_at 
FROM accounts
WHERE username = $1
FOR UPDATE
`

// GetForUpdate locks the account row for the duration of the enclosing
// transaction and returns it. All money-moving transactions take this
// lock first so that writes for a single account are serialized.
func (r *RepoPGS) GetForUpdate(ctx context.Context, username string) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, username)
}

func (r *RepoPGS) get(ctx context.Context, query, username string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, username)

	var a domain.Account

	err := row.Scan(
		&a.Username,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE username = $2
RETURNING username, balance, created_at
`

// AddBalance changes the account's balance and returns the changed account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount, username string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, username)

	var a domain.Account

	err := row.Scan(
		&a.Username,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
