// Package entryrepo manages repository layer of entries.
package entryrepo

import (
	"context"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/dbpkg"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    entries (username, amount)
VALUES
    ($1, $2)
RETURNING id, username, amount, created_at
`

// Create creates the entry and then returns it.
func (r *RepoPGS) Create(ctx context.Context, amount, username string) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, username, amount)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.Username,
		&e.Amount,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listQuery = `
SELECT id, username, amount, created_at FROM entries
WHERE username = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified number of balance entries for the given user.
func (r *RepoPGS) List(ctx context.Context, username string, limit, offset int32) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, username, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.Username, &e.Amount, &e.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
