package userrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/paper-trade/internal/accountrepo"
	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// SignupPGS holds a connection to run the signup transaction.
type SignupPGS struct {
	conn *sql.DB
}

// NewSignupPGS returns signup SignupPGS with connection to start transactions.
func NewSignupPGS(db *sql.DB) *SignupPGS {
	return &SignupPGS{
		conn: db,
	}
}

// CreateWithAccount inserts the user row and the seeded cash account
// within a single transaction. Either both rows commit or neither does.
func (r *SignupPGS) CreateWithAccount(ctx context.Context, arg domain.CreateUserParams, balance string) (domain.User, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var (
		user    domain.User
		account domain.Account
	)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return user, account, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	user, err = NewRepoPGS(tx).Create(ctx, arg)
	if err != nil {
		return user, account, err
	}

	account, err = accountrepo.NewRepoPGS(tx).Create(ctx, user.Username, balance)
	if err != nil {
		return user, account, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return user, account, errorspkg.ErrInternal
	}

	return user, account, nil
}
