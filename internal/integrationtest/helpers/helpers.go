// Package helpers seeds database rows for integration tests.
package helpers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-petr/paper-trade/internal/accountrepo"
	"github.com/go-petr/paper-trade/internal/collabrepo"
	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/internal/holdingrepo"
	"github.com/go-petr/paper-trade/internal/sessionrepo"
	"github.com/go-petr/paper-trade/internal/userrepo"
	"github.com/go-petr/paper-trade/internal/watchlistrepo"
	"github.com/go-petr/paper-trade/pkg/passpkg"
	"github.com/go-petr/paper-trade/pkg/randompkg"
)

// SeedUser creates a random user.
func SeedUser(t *testing.T, db *sql.DB) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
	}

	user, err := userrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("seeding user returned error: %v", err)
	}

	return user
}

// SeedSession creates a session row.
func SeedSession(t *testing.T, db *sql.DB, arg domain.CreateSessionParams) domain.Session {
	t.Helper()

	session, err := sessionrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("seeding session returned error: %v", err)
	}

	return session
}

// SeedAccount creates an account with the given balance for the user.
func SeedAccount(t *testing.T, db *sql.DB, username, balance string) domain.Account {
	t.Helper()

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), username, balance)
	if err != nil {
		t.Fatalf("seeding account returned error: %v", err)
	}

	return account
}

// SeedUserWithAccount creates a random user together with a funded account.
func SeedUserWithAccount(t *testing.T, db *sql.DB, balance string) (domain.User, domain.Account) {
	t.Helper()

	user := SeedUser(t, db)
	account := SeedAccount(t, db, user.Username, balance)

	return user, account
}

// SeedHolding creates a holding row for the user.
func SeedHolding(t *testing.T, db *sql.DB, username, assetClass, symbol, quantity, costBasis string) domain.Holding {
	t.Helper()

	arg := domain.UpsertHoldingParams{
		Username:      username,
		AssetClass:    assetClass,
		Symbol:        symbol,
		QuantityDelta: quantity,
		CostDelta:     costBasis,
	}

	holding, err := holdingrepo.NewRepoPGS(db).Upsert(context.Background(), arg)
	if err != nil {
		t.Fatalf("seeding holding returned error: %v", err)
	}

	return holding
}

// SeedCollabRequest creates a pending collaboration request.
func SeedCollabRequest(t *testing.T, db *sql.DB, arg domain.CreateCollabRequestParams) domain.CollabRequest {
	t.Helper()

	request, err := collabrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("seeding collaboration request returned error: %v", err)
	}

	return request
}

// SeedWatchlistItem creates a watchlist row for the user.
func SeedWatchlistItem(t *testing.T, db *sql.DB, username, assetClass, symbol string) domain.WatchlistItem {
	t.Helper()

	item, err := watchlistrepo.NewRepoPGS(db).Create(context.Background(), username, assetClass, symbol)
	if err != nil {
		t.Fatalf("seeding watchlist item returned error: %v", err)
	}

	return item
}
