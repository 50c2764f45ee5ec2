package watchlistrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/internal/userrepo"
	"github.com/go-petr/paper-trade/pkg/assetpkg"
	"github.com/go-petr/paper-trade/pkg/configpkg"
	"github.com/go-petr/paper-trade/pkg/passpkg"
	"github.com/go-petr/paper-trade/pkg/randompkg"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

var (
	testRepo     *RepoPGS
	testUserRepo *userrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testUserRepo = userrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomUser(t *testing.T) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
	}

	user, err := testUserRepo.Create(context.Background(), arg)
	require.NoError(t, err)

	return user
}

func TestCreate(t *testing.T) {
	user := createRandomUser(t)

	item, err := testRepo.Create(context.Background(), user.Username, assetpkg.Equity, "AAPL")
	require.NoError(t, err)

	require.Equal(t, user.Username, item.Username)
	require.Equal(t, assetpkg.Equity, item.AssetClass)
	require.Equal(t, "AAPL", item.Symbol)
	require.NotZero(t, item.ID)
	require.NotZero(t, item.CreatedAt)
}

func TestCreateDuplicate(t *testing.T) {
	user := createRandomUser(t)

	_, err := testRepo.Create(context.Background(), user.Username, assetpkg.Equity, "AAPL")
	require.NoError(t, err)

	item, err := testRepo.Create(context.Background(), user.Username, assetpkg.Equity, "AAPL")
	require.EqualError(t, err, domain.ErrWatchlistDuplicate.Error())
	require.Empty(t, item)
}

func TestCreateUserNotFound(t *testing.T) {
	item, err := testRepo.Create(context.Background(), "missing-user", assetpkg.Equity, "AAPL")
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
	require.Empty(t, item)
}

func TestList(t *testing.T) {
	user := createRandomUser(t)

	_, err := testRepo.Create(context.Background(), user.Username, assetpkg.Equity, "AAPL")
	require.NoError(t, err)
	_, err = testRepo.Create(context.Background(), user.Username, assetpkg.Crypto, "bitcoin")
	require.NoError(t, err)

	items, err := testRepo.List(context.Background(), user.Username, "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Filtered by asset class.
	items, err = testRepo.List(context.Background(), user.Username, assetpkg.Crypto)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "bitcoin", items[0].Symbol)
}

func TestDelete(t *testing.T) {
	user := createRandomUser(t)

	_, err := testRepo.Create(context.Background(), user.Username, assetpkg.Equity, "AAPL")
	require.NoError(t, err)

	err = testRepo.Delete(context.Background(), user.Username, assetpkg.Equity, "AAPL")
	require.NoError(t, err)

	items, err := testRepo.List(context.Background(), user.Username, "")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestDeleteNotFound(t *testing.T) {
	user := createRandomUser(t)

	err := testRepo.Delete(context.Background(), user.Username, assetpkg.Equity, "AAPL")
	require.EqualError(t, err, domain.ErrWatchlistItemNotFound.Error())
}
