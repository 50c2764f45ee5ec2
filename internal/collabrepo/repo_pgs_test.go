package collabrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/go-petr/paper-trade/internal/accountrepo"
	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/internal/holdingrepo"
	"github.com/go-petr/paper-trade/internal/userrepo"
	"github.com/go-petr/paper-trade/pkg/assetpkg"
	"github.com/go-petr/paper-trade/pkg/configpkg"
	"github.com/go-petr/paper-trade/pkg/passpkg"
	"github.com/go-petr/paper-trade/pkg/randompkg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

var (
	testRepo        *RepoPGS
	testUserRepo    *userrepo.RepoPGS
	testAccountRepo *accountrepo.RepoPGS
	testHoldingRepo *holdingrepo.RepoPGS
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
	testAccountRepo = accountrepo.NewRepoPGS(testDB)
	testHoldingRepo = holdingrepo.NewRepoPGS(testDB)

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

	_, err = testAccountRepo.Create(context.Background(), user.Username, "10000000")
	require.NoError(t, err)

	return user
}

func createPendingRequest(t *testing.T) domain.CollabRequest {
	t.Helper()

	requester := createRandomUser(t)
	collaborator := createRandomUser(t)

	arg := domain.CreateCollabRequestParams{
		Requester:                requester.Username,
		Collaborator:             collaborator.Username,
		AssetClass:               assetpkg.Equity,
		Symbol:                   randompkg.EquitySymbol(),
		TotalAmount:              "1000",
		RequesterContribution:    "300",
		CollaboratorContribution: "700",
	}

	req, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)

	require.Equal(t, arg.Requester, req.Requester)
	require.Equal(t, arg.Collaborator, req.Collaborator)
	require.Equal(t, domain.CollabStatusPending, req.Status)
	require.NotZero(t, req.ID)
	require.NotZero(t, req.CreatedAt)

	return req
}

func requireEqualDecimal(t *testing.T, want, got string) {
	t.Helper()

	wantDec := decimal.RequireFromString(want)
	gotDec := decimal.RequireFromString(got)
	require.True(t, wantDec.Equal(gotDec), "got %v, want %v", gotDec, wantDec)
}

func TestCreate(t *testing.T) {
	createPendingRequest(t)
}

func TestCreateRequesterNotFound(t *testing.T) {
	collaborator := createRandomUser(t)

	arg := domain.CreateCollabRequestParams{
		Requester:                "missing-user",
		Collaborator:             collaborator.Username,
		AssetClass:               assetpkg.Equity,
		Symbol:                   randompkg.EquitySymbol(),
		TotalAmount:              "1000",
		RequesterContribution:    "300",
		CollaboratorContribution: "700",
	}

	req, err := testRepo.Create(context.Background(), arg)
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
	require.Empty(t, req)
}

func TestCreateUnregisteredCollaborator(t *testing.T) {
	requester := createRandomUser(t)

	arg := domain.CreateCollabRequestParams{
		Requester:                requester.Username,
		Collaborator:             randompkg.Owner(),
		AssetClass:               assetpkg.Equity,
		Symbol:                   randompkg.EquitySymbol(),
		TotalAmount:              "1000",
		RequesterContribution:    "300",
		CollaboratorContribution: "700",
	}

	req, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.Equal(t, arg.Collaborator, req.Collaborator)
	require.Equal(t, domain.CollabStatusPending, req.Status)
}

func TestCreateZeroRequesterContribution(t *testing.T) {
	req := createPendingRequest(t)

	arg := domain.CreateCollabRequestParams{
		Requester:                req.Requester,
		Collaborator:             req.Collaborator,
		AssetClass:               assetpkg.Equity,
		Symbol:                   randompkg.EquitySymbol(),
		TotalAmount:              "700",
		RequesterContribution:    "0",
		CollaboratorContribution: "700",
	}

	got, err := testRepo.Create(context.Background(), arg)
	require.EqualError(t, err, domain.ErrInvalidContribution.Error())
	require.Empty(t, got)
}

func TestGet(t *testing.T) {
	req1 := createPendingRequest(t)

	req2, err := testRepo.Get(context.Background(), req1.ID)
	require.NoError(t, err)
	require.Equal(t, req1.ID, req2.ID)
	require.Equal(t, req1.Requester, req2.Requester)
	require.Equal(t, req1.Status, req2.Status)
}

func TestGetNotFound(t *testing.T) {
	req, err := testRepo.Get(context.Background(), -1)
	require.EqualError(t, err, domain.ErrCollabRequestNotFound.Error())
	require.Empty(t, req)
}

func TestListByParticipant(t *testing.T) {
	req := createPendingRequest(t)

	for _, username := range []string{req.Requester, req.Collaborator} {
		items, err := testRepo.ListByParticipant(context.Background(), username)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, req.ID, items[0].ID)
	}

	outsider := createRandomUser(t)

	items, err := testRepo.ListByParticipant(context.Background(), outsider.Username)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestUpdateStatus(t *testing.T) {
	req := createPendingRequest(t)

	rejected, err := testRepo.UpdateStatus(context.Background(), req.ID, domain.CollabStatusRejected)
	require.NoError(t, err)
	require.Equal(t, domain.CollabStatusRejected, rejected.Status)

	// The terminal state is immutable.
	again, err := testRepo.UpdateStatus(context.Background(), req.ID, domain.CollabStatusAccepted)
	require.EqualError(t, err, domain.ErrInvalidTransition.Error())
	require.Empty(t, again)

	got, err := testRepo.Get(context.Background(), req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CollabStatusRejected, got.Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	req, err := testRepo.UpdateStatus(context.Background(), -1, domain.CollabStatusRejected)
	require.EqualError(t, err, domain.ErrCollabRequestNotFound.Error())
	require.Empty(t, req)
}

func TestSettle(t *testing.T) {
	req := createPendingRequest(t)

	arg := domain.SettleTxParams{
		RequestID: req.ID,
		Credits: []domain.HoldingCredit{
			{Username: req.Requester, Quantity: "6", CostBasis: "300"},
			{Username: req.Collaborator, Quantity: "14", CostBasis: "700"},
		},
	}

	settled, holdings, err := testRepo.Settle(context.Background(), arg)
	require.NoError(t, err)
	require.Equal(t, domain.CollabStatusAccepted, settled.Status)
	require.Len(t, holdings, 2)

	requesterHolding, err := testHoldingRepo.Get(context.Background(),
		req.Requester, req.AssetClass, req.Symbol)
	require.NoError(t, err)
	requireEqualDecimal(t, "6", requesterHolding.Quantity)
	requireEqualDecimal(t, "300", requesterHolding.CostBasis)

	collaboratorHolding, err := testHoldingRepo.Get(context.Background(),
		req.Collaborator, req.AssetClass, req.Symbol)
	require.NoError(t, err)
	requireEqualDecimal(t, "14", collaboratorHolding.Quantity)
	requireEqualDecimal(t, "700", collaboratorHolding.CostBasis)
}

func TestSettleTwiceBooksCreditsOnce(t *testing.T) {
	req := createPendingRequest(t)

	arg := domain.SettleTxParams{
		RequestID: req.ID,
		Credits: []domain.HoldingCredit{
			{Username: req.Collaborator, Quantity: "20", CostBasis: "1000"},
		},
	}

	_, _, err := testRepo.Settle(context.Background(), arg)
	require.NoError(t, err)

	_, _, err = testRepo.Settle(context.Background(), arg)
	require.EqualError(t, err, domain.ErrInvalidTransition.Error())

	holding, err := testHoldingRepo.Get(context.Background(),
		req.Collaborator, req.AssetClass, req.Symbol)
	require.NoError(t, err)
	requireEqualDecimal(t, "20", holding.Quantity)
	requireEqualDecimal(t, "1000", holding.CostBasis)
}

func TestSettleAfterReject(t *testing.T) {
	req := createPendingRequest(t)

	_, err := testRepo.UpdateStatus(context.Background(), req.ID, domain.CollabStatusRejected)
	require.NoError(t, err)

	_, _, err = testRepo.Settle(context.Background(), domain.SettleTxParams{
		RequestID: req.ID,
		Credits: []domain.HoldingCredit{
			{Username: req.Collaborator, Quantity: "20", CostBasis: "1000"},
		},
	})
	require.EqualError(t, err, domain.ErrInvalidTransition.Error())

	_, err = testHoldingRepo.Get(context.Background(),
		req.Collaborator, req.AssetClass, req.Symbol)
	require.EqualError(t, err, domain.ErrHoldingNotFound.Error())
}

func TestSettleNotFound(t *testing.T) {
	_, _, err := testRepo.Settle(context.Background(), domain.SettleTxParams{
		RequestID: -1,
		Credits:   []domain.HoldingCredit{},
	})
	require.EqualError(t, err, domain.ErrCollabRequestNotFound.Error())
}
