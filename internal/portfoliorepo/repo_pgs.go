// Package portfoliorepo manages repository layer of buy and sell transactions.
package portfoliorepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/paper-trade/internal/accountrepo"
	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/internal/entryrepo"
	"github.com/go-petr/paper-trade/internal/holdingrepo"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates portfolio repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns portfolio RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: db,
	}
}

// Buy debits the account and credits the holding within a single
// transaction. The account row lock serializes concurrent writes for
// one user; the balance check constraint rejects overdrafts.
func (r *RepoPGS) Buy(ctx context.Context, arg domain.BuyTxParams) (domain.TradeTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TradeTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	entryRepo := entryrepo.NewRepoPGS(tx)
	holdingRepo := holdingrepo.NewRepoPGS(tx)

	if _, err = accountRepo.GetForUpdate(ctx, arg.Username); err != nil {
		return result, err
	}

	result.Account, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, arg.Username)
	if err != nil {
		return result, err
	}

	result.Entry, err = entryRepo.Create(ctx, "-"+arg.Amount, arg.Username)
	if err != nil {
		return result, err
	}

	result.Holding, err = holdingRepo.Upsert(ctx, domain.UpsertHoldingParams{
		Username:      arg.Username,
		AssetClass:    arg.AssetClass,
		Symbol:        arg.Symbol,
		QuantityDelta: arg.Quantity,
		CostDelta:     arg.Amount,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// Sell credits the account with the proceeds and debits the holding
// within a single transaction. Quantity validation and the proportional
// cost basis reduction run against the locked holding row.
func (r *RepoPGS) Sell(ctx context.Context, arg domain.SellTxParams) (domain.SaleResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.SaleResult

	sellQuantity, err := decimal.NewFromString(arg.Quantity)
	if err != nil {
		l.Info().Err(err).Send()
		return result, domain.ErrInvalidQuantity
	}

	price, err := decimal.NewFromString(arg.Price)
	if err != nil {
		l.Info().Err(err).Send()
		return result, domain.ErrQuoteUnavailable
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	entryRepo := entryrepo.NewRepoPGS(tx)
	holdingRepo := holdingrepo.NewRepoPGS(tx)

	if _, err = accountRepo.GetForUpdate(ctx, arg.Username); err != nil {
		return result, err
	}

	holding, err := holdingRepo.GetForUpdate(ctx, arg.Username, arg.AssetClass, arg.Symbol)
	if err != nil {
		return result, err
	}

	quantityBefore, err := decimal.NewFromString(holding.Quantity)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if sellQuantity.GreaterThan(quantityBefore) {
		return result, domain.ErrInsufficientQuantity
	}

	costBasis, err := decimal.NewFromString(holding.CostBasis)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	proceeds := sellQuantity.Mul(price)

	// Selling the full quantity must zero the cost basis exactly.
	var costDelta decimal.Decimal
	if sellQuantity.Equal(quantityBefore) {
		costDelta = costBasis
	} else {
		costDelta = costBasis.Mul(sellQuantity).Div(quantityBefore)
	}

	result.Proceeds = proceeds.String()

	result.Account, err = accountRepo.AddBalance(ctx, proceeds.String(), arg.Username)
	if err != nil {
		return result, err
	}

	result.Entry, err = entryRepo.Create(ctx, proceeds.String(), arg.Username)
	if err != nil {
		return result, err
	}

	result.Holding, err = holdingRepo.Upsert(ctx, domain.UpsertHoldingParams{
		Username:      arg.Username,
		AssetClass:    arg.AssetClass,
		Symbol:        arg.Symbol,
		QuantityDelta: sellQuantity.Neg().String(),
		CostDelta:     costDelta.Neg().String(),
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}
