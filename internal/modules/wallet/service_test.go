package wallet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/database/dbtest"
	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/reqctx"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB, context.Context) {
	t.Helper()
	db := dbtest.Open(t)
	tenant := domain.Tenant{Name: "Acme", Subdomain: "acme", Plan: domain.PlanFree, Status: domain.TenantActive}
	require.NoError(t, db.Create(&tenant).Error)
	ctx := reqctx.WithTenant(context.Background(), reqctx.Tenant{ID: tenant.ID, Subdomain: "acme"})
	return NewService(db, nil), db, ctx
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummaryCreatesOnFirstRequest(t *testing.T) {
	svc, _, ctx := setupTestService(t)

	first, err := svc.Summary(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, first.Wallet.Balance.IsZero())
	assert.Empty(t, first.RecentTransactions)

	again, err := svc.Summary(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, first.Wallet.ID, again.Wallet.ID)
}

func TestTopUpAndDebitFlow(t *testing.T) {
	svc, db, ctx := setupTestService(t)

	w, txn, err := svc.TopUp(ctx, 101, dec("150"))
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(dec("150")))
	assert.Equal(t, domain.WalletCredit, txn.Type)

	err = db.Transaction(func(tx *gorm.DB) error {
		w, txn, err = Debit(ctx, tx, 101, dec("100"), Reference{Type: "payment", ID: 9})
		return err
	})
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(dec("50")))
	assert.True(t, txn.BalanceAfter.Equal(dec("50")))
	assert.EqualValues(t, 9, txn.ReferenceID)

	sum, err := svc.Summary(ctx, 101)
	require.NoError(t, err)
	assert.True(t, sum.Wallet.Balance.Equal(dec("50")))
	require.Len(t, sum.RecentTransactions, 2)
	assert.Equal(t, domain.WalletDebit, sum.RecentTransactions[0].Type)
}

func TestDebitNeverOverdraws(t *testing.T) {
	svc, db, ctx := setupTestService(t)
	_, _, err := svc.TopUp(ctx, 7, dec("50"))
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, _, err := Debit(ctx, tx, 7, dec("100"), Reference{Type: "payment"})
		return err
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	sum, err := svc.Summary(ctx, 7)
	require.NoError(t, err)
	assert.True(t, sum.Wallet.Balance.Equal(dec("50")))
	assert.Len(t, sum.RecentTransactions, 1)
}

func TestTopUpRejectsBadAmounts(t *testing.T) {
	svc, _, ctx := setupTestService(t)

	for _, amount := range []string{"0", "-5", "1.005"} {
		_, _, err := svc.TopUp(ctx, 1, dec(amount))
		assert.ErrorIs(t, err, ErrInvalidAmount, amount)
	}
}

func TestTransactionsPaginates(t *testing.T) {
	svc, _, ctx := setupTestService(t)
	for i := 0; i < 3; i++ {
		_, _, err := svc.TopUp(ctx, 5, dec("1.50"))
		require.NoError(t, err)
	}

	items, total, err := svc.Transactions(ctx, 5, paginationParams(1, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)
	assert.True(t, items[0].BalanceAfter.Equal(dec("4.50")))
}

func paginationParams(page, limit int) pagination.Params {
	return pagination.Params{Page: page, Limit: limit}
}
