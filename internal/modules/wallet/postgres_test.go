package wallet

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/database/dbtest"
	"marketplace/internal/domain"
	"marketplace/internal/reqctx"
)

// Concurrent debits serialize on the wallet row: with 50 on the balance only
// five debits of 10 can succeed.
func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	db := dbtest.OpenPostgres(t)
	tenant := domain.Tenant{Name: "Acme", Subdomain: "acme", Plan: domain.PlanFree, Status: domain.TenantActive}
	require.NoError(t, db.Create(&tenant).Error)
	ctx := reqctx.WithTenant(context.Background(), reqctx.Tenant{ID: tenant.ID, Subdomain: "acme"})

	svc := NewService(db, nil)
	_, _, err := svc.TopUp(ctx, 1, dec("50"))
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Transaction(func(tx *gorm.DB) error {
				_, _, err := Debit(ctx, tx, 1, dec("10"), Reference{Type: "payment"})
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else {
				assert.ErrorIs(t, err, ErrInsufficientBalance)
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 3, fail)
	sum, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.True(t, sum.Wallet.Balance.IsZero())
}
