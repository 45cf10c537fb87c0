package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetOrCreate returns the user's wallet, provisioning an empty one on first use.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return r.getOrCreate(ctx, userID, false)
}

// GetOrCreateForUpdate is GetOrCreate with a row lock; call it inside a transaction.
func (r *WalletRepository) GetOrCreateForUpdate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return r.getOrCreate(ctx, userID, true)
}

func (r *WalletRepository) getOrCreate(ctx context.Context, userID int64, lock bool) (*domain.Wallet, error) {
	w, err := r.find(ctx, userID, lock)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}
	fresh := &domain.Wallet{TenantID: tid, UserID: userID, Balance: decimal.Zero, Currency: "USD"}
	// a concurrent request may have created it; fall through to the read either way
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(fresh).Error; err != nil {
		return nil, err
	}
	return r.find(ctx, userID, lock)
}

func (r *WalletRepository) find(ctx context.Context, userID int64, lock bool) (*domain.Wallet, error) {
	q, _, err := scoped(ctx, r.db, "wallets")
	if err != nil {
		return nil, err
	}
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var w domain.Wallet
	if err := q.Where("wallets.user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) SetBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error {
	q, _, err := scoped(ctx, r.db, "wallets")
	if err != nil {
		return err
	}
	return q.Model(&domain.Wallet{}).Where("wallets.id = ?", walletID).Update("balance", balance).Error
}

func (r *WalletRepository) AddTransaction(ctx context.Context, t *domain.WalletTransaction) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	t.TenantID = tid
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *WalletRepository) RecentTransactions(ctx context.Context, walletID int64, n int) ([]domain.WalletTransaction, error) {
	q, _, err := scoped(ctx, r.db, "wallet_transactions")
	if err != nil {
		return nil, err
	}
	out := make([]domain.WalletTransaction, 0, n)
	err = q.Where("wallet_transactions.wallet_id = ?", walletID).
		Order("wallet_transactions.created_at DESC, wallet_transactions.id DESC").
		Limit(n).
		Find(&out).Error
	return out, err
}

func (r *WalletRepository) ListTransactions(ctx context.Context, walletID int64, p pagination.Params) ([]domain.WalletTransaction, int64, error) {
	q, _, err := scoped(ctx, r.db, "wallet_transactions")
	if err != nil {
		return nil, 0, err
	}
	q = q.Model(&domain.WalletTransaction{}).Where("wallet_transactions.wallet_id = ?", walletID)
	return paginate[domain.WalletTransaction](ctx, q, p, "wallet_transactions.created_at DESC, wallet_transactions.id DESC")
}
