package wallet

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/audit"
	"marketplace/internal/domain"
	"marketplace/internal/pkg/metrics"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
)

const recentLimit = 20

// Reference ties a wallet movement to the record that caused it.
type Reference struct {
	Type        string
	ID          int64
	Description string
}

type Service struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewService(db *gorm.DB, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{db: db, audit: rec}
}

// Summary returns the user's wallet, creating it on first access, with the
// most recent transactions.
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	repo := repository.NewWalletRepository(s.db)
	w, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := repo.RecentTransactions(ctx, w.ID, recentLimit)
	if err != nil {
		return nil, err
	}
	return &Summary{Wallet: w, RecentTransactions: recent}, nil
}

func (s *Service) TopUp(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.WalletTransaction, error) {
	if err := checkAmount(amount); err != nil {
		return nil, nil, err
	}

	var (
		wallet *domain.Wallet
		txn    *domain.WalletTransaction
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, txn, err = Credit(ctx, tx, userID, amount, Reference{Type: "topup", Description: "Wallet top-up"})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:       "customer.wallet.topup",
		ResourceType: "wallet",
		ResourceID:   wallet.ID,
		Changes:      map[string]any{"amount": amount, "balanceAfter": wallet.Balance},
	})
	return wallet, txn, nil
}

func (s *Service) Transactions(ctx context.Context, userID int64, p pagination.Params) ([]domain.WalletTransaction, int64, error) {
	repo := repository.NewWalletRepository(s.db)
	w, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return repo.ListTransactions(ctx, w.ID, p)
}

// Credit adds amount to the user's wallet inside tx.
func Credit(ctx context.Context, tx *gorm.DB, userID int64, amount decimal.Decimal, ref Reference) (*domain.Wallet, *domain.WalletTransaction, error) {
	return move(ctx, tx, userID, amount, domain.WalletCredit, ref)
}

// Debit removes amount from the user's wallet inside tx. It fails with
// ErrInsufficientBalance rather than let the balance go negative; the caller
// is expected to roll tx back.
func Debit(ctx context.Context, tx *gorm.DB, userID int64, amount decimal.Decimal, ref Reference) (*domain.Wallet, *domain.WalletTransaction, error) {
	return move(ctx, tx, userID, amount, domain.WalletDebit, ref)
}

func move(ctx context.Context, tx *gorm.DB, userID int64, amount decimal.Decimal, kind domain.WalletTransactionType, ref Reference) (*domain.Wallet, *domain.WalletTransaction, error) {
	if err := checkAmount(amount); err != nil {
		return nil, nil, err
	}
	repo := repository.NewWalletRepository(tx)
	w, err := repo.GetOrCreateForUpdate(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	next := w.Balance.Add(amount)
	if kind == domain.WalletDebit {
		next = w.Balance.Sub(amount)
		if next.IsNegative() {
			metrics.IncWalletDebitRejected()
			return nil, nil, ErrInsufficientBalance
		}
	}

	if err := repo.SetBalance(ctx, w.ID, next); err != nil {
		return nil, nil, err
	}
	w.Balance = next

	txn := &domain.WalletTransaction{
		WalletID:      w.ID,
		Type:          kind,
		Amount:        amount,
		BalanceAfter:  next,
		ReferenceType: ref.Type,
		ReferenceID:   ref.ID,
		Description:   ref.Description,
	}
	if err := repo.AddTransaction(ctx, txn); err != nil {
		return nil, nil, err
	}
	return w, txn, nil
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}
