// Package ledger owns the wallet record, the append-only transaction log
// and idempotent balance mutation.
package ledger

import (
	"context"
	"time"

	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/repositories"
	"chama/internal/store"
	"chama/internal/validation"

	"github.com/google/uuid"
)

// Service is the wallet ledger interface.
type Service interface {
	CreateWallet(ctx context.Context, input CreateWalletInput) (*models.Wallet, error)
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)
	RecordTransaction(ctx context.Context, input RecordTransactionInput) (*models.TransactionRecord, error)
	ReconcileDeposit(ctx context.Context, input ReconcileDepositInput) (*models.TransactionRecord, error)
	TransactionHistory(ctx context.Context, walletID string, limit int) ([]models.TransactionRecord, error)
}

type service struct {
	store    *store.Store
	wallets  repositories.WalletRepository
	members  repositories.MemberRepository
	txns     repositories.TransactionRepository
	registry *repositories.Registry
	config   Config
}

// NewService creates a new ledger service.
func NewService(st *store.Store, registry *repositories.Registry, config Config) Service {
	if st == nil {
		panic("store is required")
	}
	if config.DefaultCurrency == "" {
		config.DefaultCurrency = "KES"
	}
	if config.DefaultApprovalThreshold == 0 {
		config.DefaultApprovalThreshold = 0.6
	}
	return &service{
		store:    st,
		wallets:  repositories.NewWalletRepository(),
		members:  repositories.NewMemberRepository(),
		txns:     repositories.NewTransactionRepository(),
		registry: registry,
		config:   config,
	}
}

func (s *service) CreateWallet(ctx context.Context, input CreateWalletInput) (*models.Wallet, error) {
	if err := validation.Required("name", input.Name); err != nil {
		return nil, err
	}
	if err := validation.Required("created_by", input.CreatedBy); err != nil {
		return nil, err
	}
	if input.InitialBalance < 0 {
		return nil, apperr.ErrInvalidAmount
	}
	if input.ApprovalThreshold == 0 {
		input.ApprovalThreshold = s.config.DefaultApprovalThreshold
	}
	if err := validation.Threshold(input.ApprovalThreshold); err != nil {
		return nil, err
	}
	if input.Currency == "" {
		input.Currency = s.config.DefaultCurrency
	}

	now := time.Now().UTC()
	wallet := &models.Wallet{
		ID:                   uuid.NewString(),
		Name:                 input.Name,
		Description:          input.Description,
		OwnerID:              input.CreatedBy,
		Balance:              input.InitialBalance,
		InitialBalance:       input.InitialBalance,
		Currency:             input.Currency,
		ApprovalThreshold:    input.ApprovalThreshold,
		AutoApproveBelow:     input.AutoApproveBelow,
		RequireApprovalAbove: input.RequireApprovalAbove,
		Status:               models.WalletStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	owner := &models.Member{
		UserID:       input.CreatedBy,
		WalletID:     wallet.ID,
		Role:         models.RoleAdmin,
		Status:       models.MemberStatusActive,
		Permissions:  models.DefaultPermissions(models.RoleAdmin),
		VotingWeight: 1,
		JoinedAt:     now,
	}

	err := s.store.Update(func(tx *store.Tx) error {
		if err := s.wallets.Put(tx, wallet); err != nil {
			return err
		}
		return s.members.Put(tx, owner)
	})
	if err != nil {
		return nil, err
	}

	// Best-effort global registration; the wallet exists locally either way.
	s.registry.RegisterWallet(ctx, wallet.ID, wallet.Name)
	s.registry.AddUserWallet(ctx, input.CreatedBy, wallet.ID)

	return wallet, nil
}

func (s *service) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	var wallet *models.Wallet
	err := s.store.View(func(tx *store.Tx) error {
		w, err := s.wallets.Get(tx, walletID)
		if err != nil {
			return err
		}
		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *service) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*models.TransactionRecord, error) {
	if err := validation.Amount(input.Amount); err != nil {
		return nil, err
	}
	rec := &models.TransactionRecord{
		WalletID:      input.WalletID,
		ProposalID:    input.ProposalID,
		Type:          input.Type,
		Amount:        input.Amount,
		BalanceBefore: input.BalanceBefore,
		BalanceAfter:  input.BalanceAfter,
		ExecutedBy:    input.ExecutedBy,
		Description:   input.Description,
		Reference:     input.Reference,
		CreatedAt:     time.Now().UTC(),
	}
	err := s.store.Update(func(tx *store.Tx) error {
		if _, err := s.wallets.Get(tx, input.WalletID); err != nil {
			return err
		}
		return s.txns.Append(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ReconcileDeposit credits an external deposit exactly once. This is the
// only non-governance money movement, so the duplicate check runs in the
// same transaction as the balance write.
func (s *service) ReconcileDeposit(ctx context.Context, input ReconcileDepositInput) (*models.TransactionRecord, error) {
	if err := validation.Amount(input.Amount); err != nil {
		return nil, err
	}
	if err := validation.Required("external_transaction_id", input.ExternalID); err != nil {
		return nil, err
	}

	var rec *models.TransactionRecord
	err := s.store.Update(func(tx *store.Tx) error {
		wallet, err := s.wallets.Get(tx, input.WalletID)
		if err != nil {
			return err
		}
		applied, err := s.txns.RefExists(tx, input.ExternalID)
		if err != nil {
			return err
		}
		if applied {
			return apperr.ErrDuplicateTransaction
		}

		rec = &models.TransactionRecord{
			WalletID:      wallet.ID,
			Type:          models.TransactionTypeDeposit,
			Amount:        input.Amount,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  wallet.Balance + input.Amount,
			Description:   input.Description,
			Reference:     input.Reference,
			ExternalID:    input.ExternalID,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.txns.Append(tx, rec); err != nil {
			return err
		}

		wallet.Balance = rec.BalanceAfter
		wallet.UpdatedAt = rec.CreatedAt
		return s.wallets.Put(tx, wallet)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) TransactionHistory(ctx context.Context, walletID string, limit int) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	err := s.store.View(func(tx *store.Tx) error {
		if _, err := s.wallets.Get(tx, walletID); err != nil {
			return err
		}
		recs, err := s.txns.ListRecent(tx, walletID, limit)
		if err != nil {
			return err
		}
		records = recs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
