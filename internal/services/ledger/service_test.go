package ledger

import (
	"context"
	"path/filepath"
	"testing"

	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/repositories"
	"chama/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st, repositories.NewRegistry(nil, zap.NewNop()), Config{}), st
}

func TestCreateWallet(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	wallet, err := svc.CreateWallet(ctx, CreateWalletInput{
		Name:           "Umoja Savings Group",
		CreatedBy:      "user-amina",
		InitialBalance: 100_000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, wallet.ID)
	assert.Equal(t, "KES", wallet.Currency)
	assert.Equal(t, 0.6, wallet.ApprovalThreshold)
	assert.Equal(t, int64(100_000), wallet.Balance)
	assert.Equal(t, int64(100_000), wallet.InitialBalance)
	assert.Equal(t, models.WalletStatusActive, wallet.Status)

	// The creator is seeded as an active admin in the same commit.
	members := repositories.NewMemberRepository()
	err = st.View(func(tx *store.Tx) error {
		owner, err := members.Get(tx, wallet.ID, "user-amina")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, owner.Role)
		assert.True(t, owner.IsActive())
		assert.True(t, owner.Permissions.ManageMembers)
		assert.Equal(t, int64(1), owner.VotingWeight)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateWallet_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    CreateWalletInput
		wantCode string
	}{
		{
			name:     "missing name",
			input:    CreateWalletInput{CreatedBy: "user-1"},
			wantCode: "validation_error",
		},
		{
			name:     "missing creator",
			input:    CreateWalletInput{Name: "fund"},
			wantCode: "validation_error",
		},
		{
			name:     "negative initial balance",
			input:    CreateWalletInput{Name: "fund", CreatedBy: "user-1", InitialBalance: -1},
			wantCode: "invalid_amount",
		},
		{
			name:     "threshold above one",
			input:    CreateWalletInput{Name: "fund", CreatedBy: "user-1", ApprovalThreshold: 1.5},
			wantCode: "validation_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateWallet(ctx, tt.input)
			require.Error(t, err)
			var derr *apperr.DomainError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.wantCode, derr.Code)
		})
	}
}

func TestGetWallet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetWallet(context.Background(), "no-such-wallet")
	assert.ErrorIs(t, err, apperr.ErrWalletNotFound)
}

func TestReconcileDeposit_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wallet, err := svc.CreateWallet(ctx, CreateWalletInput{Name: "fund", CreatedBy: "user-1"})
	require.NoError(t, err)

	rec, err := svc.ReconcileDeposit(ctx, ReconcileDepositInput{
		WalletID:   wallet.ID,
		Amount:     250_000,
		ExternalID: "mpesa-001",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.BalanceBefore)
	assert.Equal(t, int64(250_000), rec.BalanceAfter)

	// Replaying the same external id must not credit twice.
	_, err = svc.ReconcileDeposit(ctx, ReconcileDepositInput{
		WalletID:   wallet.ID,
		Amount:     250_000,
		ExternalID: "mpesa-001",
	})
	assert.ErrorIs(t, err, apperr.ErrDuplicateTransaction)

	got, err := svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250_000), got.Balance)

	history, err := svc.TransactionHistory(ctx, wallet.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestReconcileDeposit_RequiresExternalID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wallet, err := svc.CreateWallet(ctx, CreateWalletInput{Name: "fund", CreatedBy: "user-1"})
	require.NoError(t, err)

	_, err = svc.ReconcileDeposit(ctx, ReconcileDepositInput{WalletID: wallet.ID, Amount: 100})
	require.Error(t, err)
	var derr *apperr.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "validation_error", derr.Code)
}

func TestRecordTransaction_DoesNotTouchBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wallet, err := svc.CreateWallet(ctx, CreateWalletInput{
		Name:           "fund",
		CreatedBy:      "user-1",
		InitialBalance: 500_000,
	})
	require.NoError(t, err)

	_, err = svc.RecordTransaction(ctx, RecordTransactionInput{
		WalletID:    wallet.ID,
		Type:        models.TransactionTypeExpense,
		Amount:      10_000,
		Description: "cash purchase logged after the fact",
	})
	require.NoError(t, err)

	got, err := svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), got.Balance)

	history, err := svc.TransactionHistory(ctx, wallet.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestTransactionHistory_NewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wallet, err := svc.CreateWallet(ctx, CreateWalletInput{Name: "fund", CreatedBy: "user-1"})
	require.NoError(t, err)

	for i, ref := range []string{"dep-1", "dep-2", "dep-3"} {
		_, err := svc.ReconcileDeposit(ctx, ReconcileDepositInput{
			WalletID:   wallet.ID,
			Amount:     int64(1000 * (i + 1)),
			ExternalID: ref,
		})
		require.NoError(t, err)
	}

	history, err := svc.TransactionHistory(ctx, wallet.ID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "dep-3", history[0].ExternalID)
	assert.Equal(t, "dep-2", history[1].ExternalID)
}

func TestBalanceExplainedByHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wallet, err := svc.CreateWallet(ctx, CreateWalletInput{
		Name:           "fund",
		CreatedBy:      "user-1",
		InitialBalance: 100_000,
	})
	require.NoError(t, err)

	for i, amount := range []int64{50_000, 75_000, 25_000} {
		_, err := svc.ReconcileDeposit(ctx, ReconcileDepositInput{
			WalletID:   wallet.ID,
			Amount:     amount,
			ExternalID: "dep-" + string(rune('a'+i)),
		})
		require.NoError(t, err)
	}

	got, err := svc.GetWallet(ctx, wallet.ID)
	require.NoError(t, err)
	history, err := svc.TransactionHistory(ctx, wallet.ID, 0)
	require.NoError(t, err)

	sum := got.InitialBalance
	for i := range history {
		sum += history[i].SignedAmount()
	}
	assert.Equal(t, got.Balance, sum, "balance must equal initial balance plus the signed sum of applied transactions")
}
