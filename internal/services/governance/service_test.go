package governance

import (
	"context"
	"path/filepath"
	"testing"
	"time"

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
	return NewService(st), st
}

type seedMember struct {
	userID string
	role   string
	weight int64
}

func seedWallet(t *testing.T, st *store.Store, wallet *models.Wallet, roster ...seedMember) {
	t.Helper()
	now := time.Now().UTC()
	if wallet.Status == "" {
		wallet.Status = models.WalletStatusActive
	}
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	wallets := repositories.NewWalletRepository()
	members := repositories.NewMemberRepository()
	err := st.Update(func(tx *store.Tx) error {
		if err := wallets.Put(tx, wallet); err != nil {
			return err
		}
		for _, m := range roster {
			if m.role == "" {
				m.role = models.RoleMember
			}
			if m.weight == 0 {
				m.weight = 1
			}
			if err := members.Put(tx, &models.Member{
				UserID:       m.userID,
				WalletID:     wallet.ID,
				Role:         m.role,
				Status:       models.MemberStatusActive,
				Permissions:  models.DefaultPermissions(m.role),
				VotingWeight: m.weight,
				JoinedAt:     now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func addMember(t *testing.T, st *store.Store, walletID string, m seedMember) {
	t.Helper()
	if m.role == "" {
		m.role = models.RoleMember
	}
	if m.weight == 0 {
		m.weight = 1
	}
	members := repositories.NewMemberRepository()
	err := st.Update(func(tx *store.Tx) error {
		return members.Put(tx, &models.Member{
			UserID:       m.userID,
			WalletID:     walletID,
			Role:         m.role,
			Status:       models.MemberStatusActive,
			Permissions:  models.DefaultPermissions(m.role),
			VotingWeight: m.weight,
			JoinedAt:     time.Now().UTC(),
		})
	})
	require.NoError(t, err)
}

func expenseInput(walletID, proposedBy string, amount int64) ProposeInput {
	return ProposeInput{
		WalletID:    walletID,
		ProposedBy:  proposedBy,
		Type:        models.ProposalTypeExpense,
		Amount:      amount,
		Recipient:   "vendor-001",
		Description: "venue hire",
	}
}

func TestProposeTransaction_RequiredApprovals(t *testing.T) {
	svc, st := newTestService(t)
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.67, Balance: 1_000_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
		seedMember{userID: "u2"},
		seedMember{userID: "u3"},
	)

	proposal, err := svc.ProposeTransaction(context.Background(), expenseInput("w1", "u2", 100_000))
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, proposal.Status)
	// Three weight-1 voters at a 0.67 threshold need 2 approvals.
	assert.Equal(t, int64(2), proposal.RequiredApprovals)
}

func TestProposeTransaction_QuorumFrozenAtCreation(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.67, Balance: 1_000_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
		seedMember{userID: "u2"},
		seedMember{userID: "u3"},
	)

	proposal, err := svc.ProposeTransaction(ctx, expenseInput("w1", "u2", 100_000))
	require.NoError(t, err)
	require.Equal(t, int64(2), proposal.RequiredApprovals)

	// Membership changes after creation must not move the quorum.
	addMember(t, st, "w1", seedMember{userID: "u4"})
	addMember(t, st, "w1", seedMember{userID: "u5"})

	got, _, err := svc.GetProposal(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.RequiredApprovals)

	// Two approvals still approve it, even though round(5 * 0.67) would be 3.
	_, err = svc.VoteOnProposal(ctx, VoteInput{ProposalID: proposal.ID, VoterID: "u1", Choice: models.VoteApprove})
	require.NoError(t, err)
	status, err := svc.VoteOnProposal(ctx, VoteInput{ProposalID: proposal.ID, VoterID: "u3", Choice: models.VoteApprove})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, status)
}

func TestProposeTransaction_AutoApprove(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.6, AutoApproveBelow: 50_000, Balance: 1_000_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
		seedMember{userID: "u2"},
	)

	proposal, err := svc.ProposeTransaction(ctx, expenseInput("w1", "u2", 30_000))
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, proposal.Status)

	_, votes, err := svc.GetProposal(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Empty(t, votes, "auto-approval records no votes")

	// Above the shortcut the normal flow applies.
	proposal, err = svc.ProposeTransaction(ctx, expenseInput("w1", "u2", 80_000))
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, proposal.Status)
}

func TestProposeTransaction_Authorization(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.6, Balance: 1_000_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
		seedMember{userID: "viewer-1", role: models.RoleViewer},
	)
	seedWallet(t, st,
		&models.Wallet{ID: "w2", Name: "frozen", ApprovalThreshold: 0.6, Status: models.WalletStatusSuspended},
		seedMember{userID: "u1", role: models.RoleAdmin},
	)

	_, err := svc.ProposeTransaction(ctx, expenseInput("w1", "stranger", 10_000))
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)

	_, err = svc.ProposeTransaction(ctx, expenseInput("w1", "viewer-1", 10_000))
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)

	_, err = svc.ProposeTransaction(ctx, expenseInput("w2", "u1", 10_000))
	assert.ErrorIs(t, err, apperr.ErrWalletInactive)
}

func TestVoteOnProposal_DoubleVote(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.67, Balance: 1_000_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
		seedMember{userID: "u2"},
		seedMember{userID: "u3"},
	)

	proposal, err := svc.ProposeTransaction(ctx, expenseInput("w1", "u2", 100_000))
	require.NoError(t, err)

	status, err := svc.VoteOnProposal(ctx, VoteInput{ProposalID: proposal.ID, VoterID: "u1", Choice: models.VoteApprove})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, status)

	// A second vote from the same member changes nothing, not even its choice.
	_, err = svc.VoteOnProposal(ctx, VoteInput{ProposalID: proposal.ID, VoterID: "u1", Choice: models.VoteReject})
	assert.ErrorIs(t, err, apperr.ErrAlreadyVoted)

	got, votes, err := svc.GetProposal(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, got.Status)
	require.Len(t, votes, 1)
	assert.Equal(t, models.VoteApprove, votes[0].Choice)
}

func TestVoteOnProposal_EarlyRejection(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.67, Balance: 1_000_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
		seedMember{userID: "u2"},
		seedMember{userID: "u3"},
	)

	proposal, err := svc.ProposeTransaction(ctx, expenseInput("w1", "u1", 100_000))
	require.NoError(t, err)
	require.Equal(t, int64(2), proposal.RequiredApprovals)

	status, err := svc.VoteOnProposal(ctx, VoteInput{ProposalID: proposal.ID, VoterID: "u2", Choice: models.VoteReject})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, status)

	// After the second rejection only one eligible weight unit remains, which
	// can no longer reach the two required approvals.
	status, err = svc.VoteOnProposal(ctx, VoteInput{ProposalID: proposal.ID, VoterID: "u3", Choice: models.VoteReject})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, status)

	// Terminal: no further votes are accepted.
	_, err = svc.VoteOnProposal(ctx, VoteInput{ProposalID: proposal.ID, VoterID: "u1", Choice: models.VoteApprove})
	assert.ErrorIs(t, err, apperr.ErrProposalNotPending)
}

func TestVoteOnProposal_WeightedApproval(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.6, Balance: 1_000_000},
		seedMember{userID: "chair", role: models.RoleAdmin, weight: 3},
		seedMember{userID: "u2"},
		seedMember{userID: "u3"},
	)

	proposal, err := svc.ProposeTransaction(ctx, expenseInput("w1", "u2", 100_000))
	require.NoError(t, err)
	// Total weight 5 at 0.6 needs 3 approval units.
	require.Equal(t, int64(3), proposal.RequiredApprovals)

	// The chair's weight alone meets quorum.
	status, err := svc.VoteOnProposal(ctx, VoteInput{ProposalID: proposal.ID, VoterID: "chair", Choice: models.VoteApprove})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, status)
}

func TestExecuteTransaction_Expense(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.6, AutoApproveBelow: 50_000, Balance: 200_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
	)

	proposal, err := svc.ProposeTransaction(ctx, expenseInput("w1", "u1", 50_000))
	require.NoError(t, err)
	require.Equal(t, models.ProposalStatusApproved, proposal.Status)

	record, err := svc.ExecuteTransaction(ctx, ExecuteInput{ProposalID: proposal.ID, ExecutedBy: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(200_000), record.BalanceBefore)
	assert.Equal(t, int64(150_000), record.BalanceAfter)
	assert.Equal(t, proposal.ID, record.ProposalID)

	wallets := repositories.NewWalletRepository()
	err = st.View(func(tx *store.Tx) error {
		w, err := wallets.Get(tx, "w1")
		require.NoError(t, err)
		assert.Equal(t, int64(150_000), w.Balance)
		return nil
	})
	require.NoError(t, err)

	got, _, err := svc.GetProposal(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusExecuted, got.Status)
	assert.Equal(t, record.ID, got.TransactionID)

	// Execution is one-shot.
	_, err = svc.ExecuteTransaction(ctx, ExecuteInput{ProposalID: proposal.ID, ExecutedBy: "u1"})
	assert.ErrorIs(t, err, apperr.ErrProposalNotApproved)
}

func TestExecuteTransaction_InsufficientFunds(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.6, AutoApproveBelow: 50_000, Balance: 10_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
	)

	proposal, err := svc.ProposeTransaction(ctx, expenseInput("w1", "u1", 30_000))
	require.NoError(t, err)
	require.Equal(t, models.ProposalStatusApproved, proposal.Status)

	// Approval does not reserve funds; the check runs at execution time.
	_, err = svc.ExecuteTransaction(ctx, ExecuteInput{ProposalID: proposal.ID, ExecutedBy: "u1"})
	assert.ErrorIs(t, err, apperr.ErrInsufficientFunds)

	got, _, err := svc.GetProposal(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, got.Status, "a failed execution leaves the proposal approved")
}

func TestExecuteTransaction_IncomeAndTransfer(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.6, AutoApproveBelow: 100_000, Balance: 50_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
	)

	income, err := svc.ProposeTransaction(ctx, ProposeInput{
		WalletID: "w1", ProposedBy: "u1", Type: models.ProposalTypeIncome,
		Amount: 40_000, Description: "harambee proceeds",
	})
	require.NoError(t, err)
	rec, err := svc.ExecuteTransaction(ctx, ExecuteInput{ProposalID: income.ID, ExecutedBy: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(90_000), rec.BalanceAfter)

	transfer, err := svc.ProposeTransaction(ctx, ProposeInput{
		WalletID: "w1", ProposedBy: "u1", Type: models.ProposalTypeTransfer,
		Amount: 25_000, Recipient: "wallet-other", Description: "inter-group transfer",
	})
	require.NoError(t, err)
	rec, err = svc.ExecuteTransaction(ctx, ExecuteInput{ProposalID: transfer.ID, ExecutedBy: "u1"})
	require.NoError(t, err)
	assert.Equal(t, rec.BalanceBefore, rec.BalanceAfter, "a transfer is recorded without moving this wallet's balance")

	wallets := repositories.NewWalletRepository()
	err = st.View(func(tx *store.Tx) error {
		w, err := wallets.Get(tx, "w1")
		require.NoError(t, err)
		assert.Equal(t, int64(90_000), w.Balance)
		return nil
	})
	require.NoError(t, err)
}

func TestCancelProposal(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.6, Balance: 1_000_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
		seedMember{userID: "u2"},
		seedMember{userID: "u3"},
	)

	proposal, err := svc.ProposeTransaction(ctx, expenseInput("w1", "u2", 100_000))
	require.NoError(t, err)

	// A plain member who is not the proposer cannot cancel.
	err = svc.CancelProposal(ctx, proposal.ID, "u3")
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)

	// The proposer can.
	err = svc.CancelProposal(ctx, proposal.ID, "u2")
	require.NoError(t, err)

	got, _, err := svc.GetProposal(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusCancelled, got.Status)

	err = svc.CancelProposal(ctx, proposal.ID, "u2")
	assert.ErrorIs(t, err, apperr.ErrProposalNotPending)
}

func TestListProposals_NewestFirst(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seedWallet(t, st,
		&models.Wallet{ID: "w1", Name: "fund", ApprovalThreshold: 0.6, Balance: 1_000_000},
		seedMember{userID: "u1", role: models.RoleAdmin},
	)

	var ids []string
	for _, desc := range []string{"first", "second", "third"} {
		p, err := svc.ProposeTransaction(ctx, ProposeInput{
			WalletID: "w1", ProposedBy: "u1", Type: models.ProposalTypeExpense,
			Amount: 10_000, Description: desc,
		})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	list, err := svc.ListProposals(ctx, "w1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}
