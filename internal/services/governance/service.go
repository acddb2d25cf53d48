// Package governance runs the spending-proposal lifecycle: creation,
// weighted quorum voting and execution against the ledger.
package governance

import (
	"context"
	"errors"
	"math"
	"time"

	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/repositories"
	"chama/internal/store"
	"chama/internal/validation"
)

// Service is the proposal governance interface.
type Service interface {
	ProposeTransaction(ctx context.Context, input ProposeInput) (*models.Proposal, error)
	VoteOnProposal(ctx context.Context, input VoteInput) (string, error)
	ExecuteTransaction(ctx context.Context, input ExecuteInput) (*models.TransactionRecord, error)
	CancelProposal(ctx context.Context, proposalID, requestedBy string) error
	GetProposal(ctx context.Context, proposalID string) (*models.Proposal, []models.Vote, error)
	ListProposals(ctx context.Context, walletID string, limit int) ([]models.Proposal, error)
}

type service struct {
	store     *store.Store
	wallets   repositories.WalletRepository
	members   repositories.MemberRepository
	proposals repositories.ProposalRepository
	votes     repositories.VoteRepository
	txns      repositories.TransactionRepository
}

// NewService creates a new governance service.
func NewService(st *store.Store) Service {
	if st == nil {
		panic("store is required")
	}
	return &service{
		store:     st,
		wallets:   repositories.NewWalletRepository(),
		members:   repositories.NewMemberRepository(),
		proposals: repositories.NewProposalRepository(),
		votes:     repositories.NewVoteRepository(),
		txns:      repositories.NewTransactionRepository(),
	}
}

func (s *service) ProposeTransaction(ctx context.Context, input ProposeInput) (*models.Proposal, error) {
	if err := validation.ProposalType(input.Type); err != nil {
		return nil, err
	}
	if err := validation.Amount(input.Amount); err != nil {
		return nil, err
	}
	if err := validation.Required("description", input.Description); err != nil {
		return nil, err
	}

	var proposal *models.Proposal
	err := s.store.Update(func(tx *store.Tx) error {
		proposer, err := s.members.Get(tx, input.WalletID, input.ProposedBy)
		if err != nil {
			if errors.Is(err, apperr.ErrMemberNotFound) {
				return apperr.ErrNotAuthorized
			}
			return err
		}
		if !proposer.IsActive() || !proposer.Permissions.Propose {
			return apperr.ErrNotAuthorized
		}

		wallet, err := s.wallets.Get(tx, input.WalletID)
		if err != nil {
			return err
		}
		if !wallet.IsActive() {
			return apperr.ErrWalletInactive
		}

		totalWeight, err := s.eligibleWeight(tx, input.WalletID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		proposal = &models.Proposal{
			ID:          repositories.NewTimeID(now),
			WalletID:    input.WalletID,
			ProposedBy:  input.ProposedBy,
			Type:        input.Type,
			Amount:      input.Amount,
			Recipient:   input.Recipient,
			Description: input.Description,
			Category:    input.Category,
			// Frozen at creation: later membership changes never alter the
			// quorum of an in-flight proposal.
			RequiredApprovals: requiredApprovals(totalWeight, wallet.ApprovalThreshold),
			Status:            models.ProposalStatusPending,
			ProposedAt:        now,
		}
		if s.autoApproved(wallet, input.Amount) {
			proposal.Status = models.ProposalStatusApproved
		}
		return s.proposals.Put(tx, proposal)
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// autoApproved reports whether an amount falls under the wallet's
// auto-approval shortcut. The proposal is created directly in approved
// status with no votes recorded.
func (s *service) autoApproved(wallet *models.Wallet, amount int64) bool {
	if wallet.AutoApproveBelow <= 0 || amount > wallet.AutoApproveBelow {
		return false
	}
	return wallet.RequireApprovalAbove <= 0 || amount <= wallet.RequireApprovalAbove
}

func (s *service) VoteOnProposal(ctx context.Context, input VoteInput) (string, error) {
	if err := validation.VoteChoice(input.Choice); err != nil {
		return "", err
	}

	var status string
	err := s.store.Update(func(tx *store.Tx) error {
		proposal, err := s.proposals.Get(tx, input.ProposalID)
		if err != nil {
			return err
		}
		if proposal.Status != models.ProposalStatusPending {
			return apperr.ErrProposalNotPending
		}

		voter, err := s.members.Get(tx, proposal.WalletID, input.VoterID)
		if err != nil {
			if errors.Is(err, apperr.ErrMemberNotFound) {
				return apperr.ErrNotAuthorized
			}
			return err
		}
		if !voter.CanVote() {
			return apperr.ErrNotAuthorized
		}

		voted, err := s.votes.Exists(tx, input.ProposalID, input.VoterID)
		if err != nil {
			return err
		}
		if voted {
			return apperr.ErrAlreadyVoted
		}

		vote := &models.Vote{
			ProposalID: input.ProposalID,
			VoterID:    input.VoterID,
			Choice:     input.Choice,
			// The member's present-day weight, which may differ from their
			// weight when the proposal was created.
			Weight:  voter.VotingWeight,
			Reason:  input.Reason,
			VotedAt: time.Now().UTC(),
		}
		if err := s.votes.Put(tx, vote); err != nil {
			return err
		}

		next, err := s.checkProposalApproval(tx, proposal)
		if err != nil {
			return err
		}
		if next != proposal.Status {
			proposal.Status = next
			if err := s.proposals.Put(tx, proposal); err != nil {
				return err
			}
		}
		status = proposal.Status
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// checkProposalApproval re-derives a pending proposal's status from its
// votes. The approval threshold is the frozen RequiredApprovals; the
// early-rejection side uses the live eligible weight, so a proposal is
// rejected as soon as even unanimous approval from everyone left could no
// longer reach quorum.
func (s *service) checkProposalApproval(tx *store.Tx, proposal *models.Proposal) (string, error) {
	tally, err := s.tally(tx, proposal.ID)
	if err != nil {
		return "", err
	}
	if tally.Approval >= proposal.RequiredApprovals {
		return models.ProposalStatusApproved, nil
	}

	totalEligible, err := s.eligibleWeight(tx, proposal.WalletID)
	if err != nil {
		return "", err
	}
	remaining := totalEligible - tally.Approval - tally.Rejection
	if tally.Approval+remaining < proposal.RequiredApprovals {
		return models.ProposalStatusRejected, nil
	}
	return models.ProposalStatusPending, nil
}

func (s *service) tally(tx *store.Tx, proposalID string) (Tally, error) {
	votes, err := s.votes.ListByProposal(tx, proposalID)
	if err != nil {
		return Tally{}, err
	}
	var t Tally
	for _, v := range votes {
		switch v.Choice {
		case models.VoteApprove:
			t.Approval += v.Weight
		case models.VoteReject:
			t.Rejection += v.Weight
		}
	}
	return t, nil
}

// eligibleWeight sums the voting weight of active members who can vote.
func (s *service) eligibleWeight(tx *store.Tx, walletID string) (int64, error) {
	members, err := s.members.ListByWallet(tx, walletID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, m := range members {
		if m.CanVote() {
			total += m.VotingWeight
		}
	}
	return total, nil
}

// requiredApprovals converts the threshold fraction into absolute weight
// units, rounded to the nearest whole unit: three weight-1 voters at a 0.67
// threshold need 2 approvals, not 3.
func requiredApprovals(totalWeight int64, threshold float64) int64 {
	return int64(math.Round(float64(totalWeight) * threshold))
}

func (s *service) ExecuteTransaction(ctx context.Context, input ExecuteInput) (*models.TransactionRecord, error) {
	var record *models.TransactionRecord
	err := s.store.Update(func(tx *store.Tx) error {
		proposal, err := s.proposals.Get(tx, input.ProposalID)
		if err != nil {
			return err
		}
		if proposal.Status != models.ProposalStatusApproved {
			return apperr.ErrProposalNotApproved
		}

		executor, err := s.members.Get(tx, proposal.WalletID, input.ExecutedBy)
		if err != nil {
			if errors.Is(err, apperr.ErrMemberNotFound) {
				return apperr.ErrNotAuthorized
			}
			return err
		}
		if !executor.IsActive() {
			return apperr.ErrNotAuthorized
		}

		wallet, err := s.wallets.Get(tx, proposal.WalletID)
		if err != nil {
			return err
		}

		// Balance may have drifted since approval; the check belongs here,
		// immediately before the mutation, not at proposal creation.
		newBalance := wallet.Balance
		switch proposal.Type {
		case models.ProposalTypeExpense, models.ProposalTypeWithdrawal:
			if wallet.Balance < proposal.Amount {
				return apperr.ErrInsufficientFunds
			}
			newBalance -= proposal.Amount
		case models.ProposalTypeIncome:
			newBalance += proposal.Amount
		case models.ProposalTypeTransfer:
			// Recorded only; a transfer does not move this wallet's balance.
		}

		now := time.Now().UTC()
		record = &models.TransactionRecord{
			WalletID:      wallet.ID,
			ProposalID:    proposal.ID,
			Type:          proposal.Type,
			Amount:        proposal.Amount,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  newBalance,
			ExecutedBy:    input.ExecutedBy,
			Description:   proposal.Description,
			Reference:     input.Reference,
			CreatedAt:     now,
		}
		if err := s.txns.Append(tx, record); err != nil {
			return err
		}

		wallet.Balance = newBalance
		wallet.UpdatedAt = now
		if err := s.wallets.Put(tx, wallet); err != nil {
			return err
		}

		proposal.Status = models.ProposalStatusExecuted
		proposal.ExecutedAt = &now
		proposal.ExecutedBy = input.ExecutedBy
		proposal.ExecutionNotes = input.Notes
		proposal.TransactionID = record.ID
		return s.proposals.Put(tx, proposal)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) CancelProposal(ctx context.Context, proposalID, requestedBy string) error {
	return s.store.Update(func(tx *store.Tx) error {
		proposal, err := s.proposals.Get(tx, proposalID)
		if err != nil {
			return err
		}
		if proposal.Status != models.ProposalStatusPending {
			return apperr.ErrProposalNotPending
		}
		member, err := s.members.Get(tx, proposal.WalletID, requestedBy)
		if err != nil {
			if errors.Is(err, apperr.ErrMemberNotFound) {
				return apperr.ErrNotAuthorized
			}
			return err
		}
		if !member.IsActive() {
			return apperr.ErrNotAuthorized
		}
		if requestedBy != proposal.ProposedBy && !member.Permissions.ManageWallet {
			return apperr.ErrNotAuthorized
		}
		proposal.Status = models.ProposalStatusCancelled
		return s.proposals.Put(tx, proposal)
	})
}

func (s *service) GetProposal(ctx context.Context, proposalID string) (*models.Proposal, []models.Vote, error) {
	var (
		proposal *models.Proposal
		votes    []models.Vote
	)
	err := s.store.View(func(tx *store.Tx) error {
		p, err := s.proposals.Get(tx, proposalID)
		if err != nil {
			return err
		}
		v, err := s.votes.ListByProposal(tx, proposalID)
		if err != nil {
			return err
		}
		proposal, votes = p, v
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return proposal, votes, nil
}

func (s *service) ListProposals(ctx context.Context, walletID string, limit int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := s.store.View(func(tx *store.Tx) error {
		list, err := s.proposals.ListByWallet(tx, walletID, limit)
		if err != nil {
			return err
		}
		proposals = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return proposals, nil
}
