package models

import "time"

// Proposal types
const (
	ProposalTypeExpense    = "expense"
	ProposalTypeIncome     = "income"
	ProposalTypeTransfer   = "transfer"
	ProposalTypeWithdrawal = "withdrawal"
)

// Proposal statuses
const (
	ProposalStatusPending   = "pending"
	ProposalStatusApproved  = "approved"
	ProposalStatusRejected  = "rejected"
	ProposalStatusExecuted  = "executed"
	ProposalStatusCancelled = "cancelled"
)

// Proposal is a spending proposal moving through weighted-quorum voting.
// RequiredApprovals is computed once at creation from the membership of that
// moment and never recomputed afterwards.
type Proposal struct {
	ID                string     `json:"id"`
	WalletID          string     `json:"wallet_id"`
	ProposedBy        string     `json:"proposed_by"`
	Type              string     `json:"type"`
	Amount            int64      `json:"amount"`
	Recipient         string     `json:"recipient,omitempty"`
	Description       string     `json:"description"`
	Category          string     `json:"category,omitempty"`
	RequiredApprovals int64      `json:"required_approvals"`
	Status            string     `json:"status"`
	ProposedAt        time.Time  `json:"proposed_at"`
	ExecutedAt        *time.Time `json:"executed_at,omitempty"`
	ExecutedBy        string     `json:"executed_by,omitempty"`
	ExecutionNotes    string     `json:"execution_notes,omitempty"`
	TransactionID     string     `json:"transaction_id,omitempty"`
}

// IsTerminal reports whether the proposal can no longer change state.
func (p *Proposal) IsTerminal() bool {
	switch p.Status {
	case ProposalStatusExecuted, ProposalStatusRejected, ProposalStatusCancelled:
		return true
	}
	return false
}
