package models

import "time"

// Transaction types
const (
	TransactionTypeExpense    = "expense"
	TransactionTypeIncome     = "income"
	TransactionTypeTransfer   = "transfer"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeDeposit    = "deposit"
)

// TransactionRecord is an append-only ledger entry with balance snapshots
// taken immediately before and after the mutation it records.
type TransactionRecord struct {
	ID            string    `json:"id"`
	WalletID      string    `json:"wallet_id"`
	ProposalID    string    `json:"proposal_id,omitempty"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	ExecutedBy    string    `json:"executed_by"`
	Description   string    `json:"description,omitempty"`
	Reference     string    `json:"reference,omitempty"`
	ExternalID    string    `json:"external_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SignedAmount returns the delta this record applied to the wallet balance.
// Transfers are recorded but do not move the wallet's own balance.
func (t *TransactionRecord) SignedAmount() int64 {
	switch t.Type {
	case TransactionTypeExpense, TransactionTypeWithdrawal:
		return -t.Amount
	case TransactionTypeIncome, TransactionTypeDeposit:
		return t.Amount
	default:
		return 0
	}
}
