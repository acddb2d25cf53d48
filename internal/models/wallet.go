package models

import "time"

// Wallet statuses
const (
	WalletStatusActive    = "active"
	WalletStatusSuspended = "suspended"
	WalletStatusClosed    = "closed"
)

// Wallet is the shared community fund owned by a single actor. All money
// fields are integer minor currency units. Balance is cached but must always
// equal the initial balance plus the signed sum of applied transactions.
type Wallet struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Description          string       `json:"description,omitempty"`
	OwnerID              string       `json:"owner_id"`
	Balance              int64        `json:"balance"`
	InitialBalance       int64        `json:"initial_balance"`
	Currency             string       `json:"currency"`
	ApprovalThreshold    float64      `json:"approval_threshold"`
	AutoApproveBelow     int64        `json:"auto_approve_below"`
	RequireApprovalAbove int64        `json:"require_approval_above"`
	Status               string       `json:"status"`
	CreditScore          *CreditScore `json:"credit_score,omitempty"`
	Loan                 *Loan        `json:"loan,omitempty"`
	Repayments           []Repayment  `json:"repayments,omitempty"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}
