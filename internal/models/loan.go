package models

import "time"

// Loan statuses. A loan only ever moves forward through these; a new
// application is possible only once the previous loan is none or completed.
const (
	LoanStatusNone      = "none"
	LoanStatusApproved  = "approved"
	LoanStatusDisbursed = "disbursed"
	LoanStatusActive    = "active"
	LoanStatusCompleted = "completed"
	LoanStatusDefaulted = "defaulted"
)

// Installment is one entry of a loan's weekly amortization schedule.
type Installment struct {
	DueDate time.Time `json:"due_date"`
	Amount  int64     `json:"amount"`
	Paid    bool      `json:"paid"`
}

// Loan is a micro-loan embedded in its wallet.
type Loan struct {
	Principal   int64         `json:"principal"`
	Outstanding int64         `json:"outstanding"`
	MonthlyRate float64       `json:"monthly_rate"`
	TermWeeks   int           `json:"term_weeks"`
	Status      string        `json:"status"`
	NextDueDate time.Time     `json:"next_due_date"`
	Schedule    []Installment `json:"schedule"`
	AppliedAt   time.Time     `json:"applied_at"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty"`
	DisbursedAt *time.Time    `json:"disbursed_at,omitempty"`
}

// Repayment records one repayment against a loan, split into its interest
// and principal portions. Entries are appended to the wallet and never
// removed. The cash movement itself is recorded separately by the caller.
type Repayment struct {
	ID                 string    `json:"id"`
	Amount             int64     `json:"amount"`
	InterestPayment    int64     `json:"interest_payment"`
	PrincipalReduction int64     `json:"principal_reduction"`
	TransactionID      string    `json:"transaction_id,omitempty"`
	PaidAt             time.Time `json:"paid_at"`
}
