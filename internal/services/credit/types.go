package credit

// Config holds the loan policy knobs. Zero values fall back to the package
// defaults.
type Config struct {
	MonthlyRate     float64
	MinimumScore    int
	MinimumDeposits int64
	CapRatio        float64
}

// ApplyLoanInput is a loan application.
type ApplyLoanInput struct {
	WalletID  string
	Amount    int64
	TermWeeks int
}

// LoanDecision is the outcome of a loan application. Rejection is a normal
// result, not an error: Approved is false and Reasons explains why.
type LoanDecision struct {
	Approved bool     `json:"approved"`
	Limit    int64    `json:"limit"`
	Score    int      `json:"score"`
	Reasons  []string `json:"reasons"`
}

// RepayLoanInput repays part of a loan. TransactionID references the cash
// movement the caller recorded separately.
type RepayLoanInput struct {
	WalletID      string
	Amount        int64
	TransactionID string
}

// RepaymentResult reports the interest-first allocation of one repayment.
type RepaymentResult struct {
	InterestPayment    int64  `json:"interest_payment"`
	PrincipalReduction int64  `json:"principal_reduction"`
	Outstanding        int64  `json:"outstanding"`
	Status             string `json:"status"`
}
