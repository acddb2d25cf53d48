package ledger

// CreateWalletInput are the parameters for a new community wallet. Zero
// settings fall back to the service defaults.
type CreateWalletInput struct {
	Name                 string
	Description          string
	CreatedBy            string
	InitialBalance       int64
	Currency             string
	ApprovalThreshold    float64
	AutoApproveBelow     int64
	RequireApprovalAbove int64
}

// RecordTransactionInput appends a ledger record without touching the
// balance. Callers use it to log cash movements they applied elsewhere.
type RecordTransactionInput struct {
	WalletID      string
	ProposalID    string
	Type          string
	Amount        int64
	BalanceBefore int64
	BalanceAfter  int64
	ExecutedBy    string
	Description   string
	Reference     string
}

// ReconcileDepositInput credits an externally observed deposit. ExternalID
// is the idempotency key: the same id is never applied twice.
type ReconcileDepositInput struct {
	WalletID    string
	Amount      int64
	ExternalID  string
	Description string
	Reference   string
}

// Config holds the ledger service defaults.
type Config struct {
	DefaultCurrency          string
	DefaultApprovalThreshold float64
}
