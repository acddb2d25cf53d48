package governance

// ProposeInput creates a spending proposal.
type ProposeInput struct {
	WalletID    string
	ProposedBy  string
	Type        string
	Amount      int64
	Recipient   string
	Description string
	Category    string
}

// VoteInput casts one member's vote on a pending proposal.
type VoteInput struct {
	ProposalID string
	VoterID    string
	Choice     string
	Reason     string
}

// ExecuteInput executes an approved proposal against the ledger.
type ExecuteInput struct {
	ProposalID string
	ExecutedBy string
	Reference  string
	Notes      string
}

// Tally is the weight accumulated on each side of a proposal.
type Tally struct {
	Approval  int64
	Rejection int64
}
