package models

import "time"

// Vote choices
const (
	VoteApprove = "approve"
	VoteReject  = "reject"
	VoteAbstain = "abstain"
)

// Vote records a single member's choice on a proposal. The weight is copied
// from the member's voting weight at vote time, which may differ from their
// weight when the proposal was created.
type Vote struct {
	ProposalID string    `json:"proposal_id"`
	VoterID    string    `json:"voter_id"`
	Choice     string    `json:"choice"`
	Weight     int64     `json:"weight"`
	Reason     string    `json:"reason,omitempty"`
	VotedAt    time.Time `json:"voted_at"`
}
