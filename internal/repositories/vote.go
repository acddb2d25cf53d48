package repositories

import (
	"encoding/json"

	"chama/internal/models"
	"chama/internal/store"
)

const bucketVotes = "votes"

// VoteRepository stores votes under <proposalID>:<voterID>. The single-vote
// rule is enforced by key existence, not by scanning.
type VoteRepository struct{}

func NewVoteRepository() VoteRepository {
	return VoteRepository{}
}

func (VoteRepository) key(proposalID, voterID string) string {
	return proposalID + ":" + voterID
}

func (r VoteRepository) Put(tx *store.Tx, v *models.Vote) error {
	return tx.Put(bucketVotes, r.key(v.ProposalID, v.VoterID), v)
}

func (r VoteRepository) Exists(tx *store.Tx, proposalID, voterID string) (bool, error) {
	return tx.Exists(bucketVotes, r.key(proposalID, voterID))
}

func (r VoteRepository) ListByProposal(tx *store.Tx, proposalID string) ([]models.Vote, error) {
	var votes []models.Vote
	err := tx.ScanPrefix(bucketVotes, proposalID+":", func(_ string, value []byte) (bool, error) {
		var v models.Vote
		if err := json.Unmarshal(value, &v); err != nil {
			return false, err
		}
		votes = append(votes, v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return votes, nil
}
