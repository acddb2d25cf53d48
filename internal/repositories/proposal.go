package repositories

import (
	"encoding/json"

	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/store"
)

const (
	bucketProposals     = "proposals"
	bucketProposalIndex = "proposal_index"
)

// ProposalRepository stores proposals by id and keeps a per-wallet
// time-ordered index for reverse-chronological listing.
type ProposalRepository struct{}

func NewProposalRepository() ProposalRepository {
	return ProposalRepository{}
}

func (ProposalRepository) Put(tx *store.Tx, p *models.Proposal) error {
	if err := tx.Put(bucketProposals, p.ID, p); err != nil {
		return err
	}
	// Proposal ids are ULIDs, so the index key is already time-ordered.
	return tx.Put(bucketProposalIndex, p.WalletID+":"+p.ID, p.ID)
}

func (ProposalRepository) Get(tx *store.Tx, id string) (*models.Proposal, error) {
	var p models.Proposal
	found, err := tx.Get(bucketProposals, id, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrProposalNotFound
	}
	return &p, nil
}

func (r ProposalRepository) ListByWallet(tx *store.Tx, walletID string, limit int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := tx.ScanPrefixReverse(bucketProposalIndex, walletID+":", func(_ string, value []byte) (bool, error) {
		var id string
		if err := json.Unmarshal(value, &id); err != nil {
			return false, err
		}
		p, err := r.Get(tx, id)
		if err != nil {
			return false, err
		}
		proposals = append(proposals, *p)
		return limit <= 0 || len(proposals) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return proposals, nil
}
