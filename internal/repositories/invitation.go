package repositories

import (
	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/store"
)

const (
	bucketInvitations      = "invitations"
	bucketInvitationTokens = "invitation_tokens"
)

// InvitationRepository stores invitations by id with a token index pointing
// at the invitation, so acceptance is a key lookup rather than a scan.
type InvitationRepository struct{}

func NewInvitationRepository() InvitationRepository {
	return InvitationRepository{}
}

func (InvitationRepository) Put(tx *store.Tx, inv *models.Invitation) error {
	if err := tx.Put(bucketInvitations, inv.ID, inv); err != nil {
		return err
	}
	return tx.Put(bucketInvitationTokens, inv.Token, inv.ID)
}

func (InvitationRepository) Get(tx *store.Tx, id string) (*models.Invitation, error) {
	var inv models.Invitation
	found, err := tx.Get(bucketInvitations, id, &inv)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrInvalidToken
	}
	return &inv, nil
}

func (r InvitationRepository) GetByToken(tx *store.Tx, token string) (*models.Invitation, error) {
	var id string
	found, err := tx.Get(bucketInvitationTokens, token, &id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrInvalidToken
	}
	return r.Get(tx, id)
}
