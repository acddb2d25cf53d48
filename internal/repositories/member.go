package repositories

import (
	"encoding/json"

	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/store"
)

const bucketMembers = "members"

// MemberRepository stores members under <walletID>:<userID> so one prefix
// scan yields a wallet's full roster.
type MemberRepository struct{}

func NewMemberRepository() MemberRepository {
	return MemberRepository{}
}

func (MemberRepository) key(walletID, userID string) string {
	return walletID + ":" + userID
}

func (r MemberRepository) Put(tx *store.Tx, m *models.Member) error {
	return tx.Put(bucketMembers, r.key(m.WalletID, m.UserID), m)
}

func (r MemberRepository) Get(tx *store.Tx, walletID, userID string) (*models.Member, error) {
	var m models.Member
	found, err := tx.Get(bucketMembers, r.key(walletID, userID), &m)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrMemberNotFound
	}
	return &m, nil
}

func (r MemberRepository) Exists(tx *store.Tx, walletID, userID string) (bool, error) {
	return tx.Exists(bucketMembers, r.key(walletID, userID))
}

func (r MemberRepository) ListByWallet(tx *store.Tx, walletID string) ([]models.Member, error) {
	var members []models.Member
	err := tx.ScanPrefix(bucketMembers, walletID+":", func(_ string, value []byte) (bool, error) {
		var m models.Member
		if err := json.Unmarshal(value, &m); err != nil {
			return false, err
		}
		members = append(members, m)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}
