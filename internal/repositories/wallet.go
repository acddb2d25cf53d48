package repositories

import (
	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/store"
)

const bucketWallets = "wallets"

// WalletRepository reads and writes wallet records keyed by wallet id.
type WalletRepository struct{}

func NewWalletRepository() WalletRepository {
	return WalletRepository{}
}

func (WalletRepository) Put(tx *store.Tx, w *models.Wallet) error {
	return tx.Put(bucketWallets, w.ID, w)
}

func (WalletRepository) Get(tx *store.Tx, id string) (*models.Wallet, error) {
	var w models.Wallet
	found, err := tx.Get(bucketWallets, id, &w)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrWalletNotFound
	}
	return &w, nil
}
