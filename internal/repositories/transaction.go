package repositories

import (
	"encoding/json"

	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/store"
)

const (
	bucketTransactions     = "transactions"
	bucketTransactionIndex = "transaction_index"
	bucketTransactionRefs  = "transaction_refs"
)

// TransactionRepository appends ledger records and maintains two secondary
// indexes: a per-wallet time-ordered index for newest-first history scans,
// and an external-reference index used as the idempotency check for
// reconciled deposits.
type TransactionRepository struct{}

func NewTransactionRepository() TransactionRepository {
	return TransactionRepository{}
}

// Append writes a record plus its index entries. The record id is derived
// from its timestamp so index keys sort chronologically.
func (TransactionRepository) Append(tx *store.Tx, rec *models.TransactionRecord) error {
	if rec.ID == "" {
		rec.ID = NewTimeID(rec.CreatedAt)
	}
	if err := tx.Put(bucketTransactions, rec.ID, rec); err != nil {
		return err
	}
	if err := tx.Put(bucketTransactionIndex, rec.WalletID+":"+rec.ID, rec.ID); err != nil {
		return err
	}
	if rec.ExternalID != "" {
		if err := tx.Put(bucketTransactionRefs, rec.ExternalID, rec.ID); err != nil {
			return err
		}
	}
	return nil
}

func (TransactionRepository) Get(tx *store.Tx, id string) (*models.TransactionRecord, error) {
	var rec models.TransactionRecord
	found, err := tx.Get(bucketTransactions, id, &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrTransactionNotFound
	}
	return &rec, nil
}

// RefExists reports whether an external transaction id has already been
// applied to this store.
func (TransactionRepository) RefExists(tx *store.Tx, externalID string) (bool, error) {
	return tx.Exists(bucketTransactionRefs, externalID)
}

// ListRecent returns up to limit records for a wallet, newest first.
func (r TransactionRepository) ListRecent(tx *store.Tx, walletID string, limit int) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	err := tx.ScanPrefixReverse(bucketTransactionIndex, walletID+":", func(_ string, value []byte) (bool, error) {
		var id string
		if err := json.Unmarshal(value, &id); err != nil {
			return false, err
		}
		rec, err := r.Get(tx, id)
		if err != nil {
			return false, err
		}
		records = append(records, *rec)
		return limit <= 0 || len(records) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
